// Package storage stores uploaded images either in an S3 compatible bucket or in the kv store.
package storage

//go:generate go run go.uber.org/mock/mockgen -source=./storage.go -destination=./mocks/storage_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"strings"
	"time"

	"folio/config"
	"folio/infras/datastore"
	"folio/infras/otel"
	"folio/shared/constant"
	"folio/shared/dto"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	otelAttrFileName  = "file_name"
	otelAttrDirectory = "directory"
)

// Directories are the top level folders objects are grouped in.
var Directories = []string{
	constant.StorageDirGallery,
	constant.StorageDirEvents,
	constant.StorageDirProjects,
	constant.StorageDirAbout,
}

type Object struct {
	Directory   string    `json:"directory"`
	Name        string    `json:"name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"created_at"`
}

type DirectoryUsage struct {
	Objects int   `json:"objects"`
	Bytes   int64 `json:"bytes"`
}

type Usage struct {
	Objects     int                       `json:"objects"`
	Bytes       int64                     `json:"bytes"`
	QuotaBytes  int64                     `json:"quota_bytes"`
	Directories map[string]DirectoryUsage `json:"directories"`
}

func (u *Usage) add(obj Object) {
	if u.Directories == nil {
		u.Directories = map[string]DirectoryUsage{}
	}

	dir := u.Directories[obj.Directory]
	dir.Objects++
	dir.Bytes += obj.Size
	u.Directories[obj.Directory] = dir

	u.Objects++
	u.Bytes += obj.Size
}

type Storage interface {
	// UploadFile stores file under a fresh unique name and returns its public url.
	UploadFile(ctx context.Context, directory string, file dto.FileUpload) (url string, err error)
	UploadFileBytes(ctx context.Context, directory, fileName, contentType string, fileData []byte) (url string, err error)
	DeleteFile(ctx context.Context, directory, objectName string) error
	List(ctx context.Context, directory string) ([]Object, error)
	PublicURL(ctx context.Context, directory, objectName string) (string, error)
	// GetObjectNameFromURL maps a url returned by this storage back to its object, or returns
	// empty strings for foreign urls.
	GetObjectNameFromURL(url string) (directory, objectName string)
	Usage(ctx context.Context) (Usage, error)
}

func New(cfg *config.Config, ds *datastore.Datastore, ot otel.Otel) (Storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverKV, "":
		return NewKV(ds.KV, ds.Namespace(), cfg.Storage.MaxObjectBytes, cfg.Storage.QuotaBytes, ot), nil
	case config.StorageDriverS3:
		return NewS3(cfg, ot), nil
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.Storage.Driver)
	}
}

// UploadAll uploads files in order. When one upload fails the ones before it are removed
// again, so either every file is stored or none is.
func UploadAll(ctx context.Context, store Storage, directory string, files []dto.FileUpload) ([]string, error) {
	urls := make([]string, 0, len(files))

	for _, file := range files {
		url, err := store.UploadFile(ctx, directory, file)
		if err != nil {
			if cleanupErr := DeleteByURL(context.WithoutCancel(ctx), store, urls...); cleanupErr != nil {
				log.Error().Err(cleanupErr).Msg("failed to remove partial uploads")
			}

			return nil, err
		}

		urls = append(urls, url)
	}

	return urls, nil
}

// DeleteByURL removes the objects behind urls. Urls that do not belong to store are skipped.
func DeleteByURL(ctx context.Context, store Storage, urls ...string) error {
	var errs []error

	for _, url := range urls {
		if url == constant.Empty {
			continue
		}

		directory, objectName := store.GetObjectNameFromURL(url)
		if objectName == constant.Empty {
			log.Warn().Str("url", shorten(url)).Msg("skipping object that is not held by storage")

			continue
		}

		if err := store.DeleteFile(ctx, directory, objectName); err != nil {
			log.Error().Err(err).Str("directory", directory).Str("object", objectName).Msg("failed to delete object")
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func shorten(url string) string {
	const maxLogged = 96
	if len(url) <= maxLogged {
		return url
	}

	return url[:maxLogged] + "..."
}

func uniqueName(file dto.FileUpload) string {
	ext := file.Ext()
	if ext == "" {
		if exts, err := mime.ExtensionsByType(file.ContentType); err == nil && len(exts) > 0 {
			ext = exts[0]
		}
	}

	return uuid.NewString() + ext
}

func splitKey(key string) (directory, objectName string) {
	directory, objectName, ok := strings.Cut(key, "/")
	if !ok {
		return constant.Empty, constant.Empty
	}

	return directory, objectName
}
