package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"folio/infras/kvstore"
	"folio/infras/otel"
	"folio/shared/base64"
	"folio/shared/constant"
	"folio/shared/dto"
	"folio/shared/failure"
	"folio/shared/timezone"
)

type envelope struct {
	Object
	Data []byte `json:"data"`
}

type kvStorage struct {
	store          kvstore.Store
	ns             kvstore.Namespace
	maxObjectBytes int64
	quotaBytes     int64
	otel           otel.Otel
	mu             sync.Mutex
}

// NewKV keeps objects inside the kv store and hands out data urls. A zero limit disables it.
func NewKV(store kvstore.Store, ns kvstore.Namespace, maxObjectBytes, quotaBytes int64, ot otel.Otel) Storage {
	return &kvStorage{
		store:          store,
		ns:             ns,
		maxObjectBytes: maxObjectBytes,
		quotaBytes:     quotaBytes,
		otel:           ot,
	}
}

func dataURL(env envelope) string {
	return base64.Encode(env.ContentType, env.Data, "name="+env.Directory+"/"+env.Name)
}

func (svc *kvStorage) UploadFile(ctx context.Context, directory string, file dto.FileUpload) (string, error) {
	return svc.UploadFileBytes(ctx, directory, uniqueName(file), file.ContentType, file.Content)
}

func (svc *kvStorage) UploadFileBytes(ctx context.Context, directory, fileName, contentType string, fileData []byte) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".UploadFileBytes")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttributes(map[string]any{
		otelAttrFileName:  fileName,
		otelAttrDirectory: directory,
	})

	if directory == "" || fileName == "" || strings.Contains(directory, "/") {
		return constant.Empty, failure.BadRequestFromString("object directory and name are required")
	}

	size := int64(len(fileData))
	if svc.maxObjectBytes > 0 && size > svc.maxObjectBytes {
		return constant.Empty, failure.TooLarge(fmt.Sprintf("%s is %d bytes, the limit per file is %d bytes", fileName, size, svc.maxObjectBytes))
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	key := svc.ns.Object(directory, fileName)

	if svc.quotaBytes > 0 {
		usage, err := svc.usage(ctx, key)
		if err != nil {
			return constant.Empty, err
		}

		if usage.Bytes+size > svc.quotaBytes {
			return constant.Empty, failure.TooLarge(fmt.Sprintf("storage quota of %d bytes exceeded", svc.quotaBytes))
		}
	}

	env := envelope{
		Object: Object{
			Directory:   directory,
			Name:        fileName,
			ContentType: contentType,
			Size:        size,
			CreatedAt:   timezone.Now(),
		},
		Data: fileData,
	}

	raw, err := json.Marshal(env)
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to encode object: %w", err)
	}

	if err = svc.store.Set(ctx, key, raw, 0); err != nil {
		return constant.Empty, fmt.Errorf("failed to store object: %w", err)
	}

	return dataURL(env), nil
}

func (svc *kvStorage) DeleteFile(ctx context.Context, directory, objectName string) (err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".DeleteFile")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = svc.store.Delete(ctx, svc.ns.Object(directory, objectName)); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}

	return nil
}

func (svc *kvStorage) read(ctx context.Context, key string) (envelope, error) {
	var env envelope

	raw, err := svc.store.Get(ctx, key)
	if err != nil {
		return env, err //nolint:wrapcheck
	}

	if err = json.Unmarshal(raw, &env); err != nil {
		return env, fmt.Errorf("%w: object %s: %w", kvstore.ErrCorrupt, key, err)
	}

	return env, nil
}

func (svc *kvStorage) List(ctx context.Context, directory string) (objects []Object, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".List")
	defer scope.End()
	defer scope.TraceIfError(&err)

	keys, err := svc.store.Keys(ctx, svc.ns.ObjectPrefix(directory))
	if err != nil {
		return nil, fmt.Errorf("failed to list objects: %w", err)
	}

	objects = make([]Object, 0, len(keys))

	for _, key := range keys {
		env, err := svc.read(ctx, key)
		if errors.Is(err, kvstore.ErrNotFound) {
			continue
		}

		if err != nil {
			return nil, err
		}

		obj := env.Object
		obj.URL = dataURL(env)
		objects = append(objects, obj)
	}

	return objects, nil
}

func (svc *kvStorage) PublicURL(ctx context.Context, directory, objectName string) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".PublicURL")
	defer scope.End()
	defer scope.TraceIfError(&err)

	env, err := svc.read(ctx, svc.ns.Object(directory, objectName))
	if errors.Is(err, kvstore.ErrNotFound) {
		return constant.Empty, failure.NotFound("object not found")
	}

	if err != nil {
		return constant.Empty, err
	}

	return dataURL(env), nil
}

func (svc *kvStorage) GetObjectNameFromURL(url string) (directory, objectName string) {
	return splitKey(base64.GetParam(url, "name"))
}

// usage sums every stored object except skip, which is about to be overwritten.
func (svc *kvStorage) usage(ctx context.Context, skip string) (Usage, error) {
	usage := Usage{QuotaBytes: svc.quotaBytes, Directories: map[string]DirectoryUsage{}}

	keys, err := svc.store.Keys(ctx, svc.ns.ObjectPrefix(""))
	if err != nil {
		return usage, fmt.Errorf("failed to list objects: %w", err)
	}

	for _, key := range keys {
		if key == skip {
			continue
		}

		env, err := svc.read(ctx, key)
		if errors.Is(err, kvstore.ErrNotFound) {
			continue
		}

		if err != nil {
			return usage, err
		}

		usage.add(env.Object)
	}

	return usage, nil
}

func (svc *kvStorage) Usage(ctx context.Context) (usage Usage, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".Usage")
	defer scope.End()
	defer scope.TraceIfError(&err)

	return svc.usage(ctx, "")
}
