package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"sync"

	"folio/infras/otel"
	"folio/infras/storage"
	"folio/internal/domains/storage/model/dto"
	"folio/shared/constant"
	"folio/shared/failure"
	"folio/shared/validator"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// URLSource is anything that stores references to uploaded objects.
type URLSource interface {
	URLs(ctx context.Context) ([]string, error)
}

type Storage interface {
	List(ctx context.Context, directory string) (dto.ListObjectsResponse, error)
	Usage(ctx context.Context) (storage.Usage, error)
	Delete(ctx context.Context, req dto.DeleteObjectsRequest) (dto.DeleteObjectsResponse, error)
	// Orphans finds objects no entity refers to and removes them when remove is set.
	Orphans(ctx context.Context, remove bool) (dto.OrphansResponse, error)
}

type serviceImpl struct {
	storage storage.Storage
	sources []URLSource
	otel    otel.Otel
}

func New(storage storage.Storage, otel otel.Otel, sources ...URLSource) Storage {
	return &serviceImpl{
		storage: storage,
		sources: sources,
		otel:    otel,
	}
}

func (s *serviceImpl) listAll(ctx context.Context, directory string) ([]storage.Object, error) {
	objects, err := s.storage.List(ctx, directory)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(objects, func(i, j int) bool {
		if objects[i].Directory != objects[j].Directory {
			return objects[i].Directory < objects[j].Directory
		}

		return objects[i].Name < objects[j].Name
	})

	return objects, nil
}

func (s *serviceImpl) List(ctx context.Context, directory string) (res dto.ListObjectsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".storage.List")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = validator.ValidateStruct(&dto.ListObjectsRequest{Directory: directory}); err != nil {
		return res, err
	}

	objects, err := s.listAll(ctx, directory)
	if err != nil {
		log.Error().Err(err).Str("directory", directory).Msg("failed to list objects")

		return res, err
	}

	res.FromObjects(objects)

	return res, nil
}

func (s *serviceImpl) Usage(ctx context.Context) (res storage.Usage, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".storage.Usage")
	defer scope.End()
	defer scope.TraceIfError(&err)

	res, err = s.storage.Usage(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get storage usage")

		return res, err
	}

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, req dto.DeleteObjectsRequest) (res dto.DeleteObjectsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".storage.Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	var errs []error

	for _, obj := range req.Objects {
		if err := s.storage.DeleteFile(ctx, obj.Directory, obj.Name); err != nil {
			log.Error().Err(err).Str("directory", obj.Directory).Str("object", obj.Name).Msg("failed to delete object")
			errs = append(errs, err)

			continue
		}

		res.Deleted++
	}

	if err = errors.Join(errs...); err != nil {
		if res.Deleted == 0 && len(errs) == 1 && failure.GetCode(errs[0]) != http.StatusInternalServerError {
			return res, errs[0]
		}

		return res, fmt.Errorf("deleted %d of %d objects: %w", res.Deleted, len(req.Objects), err)
	}

	return res, nil
}

// referenced collects the object keys every source points at. Sources are read concurrently
// with the object listing.
func (s *serviceImpl) referenced(ctx context.Context) (map[string]struct{}, []storage.Object, error) {
	var (
		mu      sync.Mutex
		keys    = map[string]struct{}{}
		objects []storage.Object
	)

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		listed, err := s.listAll(gctx, constant.Empty)
		if err != nil {
			return fmt.Errorf("listing objects: %w", err)
		}

		objects = listed

		return nil
	})

	for _, source := range s.sources {
		group.Go(func() error {
			urls, err := source.URLs(gctx)
			if err != nil {
				return fmt.Errorf("collecting referenced urls: %w", err)
			}

			mu.Lock()
			defer mu.Unlock()

			for _, url := range urls {
				directory, name := s.storage.GetObjectNameFromURL(url)
				if name != constant.Empty {
					keys[directory+"/"+name] = struct{}{}
				}
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, nil, err
	}

	return keys, objects, nil
}

func (s *serviceImpl) Orphans(ctx context.Context, remove bool) (res dto.OrphansResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".storage.Orphans")
	defer scope.End()
	defer scope.TraceIfError(&err)

	keys, objects, err := s.referenced(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to scan for orphaned objects")

		return res, err
	}

	orphans := make([]storage.Object, 0)

	for _, obj := range objects {
		if _, ok := keys[obj.Directory+"/"+obj.Name]; !ok {
			orphans = append(orphans, obj)
		}
	}

	res.FromObjects(orphans)

	if !remove || len(orphans) == 0 {
		return res, nil
	}

	refs := make([]dto.ObjectRef, len(orphans))
	for i, obj := range orphans {
		refs[i] = dto.ObjectRef{Directory: obj.Directory, Name: obj.Name}
	}

	if _, err = s.Delete(ctx, dto.DeleteObjectsRequest{Objects: refs}); err != nil {
		return res, err
	}

	log.Info().Int("objects", res.Count).Int64("bytes", res.Bytes).Msg("removed orphaned objects")

	res.Deleted = true

	return res, nil
}
