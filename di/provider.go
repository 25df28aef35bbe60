package di

import (
	"folio/infras/otel"
	"folio/infras/storage"

	aboutService "folio/internal/domains/about/service"
	contentService "folio/internal/domains/content/service"
	eventService "folio/internal/domains/event/service"
	galleryService "folio/internal/domains/gallery/service"
	projectService "folio/internal/domains/project/service"
	storageService "folio/internal/domains/storage/service"
)

// ProvideStorageManager builds the storage manager with every service that stores object URLs.
func ProvideStorageManager(
	store storage.Storage,
	ot otel.Otel,
	gallery galleryService.Gallery,
	event eventService.Event,
	project projectService.Project,
	about aboutService.About,
	content contentService.Content,
) storageService.Storage {
	return storageService.New(store, ot, gallery, event, project, about, content)
}
