//go:build wireinject
// +build wireinject

package di

import (
	"folio/config"
	"folio/infras/datastore"
	"folio/infras/jwt"
	"folio/infras/kafka"
	"folio/infras/otel"
	"folio/infras/redis"
	"folio/infras/storage"
	"folio/internal/seed"
	"folio/permissions"
	"folio/shared/cache"
	"folio/transport/http"
	"folio/transport/http/middleware"
	"folio/transport/http/router"

	aboutRepository "folio/internal/domains/about/repository"
	aboutService "folio/internal/domains/about/service"
	authRepository "folio/internal/domains/auth/repository"
	authService "folio/internal/domains/auth/service"
	contactService "folio/internal/domains/contact/service"
	contentRepository "folio/internal/domains/content/repository"
	contentService "folio/internal/domains/content/service"
	counterRepository "folio/internal/domains/counter/repository"
	counterService "folio/internal/domains/counter/service"
	eventRepository "folio/internal/domains/event/repository"
	eventService "folio/internal/domains/event/service"
	galleryRepository "folio/internal/domains/gallery/repository"
	galleryService "folio/internal/domains/gallery/service"
	homeService "folio/internal/domains/home/service"
	inviteRepository "folio/internal/domains/invite/repository"
	inviteService "folio/internal/domains/invite/service"
	pricingRepository "folio/internal/domains/pricing/repository"
	pricingService "folio/internal/domains/pricing/service"
	projectRepository "folio/internal/domains/project/repository"
	projectService "folio/internal/domains/project/service"
	reviewRepository "folio/internal/domains/review/repository"
	reviewService "folio/internal/domains/review/service"
	storageService "folio/internal/domains/storage/service"
	userRepository "folio/internal/domains/user/repository"
	userService "folio/internal/domains/user/service"

	aboutHandler "folio/internal/handlers/about"
	authHandler "folio/internal/handlers/auth"
	contactHandler "folio/internal/handlers/contact"
	contentHandler "folio/internal/handlers/content"
	counterHandler "folio/internal/handlers/counter"
	eventHandler "folio/internal/handlers/event"
	galleryHandler "folio/internal/handlers/gallery"
	homeHandler "folio/internal/handlers/home"
	inviteHandler "folio/internal/handlers/invite"
	pricingHandler "folio/internal/handlers/pricing"
	projectHandler "folio/internal/handlers/project"
	reviewHandler "folio/internal/handlers/review"
	storageHandler "folio/internal/handlers/storage"
	userHandler "folio/internal/handlers/user"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	otel.New,
	redis.New,
	datastore.New,
	storage.New,
	kafka.New,
	jwt.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.New,
)

var catalogDomains = wire.NewSet(
	galleryRepository.New,
	galleryService.New,
	eventRepository.New,
	eventRepository.NewImage,
	eventService.New,
	projectRepository.New,
	projectRepository.NewImage,
	projectService.New,
	aboutRepository.New,
	aboutService.New,
)

var siteDomains = wire.NewSet(
	reviewRepository.New,
	reviewService.New,
	pricingRepository.New,
	pricingService.New,
	counterRepository.New,
	counterService.New,
	contentRepository.New,
	contentService.New,
	homeService.New,
	contactService.New,
)

var accountDomains = wire.NewSet(
	userRepository.New,
	userService.New,
	inviteRepository.New,
	inviteService.New,
	authRepository.NewSessionStore,
	authService.New,
)

var domains = wire.NewSet(
	catalogDomains,
	siteDomains,
	accountDomains,
	ProvideStorageManager,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	homeHandler.New,
	galleryHandler.New,
	eventHandler.New,
	reviewHandler.New,
	pricingHandler.New,
	projectHandler.New,
	aboutHandler.New,
	counterHandler.New,
	contentHandler.New,
	contactHandler.New,
	inviteHandler.New,
	userHandler.New,
	storageHandler.New,
	router.New,
)

func InitializeService() (*http.HTTP, func(), error) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}, nil, nil
}

func InitializeTooling() (*Tooling, func(), error) {
	wire.Build(
		configurations,
		infrastructures,
		sharedHelpers,
		domains,
		seed.New,
		wire.Struct(new(Tooling), "*"),
	)

	return &Tooling{}, nil, nil
}
