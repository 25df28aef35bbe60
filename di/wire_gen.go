// Injectors for the provider sets in wire.go. Running wire regenerates this file.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package di

import (
	"folio/config"
	"folio/infras/datastore"
	"folio/infras/jwt"
	"folio/infras/kafka"
	"folio/infras/otel"
	"folio/infras/redis"
	"folio/infras/storage"
	repository5 "folio/internal/domains/about/repository"
	service5 "folio/internal/domains/about/service"
	repository12 "folio/internal/domains/auth/repository"
	service15 "folio/internal/domains/auth/service"
	service13 "folio/internal/domains/contact/service"
	repository8 "folio/internal/domains/content/repository"
	service8 "folio/internal/domains/content/service"
	repository7 "folio/internal/domains/counter/repository"
	service7 "folio/internal/domains/counter/service"
	repository2 "folio/internal/domains/event/repository"
	service2 "folio/internal/domains/event/service"
	"folio/internal/domains/gallery/repository"
	"folio/internal/domains/gallery/service"
	service9 "folio/internal/domains/home/service"
	repository11 "folio/internal/domains/invite/repository"
	service11 "folio/internal/domains/invite/service"
	repository6 "folio/internal/domains/pricing/repository"
	service6 "folio/internal/domains/pricing/service"
	repository3 "folio/internal/domains/project/repository"
	service3 "folio/internal/domains/project/service"
	repository4 "folio/internal/domains/review/repository"
	service4 "folio/internal/domains/review/service"
	repository10 "folio/internal/domains/user/repository"
	service10 "folio/internal/domains/user/service"
	"folio/internal/handlers/about"
	"folio/internal/handlers/auth"
	"folio/internal/handlers/contact"
	"folio/internal/handlers/content"
	"folio/internal/handlers/counter"
	"folio/internal/handlers/event"
	"folio/internal/handlers/gallery"
	"folio/internal/handlers/home"
	"folio/internal/handlers/invite"
	"folio/internal/handlers/pricing"
	"folio/internal/handlers/project"
	"folio/internal/handlers/review"
	storage2 "folio/internal/handlers/storage"
	"folio/internal/handlers/user"
	"folio/internal/seed"
	"folio/permissions"
	"folio/shared/cache"
	"folio/transport/http"
	"folio/transport/http/middleware"
	"folio/transport/http/router"
)

// Injectors from wire.go:

func InitializeService() (*http.HTTP, func(), error) {
	configConfig := config.Get()
	client, cleanup, err := redis.New(configConfig)
	if err != nil {
		return nil, nil, err
	}
	otelOtel, cleanup2, err := otel.New(configConfig)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	datastoreDatastore, cleanup3, err := datastore.New(configConfig, client, otelOtel)
	if err != nil {
		cleanup2()
		cleanup()
		return nil, nil, err
	}
	userRepository := repository10.New(datastoreDatastore, otelOtel)
	cacheCache := cache.New(client, otelOtel)
	serviceUser := service10.New(userRepository, configConfig, cacheCache, otelOtel)
	inviteRepository := repository11.New(datastoreDatastore, otelOtel)
	serviceInvite := service11.New(inviteRepository, configConfig, otelOtel)
	sessionStore := repository12.NewSessionStore(datastoreDatastore, otelOtel)
	jwtJWT := jwt.New(configConfig, otelOtel)
	serviceAuth := service15.New(userRepository, serviceUser, serviceInvite, sessionStore, configConfig, otelOtel, jwtJWT)
	authHandler := auth.New(serviceAuth, otelOtel)
	counterRepository := repository7.New(datastoreDatastore, otelOtel)
	serviceCounter := service7.New(counterRepository, configConfig, cacheCache, otelOtel)
	projectRepository := repository3.New(datastoreDatastore, otelOtel)
	projectImage := repository3.NewImage(datastoreDatastore, otelOtel)
	storageStorage, err := storage.New(configConfig, datastoreDatastore, otelOtel)
	if err != nil {
		cleanup3()
		cleanup2()
		cleanup()
		return nil, nil, err
	}
	serviceProject := service3.New(projectRepository, projectImage, configConfig, cacheCache, otelOtel, storageStorage)
	reviewRepository := repository4.New(datastoreDatastore, otelOtel)
	kafkaClient, cleanup4 := kafka.New(configConfig)
	serviceReview := service4.New(reviewRepository, configConfig, cacheCache, otelOtel, kafkaClient)
	aboutRepository := repository5.New(datastoreDatastore, otelOtel)
	serviceAbout := service5.New(aboutRepository, configConfig, cacheCache, otelOtel, storageStorage)
	contentRepository := repository8.New(datastoreDatastore, otelOtel)
	serviceContent := service8.New(contentRepository, configConfig, cacheCache, otelOtel)
	serviceHome := service9.New(serviceCounter, serviceProject, serviceReview, serviceAbout, serviceContent, configConfig, otelOtel)
	homeHandler := home.New(serviceHome, otelOtel)
	galleryRepository := repository.New(datastoreDatastore, otelOtel)
	serviceGallery := service.New(galleryRepository, configConfig, cacheCache, otelOtel, storageStorage)
	galleryHandler := gallery.New(serviceGallery, otelOtel)
	eventRepository := repository2.New(datastoreDatastore, otelOtel)
	eventImage := repository2.NewImage(datastoreDatastore, otelOtel)
	serviceEvent := service2.New(eventRepository, eventImage, configConfig, cacheCache, otelOtel, storageStorage)
	eventHandler := event.New(serviceEvent, otelOtel)
	reviewHandler := review.New(serviceReview, otelOtel)
	pricingRepository := repository6.New(datastoreDatastore, otelOtel)
	servicePricing := service6.New(pricingRepository, configConfig, cacheCache, otelOtel)
	pricingHandler := pricing.New(servicePricing, otelOtel)
	projectHandler := project.New(serviceProject, otelOtel)
	aboutHandler := about.New(serviceAbout, otelOtel)
	counterHandler := counter.New(serviceCounter, otelOtel)
	contentHandler := content.New(serviceContent, otelOtel)
	serviceContact := service13.New(kafkaClient, configConfig, otelOtel)
	contactHandler := contact.New(serviceContact, otelOtel)
	inviteHandler := invite.New(serviceInvite, otelOtel)
	userHandler := user.New(serviceUser, otelOtel)
	storageService := ProvideStorageManager(storageStorage, otelOtel, serviceGallery, serviceEvent, serviceProject, serviceAbout, serviceContent)
	storageHandler := storage2.New(storageService, otelOtel)
	domainHandlers := router.DomainHandlers{
		Auth:    authHandler,
		Home:    homeHandler,
		Gallery: galleryHandler,
		Event:   eventHandler,
		Review:  reviewHandler,
		Pricing: pricingHandler,
		Project: projectHandler,
		About:   aboutHandler,
		Counter: counterHandler,
		Content: contentHandler,
		Contact: contactHandler,
		Invite:  inviteHandler,
		User:    userHandler,
		Storage: storageHandler,
	}
	permissionData, err := permissions.Get()
	if err != nil {
		cleanup4()
		cleanup3()
		cleanup2()
		cleanup()
		return nil, nil, err
	}
	authRole := middleware.NewAuthRoleMiddleware(jwtJWT, sessionStore, otelOtel, permissionData, configConfig)
	routerRouter := router.New(domainHandlers, authRole)
	appMiddleware := middleware.NewAppMiddleware(otelOtel, configConfig, cacheCache)
	httpHTTP := http.New(configConfig, routerRouter, appMiddleware)
	return httpHTTP, func() {
		cleanup4()
		cleanup3()
		cleanup2()
		cleanup()
	}, nil
}

func InitializeTooling() (*Tooling, func(), error) {
	configConfig := config.Get()
	client, cleanup, err := redis.New(configConfig)
	if err != nil {
		return nil, nil, err
	}
	otelOtel, cleanup2, err := otel.New(configConfig)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	datastoreDatastore, cleanup3, err := datastore.New(configConfig, client, otelOtel)
	if err != nil {
		cleanup2()
		cleanup()
		return nil, nil, err
	}
	inviteRepository := repository11.New(datastoreDatastore, otelOtel)
	serviceInvite := service11.New(inviteRepository, configConfig, otelOtel)
	storageStorage, err := storage.New(configConfig, datastoreDatastore, otelOtel)
	if err != nil {
		cleanup3()
		cleanup2()
		cleanup()
		return nil, nil, err
	}
	galleryRepository := repository.New(datastoreDatastore, otelOtel)
	cacheCache := cache.New(client, otelOtel)
	serviceGallery := service.New(galleryRepository, configConfig, cacheCache, otelOtel, storageStorage)
	eventRepository := repository2.New(datastoreDatastore, otelOtel)
	eventImage := repository2.NewImage(datastoreDatastore, otelOtel)
	serviceEvent := service2.New(eventRepository, eventImage, configConfig, cacheCache, otelOtel, storageStorage)
	projectRepository := repository3.New(datastoreDatastore, otelOtel)
	projectImage := repository3.NewImage(datastoreDatastore, otelOtel)
	serviceProject := service3.New(projectRepository, projectImage, configConfig, cacheCache, otelOtel, storageStorage)
	aboutRepository := repository5.New(datastoreDatastore, otelOtel)
	serviceAbout := service5.New(aboutRepository, configConfig, cacheCache, otelOtel, storageStorage)
	contentRepository := repository8.New(datastoreDatastore, otelOtel)
	serviceContent := service8.New(contentRepository, configConfig, cacheCache, otelOtel)
	storageService := ProvideStorageManager(storageStorage, otelOtel, serviceGallery, serviceEvent, serviceProject, serviceAbout, serviceContent)
	kafkaClient, cleanup4 := kafka.New(configConfig)
	serviceContact := service13.New(kafkaClient, configConfig, otelOtel)
	counterRepository := repository7.New(datastoreDatastore, otelOtel)
	serviceCounter := service7.New(counterRepository, configConfig, cacheCache, otelOtel)
	pricingRepository := repository6.New(datastoreDatastore, otelOtel)
	servicePricing := service6.New(pricingRepository, configConfig, cacheCache, otelOtel)
	seeder := seed.New(serviceCounter, servicePricing, serviceContent, serviceGallery)
	tooling := &Tooling{
		Config:  configConfig,
		Invites: serviceInvite,
		Storage: storageService,
		Contact: serviceContact,
		Seeder:  seeder,
	}
	return tooling, func() {
		cleanup4()
		cleanup3()
		cleanup2()
		cleanup()
	}, nil
}
