package di

import (
	"fmt"

	"github.com/user624-47/farmflow-sub000/internal/blob"
	"github.com/user624-47/farmflow-sub000/internal/cache"
	"github.com/user624-47/farmflow-sub000/internal/client"
	"github.com/user624-47/farmflow-sub000/internal/handler"
	"github.com/user624-47/farmflow-sub000/internal/repository"
	"github.com/user624-47/farmflow-sub000/internal/service"
	"github.com/user624-47/farmflow-sub000/pkg/config"
	"github.com/user624-47/farmflow-sub000/pkg/database"
	"github.com/user624-47/farmflow-sub000/pkg/logger"
	"github.com/user624-47/farmflow-sub000/pkg/redis"
)

// Container holds all dependencies for the API server
type Container struct {
	// Infrastructure
	DB         *database.PostgresDB
	Redis      *redis.Client
	Cache      *cache.QueryCache
	Publisher  *cache.Publisher
	Subscriber *cache.Subscriber
	Blob       blob.Store
	Geocoder   *client.GeocodingClient

	// Repositories
	OrganizationRepo repository.OrganizationRepository
	FarmerRepo       repository.FarmerRepository
	LivestockRepo    repository.LivestockRepository
	CropRepo         repository.CropRepository
	FinanceRepo      repository.FinanceRepository
	ExtensionRepo    repository.ExtensionRepository

	// Services
	OrganizationService service.OrganizationService
	FarmerService       service.FarmerService
	LivestockService    service.LivestockService
	CropService         service.CropService
	FinanceService      service.FinanceService
	ExtensionSvc        service.ExtensionSvc
	GeocodeService      service.GeocodeService
	UploadService       service.UploadService

	// Handlers
	Handlers handler.Handlers
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	Config *config.Config
	DB     *database.PostgresDB
	Redis  *redis.Client
	Logger *logger.Logger
}

// NewContainer wires repositories, the query cache, the change-notification
// bridge, services and handlers together
func NewContainer(cfg *ContainerConfig) (*Container, error) {
	c := &Container{
		DB:    cfg.DB,
		Redis: cfg.Redis,
	}

	conf := cfg.Config
	log := cfg.Logger

	// Reactive query cache and the Redis change-notification bridge
	c.Cache = cache.New(cache.Config{
		TTL:             conf.Cache.TTL,
		StaleAfter:      conf.Cache.StaleAfter,
		CleanupInterval: conf.Cache.CleanupInterval,
	}, log)
	c.Publisher = cache.NewPublisher(c.Redis, log)
	c.Subscriber = cache.NewSubscriber(c.Redis, c.Cache, log)

	// External dependencies
	store, err := blob.NewStore(conf.Upload.Driver, conf.Upload.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize blob store: %w", err)
	}
	c.Blob = store
	c.Geocoder = client.NewGeocodingClient(client.GeocodingConfig{
		BaseURL:     conf.Geocoding.BaseURL,
		AccessToken: conf.Geocoding.AccessToken,
		Timeout:     conf.Geocoding.Timeout,
	}, log)

	// Repositories
	pool := c.DB.Pool()
	c.OrganizationRepo = repository.NewPostgresOrganizationRepository(pool)
	c.FarmerRepo = repository.NewPostgresFarmerRepository(pool)
	c.LivestockRepo = repository.NewPostgresLivestockRepository(pool)
	c.CropRepo = repository.NewPostgresCropRepository(pool)
	c.FinanceRepo = repository.NewPostgresFinanceRepository(pool)
	c.ExtensionRepo = repository.NewPostgresExtensionRepository(pool)

	// Services
	c.OrganizationService = service.NewOrganizationService(c.OrganizationRepo, c.Cache, c.Publisher)
	c.FarmerService = service.NewFarmerService(c.FarmerRepo, c.Cache, c.Publisher)
	c.LivestockService = service.NewLivestockService(c.LivestockRepo, c.FarmerRepo, c.Cache, c.Publisher)
	c.CropService = service.NewCropService(c.CropRepo, c.FarmerRepo, c.Cache, c.Publisher)
	c.FinanceService = service.NewFinanceService(c.FinanceRepo, c.FarmerRepo, c.Cache, c.Publisher)
	c.ExtensionSvc = service.NewExtensionSvc(c.ExtensionRepo, c.Cache, c.Publisher)
	c.GeocodeService = service.NewGeocodeService(c.Geocoder)
	c.UploadService = service.NewUploadService(c.Blob, conf.Upload.PublicBaseURL, conf.Upload.MaxSizeBytes)

	// Handlers
	c.Handlers = handler.Handlers{
		Health:       handler.NewHealthHandler(c.DB, c.Redis, conf.App.Version),
		Organization: handler.NewOrganizationHandler(c.OrganizationService),
		Farmer:       handler.NewFarmerHandler(c.FarmerService),
		Livestock:    handler.NewLivestockHandler(c.LivestockService),
		Crop:         handler.NewCropHandler(c.CropService),
		Finance:      handler.NewFinanceHandler(c.FinanceService),
		Extension:    handler.NewExtensionHandler(c.ExtensionSvc),
		Geocode:      handler.NewGeocodeHandler(c.GeocodeService),
		Upload:       handler.NewUploadHandler(c.UploadService, conf.Upload.MaxSizeBytes),
	}

	return c, nil
}
