package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/user624-47/farmflow-sub000/pkg/logger"
	"github.com/user624-47/farmflow-sub000/pkg/middleware"
)

// Handlers groups everything the router mounts
type Handlers struct {
	Health       *HealthHandler
	Organization *OrganizationHandler
	Farmer       *FarmerHandler
	Livestock    *LivestockHandler
	Crop         *CropHandler
	Finance      *FinanceHandler
	Extension    *ExtensionHandler
	Geocode      *GeocodeHandler
	Upload       *UploadHandler
}

// RouterConfig holds router construction settings
type RouterConfig struct {
	JWTSecret   string
	Development bool
}

// NewRouter builds the gin engine with the full route table. Everything under
// /api/v1 requires a valid token carrying user and organization claims; only
// the health probe is open.
func NewRouter(cfg RouterConfig, h Handlers, log *logger.Logger) *gin.Engine {
	if !cfg.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))

	r.GET("/health", h.Health.Health)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTMiddleware(&middleware.JWTConfig{Secret: cfg.JWTSecret}))

	org := v1.Group("/organization")
	{
		org.GET("", h.Organization.Get)
		org.PATCH("", h.Organization.Update)
	}

	farmers := v1.Group("/farmers")
	{
		farmers.POST("", h.Farmer.Create)
		farmers.GET("", h.Farmer.List)
		farmers.GET("/stats", h.Farmer.Stats)
		farmers.GET("/:id", h.Farmer.GetByID)
		farmers.PATCH("/:id", h.Farmer.Update)
		farmers.DELETE("/:id", h.Farmer.Delete)
	}

	livestock := v1.Group("/livestock")
	{
		livestock.POST("", h.Livestock.Create)
		livestock.GET("", h.Livestock.List)
		livestock.GET("/stats", h.Livestock.Stats)
		livestock.GET("/:id", h.Livestock.GetByID)
		livestock.PATCH("/:id", h.Livestock.Update)
		livestock.DELETE("/:id", h.Livestock.Delete)

		livestock.POST("/:id/health-records", h.Livestock.AddHealthRecord)
		livestock.PATCH("/:id/health-records/:recordId", h.Livestock.UpdateHealthRecord)
		livestock.DELETE("/:id/health-records/:recordId", h.Livestock.RemoveHealthRecord)

		livestock.POST("/:id/breeding-records", h.Livestock.AddBreedingRecord)
		livestock.PATCH("/:id/breeding-records/:recordId", h.Livestock.UpdateBreedingRecord)
		livestock.DELETE("/:id/breeding-records/:recordId", h.Livestock.RemoveBreedingRecord)

		livestock.POST("/:id/feeding-records", h.Livestock.AddFeedingRecord)
		livestock.PATCH("/:id/feeding-records/:recordId", h.Livestock.UpdateFeedingRecord)
		livestock.DELETE("/:id/feeding-records/:recordId", h.Livestock.RemoveFeedingRecord)
	}

	crops := v1.Group("/crops")
	{
		crops.POST("", h.Crop.Create)
		crops.GET("", h.Crop.List)
		crops.GET("/stats", h.Crop.Stats)
		crops.GET("/:id", h.Crop.GetByID)
		crops.PATCH("/:id", h.Crop.Update)
		crops.DELETE("/:id", h.Crop.Delete)
	}

	finance := v1.Group("/financial-services")
	{
		finance.POST("", h.Finance.Create)
		finance.GET("", h.Finance.List)
		finance.GET("/stats", h.Finance.Stats)
		finance.GET("/:id", h.Finance.GetByID)
		finance.PATCH("/:id", h.Finance.Update)
		finance.DELETE("/:id", h.Finance.Delete)
	}

	extension := v1.Group("/extension-services")
	{
		extension.POST("", h.Extension.Create)
		extension.GET("", h.Extension.List)
		extension.GET("/stats", h.Extension.Stats)
		extension.GET("/:id", h.Extension.GetByID)
		extension.PATCH("/:id", h.Extension.Update)
		extension.DELETE("/:id", h.Extension.Delete)
	}

	v1.GET("/geocode/reverse", h.Geocode.Reverse)
	v1.POST("/uploads/images", h.Upload.UploadImage)

	return r
}
