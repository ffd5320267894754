package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/urmzd/autovolt/pkg/api/handlers"
	"github.com/urmzd/autovolt/pkg/db"
	"github.com/urmzd/autovolt/pkg/device/schema"
	"github.com/urmzd/autovolt/pkg/push"
)

// Router holds the Gin engine and dependencies
type Router struct {
	engine    *gin.Engine
	db        *db.DB
	validator *schema.Validator
	publisher push.Publisher
}

// NewRouter creates a new API router
func NewRouter(database *db.DB, validator *schema.Validator, publisher push.Publisher) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	SetupMiddleware(engine)

	router := &Router{
		engine:    engine,
		db:        database,
		validator: validator,
		publisher: publisher,
	}

	router.setupRoutes()

	return router
}

func (r *Router) setupRoutes() {
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	healthHandler := handlers.NewHealthHandler(r.db, r.publisher)
	r.engine.GET("/health", healthHandler.Health)

	v1 := r.engine.Group("/api/v1")
	{
		v1.GET("/health", healthHandler.Health)

		gpioHandler := handlers.NewGPIOHandler(r.db.Devices())
		devicesHandler := handlers.NewDevicesHandler(r.db.Devices(), r.db.Profiles(), r.validator, r.publisher)
		devices := v1.Group("/devices")
		{
			// static segments are registered before /:id
			devices.GET("/gpio-pin-info", gpioHandler.PinInfo)
			devices.POST("/gpio-validate", gpioHandler.Validate)

			devices.GET("", devicesHandler.ListDevices)
			devices.POST("", devicesHandler.CreateDevice)
			devices.GET("/:id", devicesHandler.GetDevice)
			devices.PUT("/:id", devicesHandler.UpdateDevice)
			devices.DELETE("/:id", devicesHandler.DeleteDevice)
			devices.POST("/:id/secret", devicesHandler.RevealSecret)
		}
	}
}

// Handler returns the router as an http.Handler
func (r *Router) Handler() http.Handler {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
