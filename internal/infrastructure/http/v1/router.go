// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"almacen/internal/domain/auth"
	"almacen/internal/domain/bom"
	"almacen/internal/domain/material"
	"almacen/internal/domain/product"
	"almacen/internal/domain/stock"
	"almacen/internal/domain/user"
	"almacen/internal/infrastructure/http/v1/handlers"
	"almacen/internal/infrastructure/http/v1/middleware"
	"almacen/pkg/logger"
)

// RouterConfig holds the router's dependencies.
type RouterConfig struct {
	Pool   *pgxpool.Pool
	Logger *logger.Logger

	TokenValidator middleware.TokenValidator

	AuthService     *auth.Service
	MaterialService *material.Service
	ProductService  *product.Service
	UserService     *user.Service
	RecipeService   *bom.Service
	StockEngine     *stock.Engine
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.Metrics())
	router.Use(middleware.ErrorHandler())

	// Health and metrics endpoints (no auth)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authHandler := handlers.NewAuthHandler(cfg.AuthService)
	materialHandler := handlers.NewMaterialHandler(cfg.MaterialService)
	productHandler := handlers.NewProductHandler(cfg.ProductService, cfg.RecipeService, cfg.StockEngine)
	userHandler := handlers.NewUserHandler(cfg.UserService)
	exportHandler := handlers.NewExportHandler(cfg.MaterialService)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/login", authHandler.Login)

		// Reads are open; mutations require a valid token.
		v1.GET("/materiaprima/search", materialHandler.Search)
		v1.GET("/materiaprima/export", exportHandler.Materials)
		v1.GET("/materiaprima/:id", materialHandler.Get)
		v1.GET("/materiaprima/:id/translations", materialHandler.Translations)

		v1.GET("/producto/search", productHandler.Search)
		v1.GET("/producto/:id", productHandler.Get)
		v1.GET("/producto/:id/materials", productHandler.Recipe)

		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.TokenValidator))
		{
			protected.POST("/materiaprima", materialHandler.Create)
			protected.PUT("/materiaprima/:id", materialHandler.Update)
			protected.DELETE("/materiaprima/:id", materialHandler.Delete)

			protected.POST("/producto", productHandler.Create)
			protected.PUT("/producto/:id", productHandler.Update)
			protected.PUT("/producto/update-stock/:id", productHandler.UpdateStock)
			protected.DELETE("/producto/:id", productHandler.Delete)
			protected.PUT("/producto/:id/materials", productHandler.SetRecipeEntry)
			protected.DELETE("/producto/:id/materials/:materialId", productHandler.RemoveRecipeEntry)

			protected.POST("/usuario", userHandler.Register)
			protected.GET("/usuario", userHandler.Search)
			protected.GET("/usuario/:id", userHandler.Get)
			protected.PUT("/usuario/:id", userHandler.Update)
			protected.DELETE("/usuario/:id", userHandler.Delete)
		}
	}

	return router
}
