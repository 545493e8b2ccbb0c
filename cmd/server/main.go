// Command server runs the warehouse HTTP API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"almacen/internal/config"
	"almacen/internal/domain/auth"
	"almacen/internal/domain/bom"
	"almacen/internal/domain/i18n"
	"almacen/internal/domain/material"
	"almacen/internal/domain/product"
	"almacen/internal/domain/stock"
	"almacen/internal/domain/user"
	v1 "almacen/internal/infrastructure/http/v1"
	"almacen/internal/infrastructure/storage/postgres"
	"almacen/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal(ctx, "load config", "error", err)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
	})
	if err != nil {
		logger.Fatal(ctx, "init logger", "error", err)
	}
	defer func() { _ = log.Sync() }()
	ctx = logger.WithLogger(ctx, log)

	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(ctx, cfg.Database.URL, postgres.EmbeddedMigrations); err != nil {
			logger.Fatal(ctx, "run migrations", "error", err)
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal(ctx, "connect to database", "error", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool, cfg.Database.StatementTimeout)

	materialRepo := postgres.NewMaterialRepository(txManager)
	productRepo := postgres.NewProductRepository(txManager)
	userRepo := postgres.NewUserRepository(txManager)
	bomRepo := postgres.NewBOMRepository(txManager)

	materialService := material.NewService(materialRepo, txManager, i18n.ResolveName)
	productService := product.NewService(productRepo, txManager)
	userService := user.NewService(userRepo, txManager)
	recipeService := bom.NewService(bomRepo, productRepo, materialRepo, txManager)
	stockEngine := stock.NewEngine(productRepo, materialRepo, bomRepo, txManager)

	jwtService := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.Issuer)
	authService := auth.NewService(userService, jwtService)

	router := v1.NewRouter(v1.RouterConfig{
		Pool:            pool,
		Logger:          log,
		TokenValidator:  jwtService,
		AuthService:     authService,
		MaterialService: materialService,
		ProductService:  productService,
		UserService:     userService,
		RecipeService:   recipeService,
		StockEngine:     stockEngine,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		logger.Info(ctx, "http server starting", "addr", cfg.HTTP.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal(ctx, "http server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info(ctx, "shutting down", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "graceful shutdown failed", "error", err)
	}
	logger.Info(ctx, "server stopped")
}
