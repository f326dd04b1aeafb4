package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kampuskitap/internal/config"
	"kampuskitap/internal/handler"
	"kampuskitap/internal/logging"
	"kampuskitap/internal/repository"
	"kampuskitap/internal/service"
	"kampuskitap/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()
	bootLog := logging.New(os.Stderr, "info")

	// Load .env file
	if err := godotenv.Load(); err != nil {
		bootLog.Info(ctx, "no .env file found, relying on environment variables")
	}

	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		bootLog.Error(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	log := logging.New(os.Stderr, cfg.LogLevel)
	for _, w := range cfg.Warnings {
		log.Warn(ctx, w)
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	// --- Database Connection ---
	dbPool, err := config.ConnectDB(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := config.Migrate(ctx, dbPool); err != nil {
		log.Error(ctx, "failed to migrate database", "error", err)
		os.Exit(1)
	}
	log.Info(ctx, "migrations applied")

	// --- Initialize Utilities ---
	jwtUtil := utils.NewJWTUtil(cfg.JWTSecret, cfg.JWTExpiration)

	var presigner service.ObjectPresigner
	if cfg.S3.Enabled() {
		pc, err := service.NewS3Presigner(ctx, cfg.S3)
		if err != nil {
			log.Error(ctx, "failed to configure S3", "error", err)
			os.Exit(1)
		}
		presigner = pc
		log.Info(ctx, "image uploads enabled", "bucket", cfg.S3.Bucket)
	} else {
		log.Info(ctx, "image uploads disabled, S3_BUCKET not set")
	}

	// --- Initialize Repositories ---
	userRepo := repository.NewUserRepository(dbPool)
	productRepo := repository.NewProductRepository(dbPool)
	categoryRepo := repository.NewCategoryRepository(dbPool)

	// --- Initialize Services ---
	router := handler.NewRouter(handler.Deps{
		Auth:       service.NewAuthService(userRepo, jwtUtil, log),
		Products:   service.NewProductService(productRepo, log),
		Categories: service.NewCategoryService(categoryRepo),
		Uploads:    service.NewUploadService(presigner, cfg.S3, log),
		JWT:        jwtUtil,
		DB:         dbPool,
		Log:        log,
		CORS:       cfg.CORSOrigins,
	})

	// --- Start Server ---
	srv := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info(ctx, "server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info(ctx, "shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server forced to shutdown", "error", err)
	}

	log.Info(ctx, "server exiting")
}
