package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"gamecatalog/backend/internal/app"
	"gamecatalog/backend/internal/config"
	"gamecatalog/backend/internal/database"
	"gamecatalog/backend/internal/handler"
	"gamecatalog/backend/internal/hub"
	"gamecatalog/backend/internal/media"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "gamecatalog/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Game Catalog API
// @version         1.0
// @description     Content API for games imported from the GOG catalog.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	slog.SetDefault(app.NewLogger(cfg, os.Stderr))

	if err := run(cfg); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}

	// Connect to the database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close(db)

	storage, err := media.NewOsStorage(cfg.UploadDir, strings.TrimRight(cfg.PublicURL, "/")+"/uploads")
	if err != nil {
		return err
	}

	service, err := app.NewPopulateService(cfg, db)
	if err != nil {
		return err
	}
	events := hub.NewHub()
	service.WithNotifier(events)

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	router.StaticFS("/uploads", storage.FileSystem())

	// API v1 routes
	handler.Routes{
		Games:     handler.NewGameHandler(db),
		Taxonomy:  handler.NewTaxonomyHandler(db),
		Populate:  handler.NewPopulateHandler(service, events),
		Upload:    handler.NewUploadHandler(db, storage),
		JWTSecret: cfg.JWTSecret,
	}.Register(router.Group("/api/v1"))

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server is running", "addr", cfg.ListenAddr, "swagger", cfg.PublicURL+"/swagger/index.html")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
