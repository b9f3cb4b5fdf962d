// Package app wires configuration into the services shared by the server and the CLI.
package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"gamecatalog/backend/internal/asset"
	"gamecatalog/backend/internal/catalog"
	"gamecatalog/backend/internal/config"
	"gamecatalog/backend/internal/populate"
	"gamecatalog/backend/internal/store"
	"gamecatalog/backend/internal/storefront"
	"gamecatalog/backend/pkg/jwt"

	"gorm.io/gorm"
)

// UploadTokenTTL is the lifetime of an upload token minted from JWT_SECRET.
const UploadTokenTTL = 7 * 24 * time.Hour

// NewLogger builds the process logger from LOG_LEVEL and LOG_FORMAT.
func NewLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if strings.EqualFold(cfg.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// UploadToken returns UPLOAD_TOKEN, or mints an admin token from JWT_SECRET when it is unset.
func UploadToken(cfg *config.Config) (string, error) {
	if cfg.UploadToken != "" {
		return cfg.UploadToken, nil
	}
	if cfg.JWTSecret == "" {
		return "", errors.New("either UPLOAD_TOKEN or JWT_SECRET must be set")
	}
	token, err := jwt.GenerateToken(cfg.JWTSecret, "populate", jwt.RoleAdmin, UploadTokenTTL)
	if err != nil {
		return "", fmt.Errorf("mint upload token: %w", err)
	}
	return token, nil
}

// NewPopulateService connects the populate service to the upstream clients and db.
func NewPopulateService(cfg *config.Config, db *gorm.DB) (*populate.Service, error) {
	token, err := UploadToken(cfg)
	if err != nil {
		return nil, err
	}

	catalogClient := catalog.NewClient(catalog.ClientOptions{
		BaseURL: cfg.CatalogURL,
		Timeout: cfg.HTTPTimeout,
	})
	storefrontClient := storefront.NewClient(storefront.ClientOptions{
		BaseURL: cfg.StorefrontURL,
		Timeout: cfg.HTTPTimeout,
	})
	assetClient := asset.NewClient(asset.ClientOptions{
		UploadURL: cfg.UploadURL,
		Token:     token,
		Timeout:   cfg.HTTPTimeout,
	})

	return populate.NewService(catalogClient, store.New(db), storefrontClient, assetClient, populate.Options{
		Offset:           cfg.PopulateOffset,
		Limit:            cfg.PopulateLimit,
		Concurrency:      cfg.PopulateConcurrency,
		ScreenshotFormat: cfg.ScreenshotFormat,
		MaxScreenshots:   cfg.MaxScreenshots,
	}), nil
}
