package config

import (
	"fmt"
	"os"

	"github.com/pkmncore/seriedex/pkg/formatting"
	"github.com/pkmncore/seriedex/pkg/middleware"
	"github.com/pkmncore/seriedex/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "SERIEDEX_CORS_ENABLED",
	Origins:          "SERIEDEX_CORS_ORIGINS",
	AllowedMethods:   "SERIEDEX_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "SERIEDEX_CORS_ALLOWED_HEADERS",
	AllowCredentials: "SERIEDEX_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "SERIEDEX_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "SERIEDEX_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "SERIEDEX_PAGINATION_MAX_PAGE_SIZE",
}

// APIConfig holds API routing, CORS, and pagination settings.
type APIConfig struct {
	BasePath     string                `toml:"base_path"`
	MaxImageSize string                `toml:"max_image_size"`
	CORS         middleware.CORSConfig `toml:"cors"`
	Pagination   pagination.Config     `toml:"pagination"`
}

func (c *APIConfig) MaxImageSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxImageSize)
	if err != nil {
		return 5 * 1024 * 1024 // 5MB fallback
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS and pagination configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxImageSize != "" {
		c.MaxImageSize = overlay.MaxImageSize
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxImageSize == "" {
		c.MaxImageSize = "5MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("SERIEDEX_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("SERIEDEX_API_MAX_IMAGE_SIZE"); v != "" {
		c.MaxImageSize = v
	}
}
