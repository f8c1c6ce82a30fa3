// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/pkmncore/seriedex/internal/config"
	"github.com/pkmncore/seriedex/internal/infrastructure"
	"github.com/pkmncore/seriedex/pkg/auth"
	"github.com/pkmncore/seriedex/pkg/middleware"
	"github.com/pkmncore/seriedex/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	registerRoutes(mux, domain, cfg)

	var tokens *auth.Tokens
	if cfg.Auth.Enabled {
		tokens = auth.New(&cfg.Auth)
	}

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Infrastructure.Logger))
	m.Use(middleware.Auth(tokens))

	return m, nil
}
