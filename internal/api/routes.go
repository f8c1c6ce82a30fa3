package api

import (
	"net/http"

	"github.com/pkmncore/seriedex/internal/config"
	"github.com/pkmncore/seriedex/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
) {
	routes.Register(
		mux,
		domain.Series.Handler(cfg.API.MaxImageSizeBytes()).Routes(),
	)
}
