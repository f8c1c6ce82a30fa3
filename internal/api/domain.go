package api

import (
	"github.com/pkmncore/seriedex/internal/series"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Series series.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	seriesSystem := series.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	return &Domain{
		Series: seriesSystem,
	}
}
