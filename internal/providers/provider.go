package providers

import (
	"context"
	"errors"
	"fmt"

	"github.com/redeflights/flightsearch/internal/models"
)

// Provider is one flight-data source producing canonical offers.
type Provider interface {
	Name() string
	Search(ctx context.Context, req models.SearchRequest) ([]models.Offer, error)
	// Authenticate attempts a token acquisition without searching. Used by
	// the health endpoint.
	Authenticate(ctx context.Context) error
}

// Suggester is implemented by providers that expose an airport autocomplete
// service.
type Suggester interface {
	Suggest(ctx context.Context, query string) ([]models.Airport, error)
}

// ErrNoResults reports a confirmed-empty search: the provider answered but
// returned zero usable itineraries. Strict mode surfaces this to the caller
// instead of substituting demo data.
var ErrNoResults = errors.New("no flights returned for the selected route/date")

// TransportError is a network failure or non-2xx answer from a search
// endpoint.
type TransportError struct {
	Provider string
	Status   int
	Detail   string
	Err      error
}

func (e *TransportError) Error() string {
	switch {
	case e.Detail != "":
		return e.Provider + ": " + e.Detail
	case e.Err != nil:
		return e.Provider + ": " + e.Err.Error()
	default:
		return fmt.Sprintf("%s: search endpoint returned status %d", e.Provider, e.Status)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
