package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/redeflights/flightsearch/internal/models"
	"github.com/redeflights/flightsearch/pkg/logger"
)

// Searcher is the orchestrator surface the HTTP layer depends on.
type Searcher interface {
	Search(ctx context.Context, req models.SearchRequest) ([]models.Offer, error)
	Suggestions(ctx context.Context, query string) []models.Airport
	Authenticate(ctx context.Context) error
	ProviderName() string
}

type SearchHandler struct {
	searcher Searcher
	log      logger.Logger
}

func NewSearchHandler(searcher Searcher, log logger.Logger) *SearchHandler {
	return &SearchHandler{searcher: searcher, log: log}
}

// Search serves both the POST body and GET query-string forms of the search
// endpoint. Every failure mode is reported uniformly as a 500 with the
// human-readable message; the error taxonomy stays internal.
func (h *SearchHandler) Search(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.SearchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
	}

	h.log.Info("new search request",
		"origin", req.Origin,
		"destination", req.Destination,
		"departureDate", req.DepartureDate,
		"returnDate", req.ReturnDate,
	)

	offers, err := h.searcher.Search(ctx, req)
	if err != nil {
		h.log.Error("search failed", "error", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
	}

	h.log.Info("search successful", "offers", len(offers))
	return c.JSON(http.StatusOK, offers)
}

// Suggestions serves the airport autocomplete endpoint.
func (h *SearchHandler) Suggestions(c echo.Context) error {
	query := c.QueryParam("q")
	return c.JSON(http.StatusOK, h.searcher.Suggestions(c.Request().Context(), query))
}

// Health attempts a token acquisition against the active provider.
func (h *SearchHandler) Health(c echo.Context) error {
	provider := titleCase(h.searcher.ProviderName())

	if err := h.searcher.Authenticate(c.Request().Context()); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"status": provider + " Connection Failed",
			"error":  err.Error(),
		})
	}

	return c.JSON(http.StatusOK, models.HealthResponse{
		Status:   "Connected to " + provider,
		HasToken: true,
	})
}

// Root serves the service banner.
func Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": "RedeFlights Backend is running!",
	})
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
