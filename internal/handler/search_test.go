package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redeflights/flightsearch/internal/models"
	"github.com/redeflights/flightsearch/pkg/logger"
)

type fakeSearcher struct {
	offers      []models.Offer
	searchErr   error
	airports    []models.Airport
	authErr     error
	provider    string
	lastRequest models.SearchRequest
	lastQuery   string
}

func (f *fakeSearcher) Search(ctx context.Context, req models.SearchRequest) ([]models.Offer, error) {
	f.lastRequest = req
	return f.offers, f.searchErr
}

func (f *fakeSearcher) Suggestions(ctx context.Context, query string) []models.Airport {
	f.lastQuery = query
	return f.airports
}

func (f *fakeSearcher) Authenticate(ctx context.Context) error { return f.authErr }

func (f *fakeSearcher) ProviderName() string { return f.provider }

func newContext(req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func TestSearchPostReturnsOffers(t *testing.T) {
	searcher := &fakeSearcher{offers: []models.Offer{
		{ID: "amadeus-0", Type: models.TripOneWay, Price: models.Price{Total: 5000, Base: 4200, Tax: 800, Currency: "INR"}},
	}}
	h := NewSearchHandler(searcher, logger.NewNop())

	body := `{"origin":"DEL","destination":"BOM","departureDate":"2026-09-10","adults":2}`
	req := httptest.NewRequest(http.MethodPost, "/api/flights/search", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, rec := newContext(req)

	require.NoError(t, h.Search(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var offers []models.Offer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &offers))
	require.Len(t, offers, 1)
	assert.Equal(t, "amadeus-0", offers[0].ID)

	assert.Equal(t, "DEL", searcher.lastRequest.Origin)
	assert.Equal(t, 2, searcher.lastRequest.Adults)
}

func TestSearchGetBindsQueryParams(t *testing.T) {
	searcher := &fakeSearcher{offers: []models.Offer{{ID: "amadeus-0"}}}
	h := NewSearchHandler(searcher, logger.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/flights/search?origin=DEL&destination=BOM&departureDate=2026-09-10&returnDate=2026-09-17", nil)
	c, rec := newContext(req)

	require.NoError(t, h.Search(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "DEL", searcher.lastRequest.Origin)
	assert.Equal(t, "2026-09-17", searcher.lastRequest.ReturnDate)
}

func TestSearchFailureIsUniform500(t *testing.T) {
	searcher := &fakeSearcher{searchErr: errors.New("no flights returned for the selected route/date")}
	h := NewSearchHandler(searcher, logger.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/flights/search", strings.NewReader(`{"origin":"DEL"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, rec := newContext(req)

	require.NoError(t, h.Search(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "no flights returned for the selected route/date", body.Error)
}

func TestSearchMalformedBodyIsUniform500(t *testing.T) {
	h := NewSearchHandler(&fakeSearcher{}, logger.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/flights/search", strings.NewReader(`{"adults": "two"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, rec := newContext(req)

	require.NoError(t, h.Search(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Error)
}

func TestSuggestionsEndpoint(t *testing.T) {
	searcher := &fakeSearcher{airports: []models.Airport{
		{Name: "Indira Gandhi International Airport", Code: "DEL", City: "New Delhi"},
	}}
	h := NewSearchHandler(searcher, logger.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/flights/suggestions?q=delhi", nil)
	c, rec := newContext(req)

	require.NoError(t, h.Suggestions(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "delhi", searcher.lastQuery)

	var airports []models.Airport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &airports))
	require.Len(t, airports, 1)
	assert.Equal(t, "DEL", airports[0].Code)
}

func TestHealthReportsConnectedProvider(t *testing.T) {
	searcher := &fakeSearcher{provider: "amadeus"}
	h := NewSearchHandler(searcher, logger.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	c, rec := newContext(req)

	require.NoError(t, h.Health(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body models.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Connected to Amadeus", body.Status)
	assert.True(t, body.HasToken)
}

func TestHealthReportsAuthFailure(t *testing.T) {
	searcher := &fakeSearcher{provider: "sabre", authErr: errors.New("invalid credentials")}
	h := NewSearchHandler(searcher, logger.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	c, rec := newContext(req)

	require.NoError(t, h.Health(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Sabre Connection Failed", body["status"])
	assert.Equal(t, "invalid credentials", body["error"])
}

func TestRootBanner(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c, rec := newContext(req)

	require.NoError(t, Root(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "RedeFlights Backend is running!")
}
