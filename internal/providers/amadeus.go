package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/redeflights/flightsearch/internal/airline"
	"github.com/redeflights/flightsearch/internal/auth"
	"github.com/redeflights/flightsearch/internal/duration"
	"github.com/redeflights/flightsearch/internal/models"
	"github.com/redeflights/flightsearch/pkg/logger"
)

type amadeusResponse struct {
	Data []amadeusOffer `json:"data"`
}

type amadeusOffer struct {
	Itineraries            []amadeusItinerary `json:"itineraries"`
	Price                  amadeusPrice       `json:"price"`
	ValidatingAirlineCodes []string           `json:"validatingAirlineCodes"`
}

type amadeusItinerary struct {
	Duration string           `json:"duration"`
	Segments []amadeusSegment `json:"segments"`
}

type amadeusSegment struct {
	Departure amadeusEndpoint  `json:"departure"`
	Arrival   amadeusEndpoint  `json:"arrival"`
	Carrier   string           `json:"carrierCode"`
	Number    string           `json:"number"`
	Aircraft  *amadeusAircraft `json:"aircraft"`
	Duration  string           `json:"duration"`
	Cabin     string           `json:"cabin"`
}

type amadeusEndpoint struct {
	IataCode string `json:"iataCode"`
	Terminal string `json:"terminal"`
	At       string `json:"at"`
}

type amadeusAircraft struct {
	Code string `json:"code"`
}

type amadeusPrice struct {
	Total    string `json:"total"`
	Base     string `json:"base"`
	Currency string `json:"currency"`
}

type amadeusErrorBody struct {
	Errors []struct {
		Detail string `json:"detail"`
	} `json:"errors"`
	ErrorDescription string `json:"error_description"`
	Message          string `json:"message"`
}

var amadeusCabins = map[string]string{
	models.CabinEconomy:        "ECONOMY",
	models.CabinPremiumEconomy: "PREMIUM_ECONOMY",
	models.CabinBusiness:       "BUSINESS",
	models.CabinFirst:          "FIRST",
}

// AmadeusConfig carries the provider endpoint and credentials.
type AmadeusConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Currency     string
	MaxResults   int
}

// AmadeusProvider queries the Amadeus flight-offers API: GET with query
// parameters, PT-duration tokens, fare decomposed as tax = total − base.
type AmadeusProvider struct {
	cfg    AmadeusConfig
	client *http.Client
	tokens *auth.Manager
	log    logger.Logger
}

func NewAmadeusProvider(cfg AmadeusConfig, client *http.Client, authClient *http.Client, log logger.Logger) *AmadeusProvider {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 20
	}
	if cfg.Currency == "" {
		cfg.Currency = "INR"
	}

	var attempts []auth.Attempt
	if cfg.ClientID != "" && cfg.ClientSecret != "" {
		attempts = append(attempts, auth.FormCredentials(cfg.BaseURL+"/v1/security/oauth2/token", cfg.ClientID, cfg.ClientSecret))
	}

	return &AmadeusProvider{
		cfg:    cfg,
		client: client,
		tokens: auth.NewManager("amadeus", authClient, log, attempts...),
		log:    log,
	}
}

func (p *AmadeusProvider) Name() string {
	return "amadeus"
}

func (p *AmadeusProvider) Authenticate(ctx context.Context) error {
	_, err := p.tokens.Token(ctx)
	return err
}

func (p *AmadeusProvider) Search(ctx context.Context, req models.SearchRequest) ([]models.Offer, error) {
	token, err := p.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	searchURL := p.cfg.BaseURL + "/v2/shopping/flight-offers?" + p.buildQuery(req).Encode()
	p.log.Info("searching amadeus", "origin", req.Origin, "destination", req.Destination, "date", req.DepartureDate)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, &TransportError{Provider: p.Name(), Err: err}
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Provider: p.Name(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Provider: p.Name(), Err: err}
	}

	if resp.StatusCode >= 300 {
		return nil, &TransportError{Provider: p.Name(), Status: resp.StatusCode, Detail: amadeusErrorDetail(body)}
	}

	var raw amadeusResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &TransportError{Provider: p.Name(), Err: err}
	}

	offers := p.normalize(raw)
	if len(offers) == 0 {
		return nil, fmt.Errorf("amadeus: %w", ErrNoResults)
	}

	p.log.Info("amadeus search complete", "offers", len(offers))
	return offers, nil
}

// buildQuery maps the canonical request onto Amadeus query parameters. The
// return leg, child and infant counts are included only when present.
func (p *AmadeusProvider) buildQuery(req models.SearchRequest) url.Values {
	params := url.Values{}
	params.Set("originLocationCode", req.Origin)
	params.Set("destinationLocationCode", req.Destination)
	params.Set("departureDate", req.DepartureDate)
	params.Set("adults", strconv.Itoa(req.AdultCount()))
	params.Set("currencyCode", p.cfg.Currency)
	params.Set("max", strconv.Itoa(p.cfg.MaxResults))

	if req.ReturnDate != "" {
		params.Set("returnDate", req.ReturnDate)
	}
	if req.Children > 0 {
		params.Set("children", strconv.Itoa(req.Children))
	}
	if req.Infants > 0 {
		params.Set("infants", strconv.Itoa(req.Infants))
	}
	params.Set("travelClass", amadeusCabin(req.CabinClass))

	return params
}

func amadeusCabin(cabinClass string) string {
	key := strings.ReplaceAll(strings.ToUpper(cabinClass), " ", "_")
	if cabin, ok := amadeusCabins[key]; ok {
		return cabin
	}
	return "ECONOMY"
}

func (p *AmadeusProvider) normalize(raw amadeusResponse) []models.Offer {
	limit := len(raw.Data)
	if limit > p.cfg.MaxResults {
		limit = p.cfg.MaxResults
	}

	offers := make([]models.Offer, 0, limit)
	for i := 0; i < limit; i++ {
		offer, err := p.normalizeOffer(raw.Data[i], i)
		if err != nil {
			p.log.Warn("dropping unparseable amadeus offer", "index", i, "error", err)
			continue
		}
		offers = append(offers, offer)
	}
	return offers
}

func (p *AmadeusProvider) normalizeOffer(raw amadeusOffer, index int) (models.Offer, error) {
	if len(raw.Itineraries) == 0 {
		return models.Offer{}, fmt.Errorf("offer has no itineraries")
	}

	legs := make([]models.Leg, 0, len(raw.Itineraries))
	for _, itinerary := range raw.Itineraries {
		if len(itinerary.Segments) == 0 {
			return models.Offer{}, fmt.Errorf("itinerary has no segments")
		}

		segments := make([]models.Segment, 0, len(itinerary.Segments))
		for _, s := range itinerary.Segments {
			aircraft := ""
			if s.Aircraft != nil {
				aircraft = s.Aircraft.Code
			}

			segDuration := s.Duration
			if segDuration == "" {
				segDuration = itinerary.Duration
			}

			segments = append(segments, models.Segment{
				Departure: models.Endpoint{
					Airport:  s.Departure.IataCode,
					Terminal: s.Departure.Terminal,
					Time:     s.Departure.At,
				},
				Arrival: models.Endpoint{
					Airport:  s.Arrival.IataCode,
					Terminal: s.Arrival.Terminal,
					Time:     s.Arrival.At,
				},
				Airline:      s.Carrier,
				AirlineName:  airline.Name(s.Carrier),
				FlightNumber: s.Number,
				Aircraft:     aircraft,
				Duration:     duration.Minutes(segDuration),
				Stops:        0,
				Cabin:        s.Cabin,
			})
		}

		legs = append(legs, models.AssembleLeg(segments, duration.Minutes(itinerary.Duration)))
	}

	total, err := strconv.ParseFloat(raw.Price.Total, 64)
	if err != nil {
		total = 0
	}
	base := total
	if raw.Price.Base != "" {
		if b, err := strconv.ParseFloat(raw.Price.Base, 64); err == nil {
			base = b
		}
	}

	currency := raw.Price.Currency
	if currency == "" {
		currency = p.cfg.Currency
	}

	validating := ""
	if len(raw.ValidatingAirlineCodes) > 0 {
		validating = raw.ValidatingAirlineCodes[0]
	}

	return models.Offer{
		ID:   fmt.Sprintf("amadeus-%d", index),
		Type: models.TripTypeFor(len(legs)),
		Price: models.Price{
			Total:    total,
			Base:     base,
			Tax:      total - base,
			Currency: currency,
		},
		Legs:              legs,
		ValidatingCarrier: validating,
	}, nil
}

func amadeusErrorDetail(body []byte) string {
	var parsed amadeusErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		if len(parsed.Errors) > 0 && parsed.Errors[0].Detail != "" {
			return parsed.Errors[0].Detail
		}
		if parsed.ErrorDescription != "" {
			return parsed.ErrorDescription
		}
		if parsed.Message != "" {
			return parsed.Message
		}
	}
	return ""
}
