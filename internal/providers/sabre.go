package providers

import (
	"bytes"
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
	"github.com/redeflights/flightsearch/internal/models"
	"github.com/redeflights/flightsearch/pkg/logger"
)

// sabreAmount decodes fare amounts that Sabre returns as either JSON numbers
// or quoted strings.
type sabreAmount float64

func (a *sabreAmount) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*a = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*a = sabreAmount(f)
	return nil
}

// sabreString decodes fields such as flight numbers that appear as either
// strings or bare numbers.
type sabreString string

func (s *sabreString) UnmarshalJSON(b []byte) error {
	*s = sabreString(strings.Trim(string(b), `"`))
	return nil
}

// ─── Request body ────────────────────────────────────────────────────────────

type sabreRequest struct {
	OTARequest sabreOTARequest `json:"OTA_AirLowFareSearchRQ"`
}

type sabreOTARequest struct {
	Version                      string                   `json:"Version"`
	POS                          sabrePOS                 `json:"POS"`
	OriginDestinationInformation []sabreOriginDestination `json:"OriginDestinationInformation"`
	TravelerInfoSummary          sabreTravelerInfoSummary `json:"TravelerInfoSummary"`
	TPAExtensions                sabreIntelliSell         `json:"TPA_Extensions"`
}

type sabrePOS struct {
	Source []sabreSource `json:"Source"`
}

type sabreSource struct {
	PseudoCityCode string           `json:"PseudoCityCode"`
	RequestorID    sabreRequestorID `json:"RequestorID"`
}

type sabreRequestorID struct {
	Type        string           `json:"Type"`
	ID          string           `json:"ID"`
	CompanyName sabreCompanyName `json:"CompanyName"`
}

type sabreCompanyName struct {
	Code string `json:"Code"`
}

type sabreOriginDestination struct {
	RPH                 string              `json:"RPH"`
	DepartureDateTime   string              `json:"DepartureDateTime"`
	OriginLocation      sabreLocation       `json:"OriginLocation"`
	DestinationLocation sabreLocation       `json:"DestinationLocation"`
	TPAExtensions       *sabreCabinPrefWrap `json:"TPA_Extensions,omitempty"`
}

type sabreLocation struct {
	LocationCode string `json:"LocationCode"`
}

type sabreCabinPrefWrap struct {
	CabinPref sabreCabinPref `json:"CabinPref"`
}

type sabreCabinPref struct {
	Cabin       string `json:"Cabin"`
	PreferLevel string `json:"PreferLevel"`
}

type sabreTravelerInfoSummary struct {
	SeatsRequested   []int                `json:"SeatsRequested"`
	AirTravelerAvail []sabreTravelerAvail `json:"AirTravelerAvail"`
}

type sabreTravelerAvail struct {
	PassengerTypeQuantity []sabrePassengerType `json:"PassengerTypeQuantity"`
}

type sabrePassengerType struct {
	Code     string `json:"Code"`
	Quantity int    `json:"Quantity"`
}

type sabreIntelliSell struct {
	IntelliSellTransaction sabreIntelliSellTransaction `json:"IntelliSellTransaction"`
}

type sabreIntelliSellTransaction struct {
	ServiceTag string `json:"ServiceTag"`
}

// ─── OTA response ────────────────────────────────────────────────────────────

type sabreSearchResponse struct {
	OTA     *sabreOTAResponse     `json:"OTA_AirLowFareSearchRS"`
	Grouped *sabreGroupedResponse `json:"groupedItineraryResponse"`
}

type sabreOTAResponse struct {
	PricedItineraries *sabrePricedItineraries `json:"PricedItineraries"`
}

type sabrePricedItineraries struct {
	PricedItinerary []sabrePricedItinerary `json:"PricedItinerary"`
}

type sabrePricedItinerary struct {
	AirItinerary sabreAirItinerary `json:"AirItinerary"`
	// Sabre returns this as either an object or a one-element array.
	AirItineraryPricingInfo json.RawMessage `json:"AirItineraryPricingInfo"`
}

type sabreAirItinerary struct {
	OriginDestinationOptions sabreODOptions `json:"OriginDestinationOptions"`
}

type sabreODOptions struct {
	OriginDestinationOption []sabreODOption `json:"OriginDestinationOption"`
}

type sabreODOption struct {
	FlightSegment []sabreFlightSegment `json:"FlightSegment"`
}

type sabreFlightSegment struct {
	DepartureAirport  sabreAirport    `json:"DepartureAirport"`
	ArrivalAirport    sabreAirport    `json:"ArrivalAirport"`
	DepartureDateTime string          `json:"DepartureDateTime"`
	ArrivalDateTime   string          `json:"ArrivalDateTime"`
	MarketingAirline  sabreCarrier    `json:"MarketingAirline"`
	FlightNumber      sabreString     `json:"FlightNumber"`
	Equipment         *sabreEquipment `json:"Equipment"`
	ElapsedTime       int             `json:"ElapsedTime"`
	StopQuantity      int             `json:"StopQuantity"`
	ResBookDesigCode  string          `json:"ResBookDesigCode"`
}

type sabreAirport struct {
	LocationCode string `json:"LocationCode"`
	TerminalID   string `json:"TerminalID"`
}

type sabreCarrier struct {
	Code string `json:"Code"`
}

type sabreEquipment struct {
	AirEquipType string `json:"AirEquipType"`
}

type sabrePricingInfo struct {
	ItinTotalFare sabreItinTotalFare  `json:"ItinTotalFare"`
	TPAExtensions *sabreValidatingExt `json:"TPA_Extensions"`
}

type sabreItinTotalFare struct {
	TotalFare sabreFare   `json:"TotalFare"`
	BaseFare  sabreFare   `json:"BaseFare"`
	Taxes     *sabreTaxes `json:"Taxes"`
}

type sabreFare struct {
	Amount       sabreAmount `json:"Amount"`
	CurrencyCode string      `json:"CurrencyCode"`
}

type sabreTaxes struct {
	Tax []sabreFare `json:"Tax"`
}

type sabreValidatingExt struct {
	ValidatingCarrier *sabreCarrier `json:"ValidatingCarrier"`
}

// ─── Grouped response ────────────────────────────────────────────────────────

type sabreGroupedResponse struct {
	ScheduleDescs   []sabreScheduleDesc   `json:"scheduleDescs"`
	LegDescs        []sabreLegDesc        `json:"legDescs"`
	ItineraryGroups []sabreItineraryGroup `json:"itineraryGroups"`
}

type sabreScheduleDesc struct {
	ID          int               `json:"id"`
	ElapsedTime int               `json:"elapsedTime"`
	Departure   sabreScheduleStop `json:"departure"`
	Arrival     sabreScheduleStop `json:"arrival"`
	Carrier     sabreGroupCarrier `json:"carrier"`
}

type sabreScheduleStop struct {
	Airport  string `json:"airport"`
	Terminal string `json:"terminal"`
	Time     string `json:"time"`
}

type sabreGroupCarrier struct {
	Marketing             string           `json:"marketing"`
	MarketingFlightNumber sabreString      `json:"marketingFlightNumber"`
	Equipment             *sabreGroupEquip `json:"equipment"`
}

type sabreGroupEquip struct {
	Code string `json:"code"`
}

type sabreLegDesc struct {
	ID          int             `json:"id"`
	ElapsedTime int             `json:"elapsedTime"`
	Schedules   []sabreSchedRef `json:"schedules"`
}

type sabreSchedRef struct {
	Ref int `json:"ref"`
}

type sabreItineraryGroup struct {
	GroupDescription sabreGroupDescription   `json:"groupDescription"`
	Itineraries      []sabreGroupedItinerary `json:"itineraries"`
}

type sabreGroupDescription struct {
	LegDescriptions []sabreLegDescription `json:"legDescriptions"`
}

type sabreLegDescription struct {
	DepartureDate     string `json:"departureDate"`
	DepartureLocation string `json:"departureLocation"`
	ArrivalLocation   string `json:"arrivalLocation"`
}

type sabreGroupedItinerary struct {
	Legs               []sabreSchedRef     `json:"legs"`
	PricingInformation []sabreGroupPricing `json:"pricingInformation"`
}

type sabreGroupPricing struct {
	Fare sabreGroupFare `json:"fare"`
}

type sabreGroupFare struct {
	ValidatingCarrierCode string              `json:"validatingCarrierCode"`
	TotalFare             sabreGroupTotalFare `json:"totalFare"`
}

type sabreGroupTotalFare struct {
	TotalPrice     sabreAmount `json:"totalPrice"`
	BaseFareAmount sabreAmount `json:"baseFareAmount"`
	TotalTaxAmount sabreAmount `json:"totalTaxAmount"`
	Currency       string      `json:"currency"`
}

type sabreErrorBody struct {
	ErrorDescription string `json:"error_description"`
	Message          string `json:"message"`
}

// sabreCabins maps the canonical cabin class to Sabre's single-letter cabin
// codes.
var sabreCabins = map[string]string{
	models.CabinEconomy:        "Y",
	"ECONOMY_SAVER":            "Y",
	models.CabinPremiumEconomy: "S",
	models.CabinBusiness:       "C",
	models.CabinFirst:          "F",
	"FIRST_CLASS":              "F",
}

// SabreConfig carries the provider endpoint and credentials.
type SabreConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	PseudoCity   string
	MaxResults   int
}

// SabreProvider queries the Sabre low-fare search API: a structured OTA JSON
// body POSTed to a primary endpoint version with a one-shot fallback to the
// secondary version, and a token endpoint that needs a double-Base64 Basic
// header before the standard encoding is even considered.
type SabreProvider struct {
	cfg    SabreConfig
	client *http.Client
	tokens *auth.Manager
	log    logger.Logger
}

func NewSabreProvider(cfg SabreConfig, client *http.Client, authClient *http.Client, log logger.Logger) *SabreProvider {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 20
	}
	if cfg.PseudoCity == "" {
		cfg.PseudoCity = "IPCC"
	}

	var attempts []auth.Attempt
	if cfg.ClientID != "" && cfg.ClientSecret != "" {
		tokenURL := cfg.BaseURL + "/v2/auth/token"
		attempts = append(attempts,
			auth.BasicHeader("double base64", tokenURL, auth.DoubleEncodedCredentials(cfg.ClientID, cfg.ClientSecret)),
			auth.BasicHeader("single base64", tokenURL, auth.SingleEncodedCredentials(cfg.ClientID, cfg.ClientSecret)),
		)
	}

	return &SabreProvider{
		cfg:    cfg,
		client: client,
		tokens: auth.NewManager("sabre", authClient, log, attempts...),
		log:    log,
	}
}

func (p *SabreProvider) Name() string {
	return "sabre"
}

func (p *SabreProvider) Authenticate(ctx context.Context) error {
	_, err := p.tokens.Token(ctx)
	return err
}

func (p *SabreProvider) Search(ctx context.Context, req models.SearchRequest) ([]models.Offer, error) {
	token, err := p.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(p.buildBody(req))
	if err != nil {
		return nil, &TransportError{Provider: p.Name(), Err: err}
	}

	p.log.Info("searching sabre", "origin", req.Origin, "destination", req.Destination, "date", req.DepartureDate)

	body, err := p.send(ctx, token, payload)
	if err != nil {
		return nil, err
	}

	var raw sabreSearchResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &TransportError{Provider: p.Name(), Err: err}
	}

	offers := p.normalize(raw)
	if len(offers) == 0 {
		return nil, fmt.Errorf("sabre: %w", ErrNoResults)
	}

	p.log.Info("sabre search complete", "offers", len(offers))
	return offers, nil
}

// send POSTs the payload to the primary endpoint version and retries once
// against the secondary version on any failure, reporting the last attempt's
// error.
func (p *SabreProvider) send(ctx context.Context, token string, payload []byte) ([]byte, error) {
	endpoints := []string{
		p.cfg.BaseURL + "/v4.3.0/shop/flights",
		p.cfg.BaseURL + "/v5/offers/shop/flights?forceitinerary=true",
	}

	var lastErr error
	for i, endpoint := range endpoints {
		if i > 0 {
			p.log.Warn("sabre endpoint failed, trying fallback version", "error", lastErr)
		}

		body, err := p.post(ctx, endpoint, token, payload)
		if err == nil {
			return body, nil
		}
		lastErr = err
	}

	return nil, lastErr
}

func (p *SabreProvider) post(ctx context.Context, endpoint, token string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &TransportError{Provider: p.Name(), Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, &TransportError{Provider: p.Name(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Provider: p.Name(), Err: err}
	}

	if resp.StatusCode >= 300 {
		return nil, &TransportError{Provider: p.Name(), Status: resp.StatusCode, Detail: sabreErrorDetail(body)}
	}

	return body, nil
}

// buildBody maps the canonical request onto an OTA_AirLowFareSearchRQ body.
// The return origin-destination block is added only when a return date is
// supplied, and child/infant passenger types only when their counts are
// positive.
func (p *SabreProvider) buildBody(req models.SearchRequest) sabreRequest {
	adults := req.AdultCount()

	originDest := []sabreOriginDestination{
		{
			RPH:                 "1",
			DepartureDateTime:   req.DepartureDate + "T00:00:00",
			OriginLocation:      sabreLocation{LocationCode: req.Origin},
			DestinationLocation: sabreLocation{LocationCode: req.Destination},
			TPAExtensions: &sabreCabinPrefWrap{
				CabinPref: sabreCabinPref{Cabin: sabreCabin(req.CabinClass), PreferLevel: "Preferred"},
			},
		},
	}

	if req.RoundTrip() {
		originDest = append(originDest, sabreOriginDestination{
			RPH:                 "2",
			DepartureDateTime:   req.ReturnDate + "T00:00:00",
			OriginLocation:      sabreLocation{LocationCode: req.Destination},
			DestinationLocation: sabreLocation{LocationCode: req.Origin},
		})
	}

	passengerTypes := []sabrePassengerType{{Code: "ADT", Quantity: adults}}
	if req.Children > 0 {
		passengerTypes = append(passengerTypes, sabrePassengerType{Code: "CNN", Quantity: req.Children})
	}
	if req.Infants > 0 {
		passengerTypes = append(passengerTypes, sabrePassengerType{Code: "INF", Quantity: req.Infants})
	}

	return sabreRequest{
		OTARequest: sabreOTARequest{
			Version: "5.3.0",
			POS: sabrePOS{
				Source: []sabreSource{{
					PseudoCityCode: p.cfg.PseudoCity,
					RequestorID: sabreRequestorID{
						Type:        "1",
						ID:          "FLT",
						CompanyName: sabreCompanyName{Code: "TN"},
					},
				}},
			},
			OriginDestinationInformation: originDest,
			TravelerInfoSummary: sabreTravelerInfoSummary{
				SeatsRequested:   []int{adults},
				AirTravelerAvail: []sabreTravelerAvail{{PassengerTypeQuantity: passengerTypes}},
			},
			TPAExtensions: sabreIntelliSell{
				IntelliSellTransaction: sabreIntelliSellTransaction{ServiceTag: "BFM"},
			},
		},
	}
}

func sabreCabin(cabinClass string) string {
	key := strings.ReplaceAll(strings.ToUpper(cabinClass), " ", "_")
	if cabin, ok := sabreCabins[key]; ok {
		return cabin
	}
	return "Y"
}

// normalize dispatches on the response format: both the standard OTA shape
// and the grouped-itinerary shape produce the same canonical offers.
func (p *SabreProvider) normalize(raw sabreSearchResponse) []models.Offer {
	switch {
	case raw.OTA != nil && raw.OTA.PricedItineraries != nil:
		return p.normalizeOTA(raw.OTA.PricedItineraries.PricedItinerary)
	case raw.Grouped != nil:
		return p.normalizeGrouped(raw.Grouped)
	default:
		return []models.Offer{}
	}
}

func (p *SabreProvider) normalizeOTA(itineraries []sabrePricedItinerary) []models.Offer {
	limit := len(itineraries)
	if limit > p.cfg.MaxResults {
		limit = p.cfg.MaxResults
	}

	offers := make([]models.Offer, 0, limit)
	for i := 0; i < limit; i++ {
		offer, err := p.normalizeOTAItinerary(itineraries[i], i)
		if err != nil {
			p.log.Warn("dropping unparseable sabre itinerary", "index", i, "error", err)
			continue
		}
		offers = append(offers, offer)
	}
	return offers
}

func (p *SabreProvider) normalizeOTAItinerary(itinerary sabrePricedItinerary, index int) (models.Offer, error) {
	options := itinerary.AirItinerary.OriginDestinationOptions.OriginDestinationOption
	if len(options) == 0 {
		return models.Offer{}, fmt.Errorf("itinerary has no origin-destination options")
	}

	pricing, err := decodePricingInfo(itinerary.AirItineraryPricingInfo)
	if err != nil {
		return models.Offer{}, fmt.Errorf("decoding pricing info: %w", err)
	}

	legs := make([]models.Leg, 0, len(options))
	for _, option := range options {
		if len(option.FlightSegment) == 0 {
			return models.Offer{}, fmt.Errorf("origin-destination option has no segments")
		}

		segments := make([]models.Segment, 0, len(option.FlightSegment))
		totalDuration := 0
		for _, s := range option.FlightSegment {
			aircraft := ""
			if s.Equipment != nil {
				aircraft = s.Equipment.AirEquipType
			}

			segments = append(segments, models.Segment{
				Departure: models.Endpoint{
					Airport:  s.DepartureAirport.LocationCode,
					Terminal: s.DepartureAirport.TerminalID,
					Time:     s.DepartureDateTime,
				},
				Arrival: models.Endpoint{
					Airport:  s.ArrivalAirport.LocationCode,
					Terminal: s.ArrivalAirport.TerminalID,
					Time:     s.ArrivalDateTime,
				},
				Airline:      s.MarketingAirline.Code,
				AirlineName:  airline.Name(s.MarketingAirline.Code),
				FlightNumber: string(s.FlightNumber),
				Aircraft:     aircraft,
				Duration:     s.ElapsedTime,
				Stops:        0,
				Cabin:        s.ResBookDesigCode,
			})
			totalDuration += s.ElapsedTime
		}

		legs = append(legs, models.AssembleLeg(segments, totalDuration))
	}

	fare := pricing.ItinTotalFare
	tax := 0.0
	if fare.Taxes != nil && len(fare.Taxes.Tax) > 0 {
		tax = float64(fare.Taxes.Tax[0].Amount)
	}

	validating := ""
	if pricing.TPAExtensions != nil && pricing.TPAExtensions.ValidatingCarrier != nil {
		validating = pricing.TPAExtensions.ValidatingCarrier.Code
	}

	return models.Offer{
		ID:   fmt.Sprintf("flight-%d", index),
		Type: models.TripTypeFor(len(legs)),
		Price: models.Price{
			Total:    float64(fare.TotalFare.Amount),
			Base:     float64(fare.BaseFare.Amount),
			Tax:      tax,
			Currency: fare.TotalFare.CurrencyCode,
		},
		Legs:              legs,
		ValidatingCarrier: validating,
	}, nil
}

// normalizeGrouped resolves the grouped-itinerary reference tables: each
// itinerary leg ref points into legDescs, each of whose schedule refs points
// into scheduleDescs. Schedule times are time-of-day values composed with
// the group's per-leg departure dates.
func (p *SabreProvider) normalizeGrouped(grouped *sabreGroupedResponse) []models.Offer {
	schedules := make(map[int]sabreScheduleDesc, len(grouped.ScheduleDescs))
	for _, s := range grouped.ScheduleDescs {
		schedules[s.ID] = s
	}
	legDescs := make(map[int]sabreLegDesc, len(grouped.LegDescs))
	for _, l := range grouped.LegDescs {
		legDescs[l.ID] = l
	}

	offers := make([]models.Offer, 0)
	for _, group := range grouped.ItineraryGroups {
		for _, itinerary := range group.Itineraries {
			if len(offers) >= p.cfg.MaxResults {
				return offers
			}

			offer, err := p.normalizeGroupedItinerary(itinerary, group.GroupDescription, schedules, legDescs, len(offers))
			if err != nil {
				p.log.Warn("dropping unparseable sabre grouped itinerary", "index", len(offers), "error", err)
				continue
			}
			offers = append(offers, offer)
		}
	}
	return offers
}

func (p *SabreProvider) normalizeGroupedItinerary(
	itinerary sabreGroupedItinerary,
	desc sabreGroupDescription,
	schedules map[int]sabreScheduleDesc,
	legDescs map[int]sabreLegDesc,
	index int,
) (models.Offer, error) {
	if len(itinerary.Legs) == 0 {
		return models.Offer{}, fmt.Errorf("itinerary references no legs")
	}
	if len(itinerary.PricingInformation) == 0 {
		return models.Offer{}, fmt.Errorf("itinerary has no pricing information")
	}

	legs := make([]models.Leg, 0, len(itinerary.Legs))
	for legIndex, legRef := range itinerary.Legs {
		legDesc, ok := legDescs[legRef.Ref]
		if !ok || len(legDesc.Schedules) == 0 {
			return models.Offer{}, fmt.Errorf("unresolved leg ref %d", legRef.Ref)
		}

		departureDate := ""
		if legIndex < len(desc.LegDescriptions) {
			departureDate = desc.LegDescriptions[legIndex].DepartureDate
		}

		segments := make([]models.Segment, 0, len(legDesc.Schedules))
		for _, schedRef := range legDesc.Schedules {
			schedule, ok := schedules[schedRef.Ref]
			if !ok {
				return models.Offer{}, fmt.Errorf("unresolved schedule ref %d", schedRef.Ref)
			}

			aircraft := ""
			if schedule.Carrier.Equipment != nil {
				aircraft = schedule.Carrier.Equipment.Code
			}

			segments = append(segments, models.Segment{
				Departure: models.Endpoint{
					Airport:  schedule.Departure.Airport,
					Terminal: schedule.Departure.Terminal,
					Time:     composeGroupedTime(departureDate, schedule.Departure.Time),
				},
				Arrival: models.Endpoint{
					Airport:  schedule.Arrival.Airport,
					Terminal: schedule.Arrival.Terminal,
					Time:     composeGroupedTime(departureDate, schedule.Arrival.Time),
				},
				Airline:      schedule.Carrier.Marketing,
				AirlineName:  airline.Name(schedule.Carrier.Marketing),
				FlightNumber: string(schedule.Carrier.MarketingFlightNumber),
				Aircraft:     aircraft,
				Duration:     schedule.ElapsedTime,
				Stops:        0,
				Cabin:        "",
			})
		}

		legs = append(legs, models.AssembleLeg(segments, legDesc.ElapsedTime))
	}

	fare := itinerary.PricingInformation[0].Fare
	return models.Offer{
		ID:   fmt.Sprintf("flight-%d", index),
		Type: models.TripTypeFor(len(legs)),
		Price: models.Price{
			Total:    float64(fare.TotalFare.TotalPrice),
			Base:     float64(fare.TotalFare.BaseFareAmount),
			Tax:      float64(fare.TotalFare.TotalTaxAmount),
			Currency: fare.TotalFare.Currency,
		},
		Legs:              legs,
		ValidatingCarrier: fare.ValidatingCarrierCode,
	}, nil
}

// composeGroupedTime joins a leg departure date with a schedule time-of-day
// such as "06:05:00+05:30".
func composeGroupedTime(date, timeOfDay string) string {
	if date == "" || timeOfDay == "" {
		return timeOfDay
	}
	return date + "T" + timeOfDay
}

// Suggest queries the Sabre geoservices autocomplete for airport records.
func (p *SabreProvider) Suggest(ctx context.Context, query string) ([]models.Airport, error) {
	token, err := p.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := p.cfg.BaseURL + "/v1/lists/utilities/geoservices/autocomplete?query=" + url.QueryEscape(query) + "&category=AIR"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &TransportError{Provider: p.Name(), Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, &TransportError{Provider: p.Name(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, &TransportError{Provider: p.Name(), Status: resp.StatusCode}
	}

	var parsed struct {
		Response []models.Airport `json:"Response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &TransportError{Provider: p.Name(), Err: err}
	}

	return parsed.Response, nil
}

func decodePricingInfo(raw json.RawMessage) (sabrePricingInfo, error) {
	var info sabrePricingInfo

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return info, fmt.Errorf("pricing info missing")
	}

	if trimmed[0] == '[' {
		var list []sabrePricingInfo
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return info, err
		}
		if len(list) == 0 {
			return info, fmt.Errorf("pricing info list empty")
		}
		return list[0], nil
	}

	err := json.Unmarshal(trimmed, &info)
	return info, err
}

func sabreErrorDetail(body []byte) string {
	var parsed sabreErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.ErrorDescription != "" {
			return parsed.ErrorDescription
		}
		if parsed.Message != "" {
			return parsed.Message
		}
	}
	return ""
}
