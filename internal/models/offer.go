package models

// Trip types derived from the leg count of an offer.
const (
	TripOneWay    = "One Way"
	TripRoundTrip = "Round Trip"
)

// Endpoint is one side of a flown segment. Time is the provider's timestamp
// string passed through verbatim.
type Endpoint struct {
	Airport  string `json:"airport"`
	Terminal string `json:"terminal"`
	Time     string `json:"time"`
}

// Segment is a single nonstop flight between two airports. Stops is always
// zero; connections are represented as separate segments within a leg.
type Segment struct {
	Departure    Endpoint `json:"departure"`
	Arrival      Endpoint `json:"arrival"`
	Airline      string   `json:"airline"`
	AirlineName  string   `json:"airlineName"`
	FlightNumber string   `json:"flightNumber"`
	Aircraft     string   `json:"aircraft"`
	Duration     int      `json:"duration"`
	Stops        int      `json:"stops"`
	Cabin        string   `json:"cabin"`
}

// Leg is one directional itinerary of one or more consecutive segments.
type Leg struct {
	Segments      []Segment `json:"segments"`
	TotalDuration int       `json:"totalDuration"`
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	DepartureTime string    `json:"departureTime"`
	ArrivalTime   string    `json:"arrivalTime"`
	Stops         int       `json:"stops"`
}

// Price decomposes an offer fare. Total = Base + Tax.
type Price struct {
	Total    float64 `json:"total"`
	Base     float64 `json:"base"`
	Tax      float64 `json:"tax"`
	Currency string  `json:"currency"`
}

// Offer is one priced, bookable itinerary option returned to the caller.
type Offer struct {
	ID                string `json:"id"`
	Type              string `json:"type"`
	Price             Price  `json:"price"`
	Legs              []Leg  `json:"legs"`
	ValidatingCarrier string `json:"validatingCarrier"`
	IsDemo            bool   `json:"isDemo,omitempty"`
}

// AssembleLeg builds a Leg from its segments, deriving origin, destination,
// boundary timestamps and stop count. Callers must pass at least one segment.
func AssembleLeg(segments []Segment, totalDuration int) Leg {
	first := segments[0]
	last := segments[len(segments)-1]

	return Leg{
		Segments:      segments,
		TotalDuration: totalDuration,
		Origin:        first.Departure.Airport,
		Destination:   last.Arrival.Airport,
		DepartureTime: first.Departure.Time,
		ArrivalTime:   last.Arrival.Time,
		Stops:         len(segments) - 1,
	}
}

// TripTypeFor derives the trip type from the number of legs.
func TripTypeFor(legCount int) string {
	if legCount > 1 {
		return TripRoundTrip
	}
	return TripOneWay
}
