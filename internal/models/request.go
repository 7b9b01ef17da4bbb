package models

// Cabin class values accepted on a search request. Unknown values fall back
// to economy at query-build time rather than being rejected.
const (
	CabinEconomy        = "ECONOMY"
	CabinPremiumEconomy = "PREMIUM_ECONOMY"
	CabinBusiness       = "BUSINESS"
	CabinFirst          = "FIRST"
)

// SearchRequest carries the canonical search parameters. It binds from both
// a JSON body and query-string form; malformed dates or codes are passed
// through to the provider, which is expected to reject them.
type SearchRequest struct {
	Origin        string `json:"origin" query:"origin"`
	Destination   string `json:"destination" query:"destination"`
	DepartureDate string `json:"departureDate" query:"departureDate"`
	ReturnDate    string `json:"returnDate,omitempty" query:"returnDate"`
	Passengers    int    `json:"passengers,omitempty" query:"passengers"`
	Adults        int    `json:"adults,omitempty" query:"adults"`
	Children      int    `json:"children,omitempty" query:"children"`
	Infants       int    `json:"infants,omitempty" query:"infants"`
	CabinClass    string `json:"cabinClass,omitempty" query:"cabinClass"`
	TripType      string `json:"tripType,omitempty" query:"tripType"`
}

// AdultCount resolves the adult count from the explicit adults field, the
// generic passengers field, or a default of one.
func (r SearchRequest) AdultCount() int {
	if r.Adults > 0 {
		return r.Adults
	}
	if r.Passengers > 0 {
		return r.Passengers
	}
	return 1
}

// RoundTrip reports whether the request asks for a return leg.
func (r SearchRequest) RoundTrip() bool {
	return r.ReturnDate != ""
}
