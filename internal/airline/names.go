// Package airline maps IATA carrier codes to display names.
package airline

var names = map[string]string{
	"AI": "Air India",
	"6E": "IndiGo",
	"SG": "SpiceJet",
	"UK": "Vistara",
	"G8": "Go First",
	"I5": "AirAsia India",
	"IX": "Air India Express",
	"EK": "Emirates",
	"QR": "Qatar Airways",
	"EY": "Etihad Airways",
	"BA": "British Airways",
	"LH": "Lufthansa",
	"AF": "Air France",
	"SQ": "Singapore Airlines",
	"TG": "Thai Airways",
	"MH": "Malaysia Airlines",
	"CX": "Cathay Pacific",
	"TK": "Turkish Airlines",
	"KL": "KLM",
	"AA": "American Airlines",
	"UA": "United Airlines",
	"DL": "Delta Air Lines",
}

// Name returns the display name for a carrier code, falling back to the code
// itself for carriers outside the table.
func Name(code string) string {
	if name, ok := names[code]; ok {
		return name
	}
	return code
}
