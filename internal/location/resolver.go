// Package location resolves free-text city or airport names to 3-letter
// IATA codes.
package location

import (
	"regexp"
	"strings"
)

var parenCode = regexp.MustCompile(`\(([A-Z]{3})\)`)

// cityCodes maps normalized city names to their primary airport code.
var cityCodes = map[string]string{
	"delhi":     "DEL",
	"new delhi": "DEL",
	"mumbai":    "BOM",
	"bombay":    "BOM",
	"bangalore": "BLR",
	"bengaluru": "BLR",
	"hyderabad": "HYD",
	"chennai":   "MAA",
	"madras":    "MAA",
	"kolkata":   "CCU",
	"calcutta":  "CCU",
	"pune":      "PNQ",
	"ahmedabad": "AMD",
	"goa":       "GOI",
	"kochi":     "COK",
	"cochin":    "COK",
	"jaipur":    "JAI",
	"dubai":     "DXB",
	"london":    "LHR",
	"new york":  "JFK",
	"singapore": "SIN",
	"bangkok":   "BKK",
}

// Resolve maps free text to an IATA code. A parenthetical 3-letter code wins
// outright; otherwise the city table is consulted; otherwise the text is
// uppercased, stripped of non-letters and truncated to 3 characters. The
// result may be degenerate — a provider rejecting it surfaces later as a
// provider error, so Resolve itself never fails.
func Resolve(s string) string {
	if match := parenCode.FindStringSubmatch(s); match != nil {
		return match[1]
	}

	if code, ok := cityCodes[strings.ToLower(strings.TrimSpace(s))]; ok {
		return code
	}

	letters := strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r
		}
		return -1
	}, strings.ToUpper(s))

	if len(letters) > 3 {
		letters = letters[:3]
	}
	return letters
}
