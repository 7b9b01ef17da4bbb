// Package airports holds the static airport table backing the suggestion
// endpoint and exposes a substring filter over it.
package airports

import (
	"strings"

	"github.com/redeflights/flightsearch/internal/models"
)

var popular = []models.Airport{
	{Name: "Indira Gandhi International Airport", Code: "DEL", City: "New Delhi"},
	{Name: "Chhatrapati Shivaji Maharaj International Airport", Code: "BOM", City: "Mumbai"},
	{Name: "Kempegowda International Airport", Code: "BLR", City: "Bangalore"},
	{Name: "Rajiv Gandhi International Airport", Code: "HYD", City: "Hyderabad"},
	{Name: "Chennai International Airport", Code: "MAA", City: "Chennai"},
	{Name: "Netaji Subhas Chandra Bose International Airport", Code: "CCU", City: "Kolkata"},
	{Name: "Pune Airport", Code: "PNQ", City: "Pune"},
	{Name: "Sardar Vallabhbhai Patel International Airport", Code: "AMD", City: "Ahmedabad"},
	{Name: "Goa International Airport", Code: "GOI", City: "Goa"},
	{Name: "Cochin International Airport", Code: "COK", City: "Kochi"},
	{Name: "Jaipur International Airport", Code: "JAI", City: "Jaipur"},
	{Name: "Biju Patnaik International Airport", Code: "BBI", City: "Bhubaneswar"},
	{Name: "Dubai International Airport", Code: "DXB", City: "Dubai"},
	{Name: "London Heathrow Airport", Code: "LHR", City: "London"},
	{Name: "John F. Kennedy International Airport", Code: "JFK", City: "New York"},
	{Name: "Singapore Changi Airport", Code: "SIN", City: "Singapore"},
	{Name: "Bangkok Suvarnabhumi Airport", Code: "BKK", City: "Bangkok"},
	{Name: "Kuala Lumpur International Airport", Code: "KUL", City: "Kuala Lumpur"},
	{Name: "Frankfurt Airport", Code: "FRA", City: "Frankfurt"},
	{Name: "Paris Charles de Gaulle Airport", Code: "CDG", City: "Paris"},
}

// Suggest filters the static table by case-insensitive substring match
// against city, code or name. Queries shorter than two characters return an
// empty list.
func Suggest(query string) []models.Airport {
	q := strings.ToLower(strings.TrimSpace(query))
	if len(q) < 2 {
		return []models.Airport{}
	}

	result := make([]models.Airport, 0)
	for _, a := range popular {
		if strings.Contains(strings.ToLower(a.City), q) ||
			strings.Contains(strings.ToLower(a.Code), q) ||
			strings.Contains(strings.ToLower(a.Name), q) {
			result = append(result, a)
		}
	}
	return result
}
