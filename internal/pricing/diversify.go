// Package pricing post-processes normalized offer lists.
package pricing

import (
	"math"

	"github.com/redeflights/flightsearch/internal/models"
)

// maxSpreadFraction caps the synthetic spread at +18% on the last offer.
const maxSpreadFraction = 0.18

// Diversify breaks artificial price ties: when more than one offer shares an
// identical total, totals are redistributed along a linear progression and
// tax/base recomputed from the original tax rate. Offer identity and
// ordering are untouched, and lists whose prices already differ are left
// alone. This is a presentation-layer adjustment; the formula is a
// compatibility surface and must not change.
func Diversify(offers []models.Offer) {
	if len(offers) < 2 || !allTotalsEqual(offers) {
		return
	}

	baseTotal := offers[0].Price.Total
	baseTax := offers[0].Price.Tax
	taxRate := 0.0
	if baseTotal > 0 {
		taxRate = baseTax / baseTotal
	}

	step := maxSpreadFraction / float64(len(offers)-1)

	for i := range offers {
		factor := 1 + step*float64(i)
		newTotal := math.Round(baseTotal * factor)
		newTax := math.Round(newTotal * taxRate)

		offers[i].Price.Total = newTotal
		offers[i].Price.Tax = newTax
		offers[i].Price.Base = newTotal - newTax
	}
}

func allTotalsEqual(offers []models.Offer) bool {
	for _, o := range offers[1:] {
		if o.Price.Total != offers[0].Price.Total {
			return false
		}
	}
	return true
}
