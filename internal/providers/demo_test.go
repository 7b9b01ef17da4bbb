package providers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redeflights/flightsearch/internal/models"
)

func TestDemoSearchIsDeterministic(t *testing.T) {
	provider := NewDemoProvider()
	req := models.SearchRequest{
		Origin:        "DEL",
		Destination:   "BOM",
		DepartureDate: "2026-09-10",
	}

	first, err := provider.Search(context.Background(), req)
	require.NoError(t, err)
	second, err := provider.Search(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.Len(t, first, 6)

	for i, offer := range first {
		assert.True(t, offer.IsDemo)
		assert.Equal(t, models.TripOneWay, offer.Type)
		assert.Contains(t, offer.ID, "flight-demo-")
		assert.Equal(t, "INR", offer.Price.Currency)
		assert.Equal(t, offer.Price.Total, offer.Price.Base+offer.Price.Tax, "offer %d", i)
	}
	assert.Equal(t, "flight-demo-0", first[0].ID)
	assert.Equal(t, "flight-demo-5", first[5].ID)
}

func TestDemoConnectionsOnSecondAndFourthOption(t *testing.T) {
	provider := NewDemoProvider()
	offers, err := provider.Search(context.Background(), models.SearchRequest{
		Origin:        "DEL",
		Destination:   "BOM",
		DepartureDate: "2026-09-10",
	})
	require.NoError(t, err)
	require.Len(t, offers, 6)

	for i, offer := range offers {
		leg := offer.Legs[0]
		if i == 1 || i == 3 {
			assert.Equal(t, 1, leg.Stops, "option %d routes through a connection", i)
			require.Len(t, leg.Segments, 2)
			assert.Equal(t, "BLR", leg.Segments[0].Arrival.Airport)
			assert.Equal(t, "BLR", leg.Segments[1].Departure.Airport)
		} else {
			assert.Equal(t, 0, leg.Stops, "option %d is nonstop", i)
			assert.Len(t, leg.Segments, 1)
		}
		assert.Equal(t, "DEL", leg.Origin)
		assert.Equal(t, "BOM", leg.Destination)
	}
}

func TestDemoPriceScalesWithAdults(t *testing.T) {
	provider := NewDemoProvider()
	offers, err := provider.Search(context.Background(), models.SearchRequest{
		Origin:        "DEL",
		Destination:   "BOM",
		DepartureDate: "2026-09-10",
		Adults:        3,
	})
	require.NoError(t, err)

	// First table entry prices at 4850 per adult with an 18% tax on top.
	base := 4850.0 * 3
	tax := 2619.0
	assert.Equal(t, base, offers[0].Price.Base)
	assert.Equal(t, tax, offers[0].Price.Tax)
	assert.Equal(t, base+tax, offers[0].Price.Total)
}

func TestDemoRoundTripAddsReturnLeg(t *testing.T) {
	provider := NewDemoProvider()
	offers, err := provider.Search(context.Background(), models.SearchRequest{
		Origin:        "DEL",
		Destination:   "BOM",
		DepartureDate: "2026-09-10",
		ReturnDate:    "2026-09-17",
	})
	require.NoError(t, err)

	for _, offer := range offers {
		require.Len(t, offer.Legs, 2)
		assert.Equal(t, models.TripRoundTrip, offer.Type)

		ret := offer.Legs[1]
		assert.Equal(t, "BOM", ret.Origin)
		assert.Equal(t, "DEL", ret.Destination)
		assert.Contains(t, ret.DepartureTime, "2026-09-17")
		assert.Contains(t, ret.Segments[0].FlightNumber, "R")
	}
}

func TestDemoNormalizesLocationInputs(t *testing.T) {
	provider := NewDemoProvider()
	offers, err := provider.Search(context.Background(), models.SearchRequest{
		Origin:        "delhi",
		Destination:   "",
		DepartureDate: "2026-09-10",
	})
	require.NoError(t, err)

	leg := offers[0].Legs[0]
	assert.Equal(t, "DEL", leg.Origin, "lowercase input is uppercased and truncated")
	assert.Equal(t, "BOM", leg.Destination, "empty destination falls back to BOM")
}

func TestDemoBadDepartureDateStillProducesOffers(t *testing.T) {
	provider := NewDemoProvider()
	offers, err := provider.Search(context.Background(), models.SearchRequest{
		Origin:        "DEL",
		Destination:   "BOM",
		DepartureDate: "not-a-date",
	})
	require.NoError(t, err)
	assert.Len(t, offers, 6)
}
