package providers

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/redeflights/flightsearch/internal/models"
)

// DemoProvider generates deterministic synthetic offers from a fixed
// airline/schedule table. It exists for demo and test setups only and is
// selected exclusively through mock mode; live searches never fall back to
// it.
type DemoProvider struct{}

type demoAirline struct {
	code     string
	name     string
	number   string
	price    float64
	duration int
}

var demoAirlines = []demoAirline{
	{code: "6E", name: "IndiGo", number: "2341", price: 4850, duration: 115},
	{code: "AI", name: "Air India", number: "657", price: 6200, duration: 120},
	{code: "SG", name: "SpiceJet", number: "9214", price: 4250, duration: 110},
	{code: "UK", name: "Vistara", number: "985", price: 7800, duration: 125},
	{code: "G8", name: "Go First", number: "116", price: 3990, duration: 118},
	{code: "I5", name: "AirAsia India", number: "760", price: 4100, duration: 113},
}

var demoDepartures = []string{"05:15", "08:30", "11:45", "14:00", "17:20", "21:10"}

func NewDemoProvider() *DemoProvider {
	return &DemoProvider{}
}

func (p *DemoProvider) Name() string {
	return "demo"
}

func (p *DemoProvider) Authenticate(ctx context.Context) error {
	return nil
}

func (p *DemoProvider) Search(ctx context.Context, req models.SearchRequest) ([]models.Offer, error) {
	origin := demoCode(req.Origin, "DEL")
	destination := demoCode(req.Destination, "BOM")

	departDate, err := time.Parse("2006-01-02", req.DepartureDate)
	if err != nil {
		departDate = time.Now().UTC().Truncate(24 * time.Hour)
	}

	adults := req.AdultCount()
	offers := make([]models.Offer, 0, len(demoAirlines))

	for i, a := range demoAirlines {
		depTime, _ := time.Parse("15:04", demoDepartures[i])
		dep := time.Date(departDate.Year(), departDate.Month(), departDate.Day(), depTime.Hour(), depTime.Minute(), 0, 0, time.UTC)
		arr := dep.Add(time.Duration(a.duration) * time.Minute)

		// Every second and fourth option routes through a connection.
		hasStop := i == 1 || i == 3

		var segments []models.Segment
		if hasStop {
			connection := dep.Add(60 * time.Minute)
			resume := dep.Add(90 * time.Minute)
			segments = []models.Segment{
				demoSegment(origin, "T3", dep, "BLR", "T2", connection, a, a.number+"1", "320", 60),
				demoSegment("BLR", "T2", resume, destination, "T1", arr, a, a.number+"2", "320", a.duration-90),
			}
		} else {
			depTerminal := "T1"
			if i%2 != 0 {
				depTerminal = "T2"
			}
			aircraft := "320"
			if i%3 == 0 {
				aircraft = "737"
			}
			segments = []models.Segment{
				demoSegment(origin, depTerminal, dep, destination, "T1", arr, a, a.number, aircraft, a.duration),
			}
		}

		legs := []models.Leg{models.AssembleLeg(segments, a.duration)}

		if req.RoundTrip() {
			if retLeg, ok := p.returnLeg(req.ReturnDate, origin, destination, i, a); ok {
				legs = append(legs, retLeg)
			}
		}

		basePrice := a.price * float64(adults)
		tax := math.Round(basePrice * 0.18)

		offers = append(offers, models.Offer{
			ID:   fmt.Sprintf("flight-demo-%d", i),
			Type: models.TripTypeFor(len(legs)),
			Price: models.Price{
				Total:    basePrice + tax,
				Base:     basePrice,
				Tax:      tax,
				Currency: "INR",
			},
			Legs:              legs,
			ValidatingCarrier: a.code,
			IsDemo:            true,
		})
	}

	return offers, nil
}

func (p *DemoProvider) returnLeg(returnDate, origin, destination string, i int, a demoAirline) (models.Leg, bool) {
	retDate, err := time.Parse("2006-01-02", returnDate)
	if err != nil {
		return models.Leg{}, false
	}

	depTime, _ := time.Parse("15:04", demoDepartures[i])
	dep := time.Date(retDate.Year(), retDate.Month(), retDate.Day(), depTime.Hour()+2, depTime.Minute(), 0, 0, time.UTC)
	arr := dep.Add(time.Duration(a.duration) * time.Minute)

	arrTerminal := "T1"
	if i%2 != 0 {
		arrTerminal = "T2"
	}

	segments := []models.Segment{
		demoSegment(destination, "T1", dep, origin, arrTerminal, arr, a, "R"+a.number, "320", a.duration),
	}
	return models.AssembleLeg(segments, a.duration), true
}

func demoSegment(depAirport, depTerminal string, dep time.Time, arrAirport, arrTerminal string, arr time.Time, a demoAirline, flightNumber, aircraft string, duration int) models.Segment {
	return models.Segment{
		Departure: models.Endpoint{
			Airport:  depAirport,
			Terminal: depTerminal,
			Time:     dep.Format(time.RFC3339),
		},
		Arrival: models.Endpoint{
			Airport:  arrAirport,
			Terminal: arrTerminal,
			Time:     arr.Format(time.RFC3339),
		},
		Airline:      a.code,
		AirlineName:  a.name,
		FlightNumber: flightNumber,
		Aircraft:     aircraft,
		Duration:     duration,
		Stops:        0,
		Cabin:        "Y",
	}
}

func demoCode(s, fallback string) string {
	if s == "" {
		return fallback
	}
	code := strings.ToUpper(s)
	if len(code) > 3 {
		code = code[:3]
	}
	return code
}
