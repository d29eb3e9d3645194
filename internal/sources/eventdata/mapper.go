package eventdata

import (
	"fmt"
	"slices"
	"strings"

	"github.com/DulithM/disrupt-asia-investor-platform-dev/internal/domain"
)

// MapStartups validates the catalog file and converts it to domain
// startups, in file order.
//
// IDs must be positive and unique and every startup needs a name: the
// favorites store keys on ID and a duplicate would make lookups
// ambiguous.
func MapStartups(file StartupsFile) ([]domain.Startup, error) {
	if len(file.Startups) == 0 {
		return nil, fmt.Errorf("no startups found in catalog")
	}

	seen := make(map[int]bool, len(file.Startups))
	startups := make([]domain.Startup, 0, len(file.Startups))

	for i, e := range file.Startups {
		if e.ID <= 0 {
			return nil, fmt.Errorf("startup #%d: id must be > 0, got %d", i+1, e.ID)
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("startup #%d: duplicate id %d", i+1, e.ID)
		}
		seen[e.ID] = true

		name := strings.TrimSpace(e.StartupName)
		if name == "" {
			return nil, fmt.Errorf("startup id %d: startupName is required", e.ID)
		}

		startups = append(startups, domain.Startup{
			ID:               e.ID,
			FullName:         strings.TrimSpace(e.FullName),
			Designation:      strings.TrimSpace(e.Designation),
			ContactNumber:    strings.TrimSpace(e.ContactNumber),
			EmailAddress:     strings.TrimSpace(e.EmailAddress),
			StartupName:      name,
			StartupLogo:      e.StartupLogo,
			StartupDomain:    strings.TrimSpace(e.StartupDomain),
			WebsiteURL:       e.WebsiteURL,
			BriefDescription: strings.TrimSpace(e.BriefDescription),
			PitchDeckURL:     e.PitchDeckURL,
			BoothNumber:      e.BoothNumber,
			IsTop30:          e.IsTop30,
			IsLocal:          e.IsLocal,
		})
	}

	return startups, nil
}

// MapInvestors validates the itinerary file and converts it to domain
// investors. An empty file is valid: itineraries are optional.
func MapInvestors(file InvestorsFile) ([]domain.Investor, error) {
	seen := make(map[string]bool, len(file.Investors))
	investors := make([]domain.Investor, 0, len(file.Investors))

	for i, e := range file.Investors {
		id := strings.TrimSpace(e.ID)
		if id == "" {
			return nil, fmt.Errorf("investor #%d: id is required", i+1)
		}
		if seen[id] {
			return nil, fmt.Errorf("investor #%d: duplicate id %q", i+1, id)
		}
		seen[id] = true

		if e.FareType != "" && !slices.Contains(domain.FareTypes, e.FareType) {
			return nil, fmt.Errorf("investor %s: unknown fareType %q", id, e.FareType)
		}

		investors = append(investors, domain.Investor{
			ID:            id,
			VCName:        e.VCName,
			RoleAtDA:      e.RoleAtDA,
			City:          e.City,
			FareType:      e.FareType,
			ArrivalFlight: mapFlight(e.ArrivalFlight),
			ArrivalDate:   e.ArrivalDate,
			DepartureDate: e.DepartureDate,
			DepartFlight:  mapFlight(e.DepartureFlight),
			Accommodation: domain.Accommodation{
				CheckIn:  e.Accommodation.CheckIn,
				CheckOut: e.Accommodation.CheckOut,
				Nights:   e.Accommodation.Nights,
				Notes:    e.Accommodation.Notes,
			},
			GroundTravel: domain.GroundTravel{
				AsayaSands: e.GroundTravel.AsayaSands,
				ArrangedBy: e.GroundTravel.ArrangedBy,
				Notes:      e.GroundTravel.Notes,
			},
		})
	}

	return investors, nil
}

func mapFlight(f FlightEntry) domain.Flight {
	return domain.Flight{
		Route: f.Route,
		Date:  f.Date,
		Departure: domain.Waypoint{
			Time:     f.Departure.Time,
			Airport:  f.Departure.Airport,
			Terminal: f.Departure.Terminal,
		},
		Arrival: domain.Waypoint{
			Time:     f.Arrival.Time,
			Airport:  f.Arrival.Airport,
			Terminal: f.Arrival.Terminal,
		},
		Duration:     f.Duration,
		FlightNumber: f.FlightNumber,
		Airline:      f.Airline,
		Aircraft:     f.Aircraft,
	}
}
