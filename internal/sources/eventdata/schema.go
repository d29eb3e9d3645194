package eventdata

// StartupsFile is the root structure of the catalog file (startups.yaml).
//
//	startups:
//	  - id: 7
//	    startupName: Acme
//	    ...
type StartupsFile struct {
	Startups []StartupEntry `yaml:"startups"`
}

// StartupEntry is one startup as written in the catalog file.
type StartupEntry struct {
	ID               int    `yaml:"id"`
	FullName         string `yaml:"fullName"`
	Designation      string `yaml:"designation"`
	ContactNumber    string `yaml:"contactNumber"`
	EmailAddress     string `yaml:"emailAddress"`
	StartupName      string `yaml:"startupName"`
	StartupLogo      string `yaml:"startupLogo,omitempty"`
	StartupDomain    string `yaml:"startupDomain"`
	WebsiteURL       string `yaml:"websiteUrl,omitempty"`
	BriefDescription string `yaml:"briefDescription,omitempty"`
	PitchDeckURL     string `yaml:"pitchDeckUrl,omitempty"`
	BoothNumber      string `yaml:"boothNumber,omitempty"`
	IsTop30          bool   `yaml:"isTop30"`
	IsLocal          bool   `yaml:"isLocal"`
}

// InvestorsFile is the root structure of the itinerary file (investors.yaml).
type InvestorsFile struct {
	Investors []InvestorEntry `yaml:"investors"`
}

// InvestorEntry is one investor itinerary as written in the itinerary file.
type InvestorEntry struct {
	ID              string            `yaml:"id"`
	VCName          string            `yaml:"vcName"`
	RoleAtDA        string            `yaml:"roleAtDA"`
	City            string            `yaml:"city"`
	FareType        string            `yaml:"fareType"`
	ArrivalFlight   FlightEntry       `yaml:"arrivalFlight"`
	ArrivalDate     string            `yaml:"arrivalDate"`
	DepartureDate   string            `yaml:"departureDate"`
	DepartureFlight FlightEntry       `yaml:"departureFlight"`
	Accommodation   AccommodationYAML `yaml:"accommodation"`
	GroundTravel    GroundTravelYAML  `yaml:"groundTravel"`
}

type FlightEntry struct {
	Route        string       `yaml:"route"`
	Date         string       `yaml:"date"`
	Departure    WaypointYAML `yaml:"departure"`
	Arrival      WaypointYAML `yaml:"arrival"`
	Duration     string       `yaml:"duration"`
	FlightNumber string       `yaml:"flightNumber"`
	Airline      string       `yaml:"airline"`
	Aircraft     string       `yaml:"aircraft"`
}

type WaypointYAML struct {
	Time     string `yaml:"time"`
	Airport  string `yaml:"airport"`
	Terminal string `yaml:"terminal,omitempty"`
}

type AccommodationYAML struct {
	CheckIn  string `yaml:"checkIn"`
	CheckOut string `yaml:"checkOut"`
	Nights   int    `yaml:"nights"`
	Notes    string `yaml:"notes,omitempty"`
}

type GroundTravelYAML struct {
	AsayaSands string `yaml:"asayaSands"`
	ArrangedBy string `yaml:"arrangedBy"`
	Notes      string `yaml:"notes,omitempty"`
}
