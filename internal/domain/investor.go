package domain

// Investor is the travel itinerary of one invited investor.
// All dates and times are display strings; nothing computes on them.
type Investor struct {
	ID            string        `json:"id"`
	VCName        string        `json:"vcName"`
	RoleAtDA      string        `json:"roleAtDA"`
	City          string        `json:"city"`
	FareType      string        `json:"fareType"` // Economy class | Business class | First class
	ArrivalFlight Flight        `json:"arrivalFlight"`
	ArrivalDate   string        `json:"arrivalDate"`
	DepartureDate string        `json:"departureDate"`
	DepartFlight  Flight        `json:"departureFlight"`
	Accommodation Accommodation `json:"accommodation"`
	GroundTravel  GroundTravel  `json:"groundTravel"`
}

type Flight struct {
	Route        string   `json:"route"`
	Date         string   `json:"date"`
	Departure    Waypoint `json:"departure"`
	Arrival      Waypoint `json:"arrival"`
	Duration     string   `json:"duration"`
	FlightNumber string   `json:"flightNumber"`
	Airline      string   `json:"airline"`
	Aircraft     string   `json:"aircraft"`
}

type Waypoint struct {
	Time     string `json:"time"`
	Airport  string `json:"airport"`
	Terminal string `json:"terminal,omitempty"`
}

type Accommodation struct {
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
	Nights   int    `json:"nights"`
	Notes    string `json:"notes,omitempty"`
}

type GroundTravel struct {
	AsayaSands string `json:"asayaSands"` // Attending | Not Attending
	ArrangedBy string `json:"arrangedBy"`
	Notes      string `json:"notes,omitempty"`
}

// Fare types accepted in itinerary files.
var FareTypes = []string{"Economy class", "Business class", "First class"}
