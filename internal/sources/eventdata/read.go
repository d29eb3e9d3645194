package eventdata

import "github.com/DulithM/disrupt-asia-investor-platform-dev/internal/domain"

// ReadStartups loads and validates a catalog file in one step.
func ReadStartups(path string) ([]domain.Startup, error) {
	file, err := NewLoader(path).LoadStartups()
	if err != nil {
		return nil, err
	}
	return MapStartups(file)
}

// ReadInvestors loads and validates an itinerary file in one step.
func ReadInvestors(path string) ([]domain.Investor, error) {
	file, err := NewLoader(path).LoadInvestors()
	if err != nil {
		return nil, err
	}
	return MapInvestors(file)
}
