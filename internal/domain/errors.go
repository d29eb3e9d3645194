package domain

import "errors"

var (
	// ErrStartupNotFound is returned when an ID is absent from the catalog.
	ErrStartupNotFound = errors.New("startup not found")

	// ErrInvestorNotFound is returned for unknown itinerary IDs.
	ErrInvestorNotFound = errors.New("investor not found")

	// ErrInvalidProfile is returned for profile IDs that are not a
	// non-nil UUID.
	ErrInvalidProfile = errors.New("invalid profile id")
)
