package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ParseProfileID accepts any form uuid.Parse understands and returns the
// lower-case hyphenated form that storage keys are built from.
func ParseProfileID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidProfile
	}
	u, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}
	if u == uuid.Nil {
		return "", fmt.Errorf("%w: nil uuid", ErrInvalidProfile)
	}
	return u.String(), nil
}
