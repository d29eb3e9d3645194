package domain

// Startup is one exhibiting company of the event catalog.
//
// The catalog is static for the lifetime of a reload and is never
// mutated by the favorites store, which only reads it by ID.
type Startup struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the stable catalog identifier. Always > 0.
	ID int `json:"id"`

	// ─────────────────────────────
	// Contact person
	// ─────────────────────────────

	FullName      string `json:"fullName"`
	Designation   string `json:"designation"` // CEO, Founder, CTO, Co-Founder...
	ContactNumber string `json:"contactNumber"`
	EmailAddress  string `json:"emailAddress"`

	// ─────────────────────────────
	// Company
	// ─────────────────────────────

	StartupName      string `json:"startupName"`
	StartupLogo      string `json:"startupLogo"`
	StartupDomain    string `json:"startupDomain"` // AgriTech, FinTech...
	WebsiteURL       string `json:"websiteUrl"`
	BriefDescription string `json:"briefDescription"`
	PitchDeckURL     string `json:"pitchDeckUrl,omitempty"`
	BoothNumber      string `json:"boothNumber,omitempty"`

	// ─────────────────────────────
	// Quick filter flags
	// ─────────────────────────────

	IsTop30 bool `json:"isTop30"`
	IsLocal bool `json:"isLocal"`
}
