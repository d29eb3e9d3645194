package eventdata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}
	return path
}

func TestLoaderLoadStartups(t *testing.T) {
	path := writeFile(t, "startups.yaml", `---
startups:
  - id: 7
    fullName: Jane Perera
    designation: CEO
    startupName: Acme
    startupDomain: FinTech
    briefDescription: Payments for everyone
    isTop30: true
    isLocal: true
  - id: 8
    startupName: Beta Labs
    startupDomain: AgriTech
`)

	file, err := NewLoader(path).LoadStartups()
	if err != nil {
		t.Fatalf("LoadStartups() error = %v", err)
	}

	if len(file.Startups) != 2 {
		t.Fatalf("LoadStartups() returned %v startups, want 2", len(file.Startups))
	}
	if file.Startups[0].StartupName != "Acme" || !file.Startups[0].IsTop30 {
		t.Errorf("first startup = %+v", file.Startups[0])
	}
}

func TestLoaderLoadStartupsUnknownField(t *testing.T) {
	path := writeFile(t, "startups.yaml", `startups:
  - id: 7
    startupNmae: Acme
`)

	_, err := NewLoader(path).LoadStartups()
	if err == nil {
		t.Fatal("LoadStartups() with a misspelled field should return error")
	}
}

func TestLoaderLoadEmptyFile(t *testing.T) {
	path := writeFile(t, "startups.yaml", "")

	_, err := NewLoader(path).LoadStartups()
	if err == nil || !strings.Contains(err.Error(), "empty") {
		t.Errorf("LoadStartups() on empty file error = %v, want empty file error", err)
	}
}

func TestLoaderLoadFileNotFound(t *testing.T) {
	_, err := NewLoader("/nonexistent/path/startups.yaml").LoadStartups()
	if err == nil {
		t.Error("LoadStartups() with non-existent file should return error")
	}
}

func TestLoaderLoadInvestors(t *testing.T) {
	path := writeFile(t, "investors.yaml", `investors:
  - id: "1"
    vcName: James Tan
    roleAtDA: Panel Speaker
    city: Singapore
    fareType: Economy class
    arrivalFlight:
      route: Singapore → Colombo
      date: Wednesday, 17 September 2025
      departure:
        time: 09:45 am
        airport: Changi Airport (SIN)
        terminal: Terminal 3
      arrival:
        time: 11:05 am
        airport: Bandaranaike International Airport (CMB)
      duration: 3h 50m
      flightNumber: UL 309
      airline: SriLankan Airlines
      aircraft: Airbus A330
    arrivalDate: 17 September 2025
    departureDate: 20 September 2025
    accommodation:
      checkIn: 17 September 2025
      checkOut: 20 September 2025
      nights: 3
    groundTravel:
      asayaSands: Attending
      arrangedBy: Disrupt Asia
`)

	file, err := NewLoader(path).LoadInvestors()
	if err != nil {
		t.Fatalf("LoadInvestors() error = %v", err)
	}

	if len(file.Investors) != 1 {
		t.Fatalf("LoadInvestors() returned %v investors, want 1", len(file.Investors))
	}
	inv := file.Investors[0]
	if inv.ArrivalFlight.Departure.Terminal != "Terminal 3" {
		t.Errorf("arrival terminal = %q, want Terminal 3", inv.ArrivalFlight.Departure.Terminal)
	}
	if inv.Accommodation.Nights != 3 {
		t.Errorf("nights = %d, want 3", inv.Accommodation.Nights)
	}
}

func TestReadStartups(t *testing.T) {
	path := writeFile(t, "startups.yaml", `startups:
  - id: 7
    startupName: Acme
`)

	startups, err := ReadStartups(path)
	if err != nil {
		t.Fatalf("ReadStartups() error = %v", err)
	}
	if len(startups) != 1 || startups[0].ID != 7 {
		t.Errorf("ReadStartups() = %+v", startups)
	}
}
