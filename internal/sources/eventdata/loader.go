package eventdata

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader reads one event data file from disk.
type Loader struct {
	filePath string
}

// NewLoader creates a loader for filePath.
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Path returns the file the loader reads.
func (l *Loader) Path() string {
	return l.filePath
}

// LoadStartups reads and parses the catalog file.
func (l *Loader) LoadStartups() (StartupsFile, error) {
	var file StartupsFile
	if err := l.decode("startups", &file); err != nil {
		return StartupsFile{}, err
	}
	return file, nil
}

// LoadInvestors reads and parses the itinerary file.
func (l *Loader) LoadInvestors() (InvestorsFile, error) {
	var file InvestorsFile
	if err := l.decode("investors", &file); err != nil {
		return InvestorsFile{}, err
	}
	return file, nil
}

// decode rejects unknown keys so a typo in a field name fails loudly
// instead of silently zeroing it.
func (l *Loader) decode(kind string, out any) error {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return fmt.Errorf("failed to read %s file: %w", kind, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%s file %s is empty", kind, l.filePath)
		}
		return fmt.Errorf("failed to parse %s yaml: %w", kind, err)
	}
	return nil
}
