package tour

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/spotlight/internal/geometry"
)

// ErrNoSteps is returned for a tour definition without steps.
var ErrNoSteps = errors.New("tour has no steps")

//go:embed default_tours.yaml
var defaultTours []byte

// Definition describes a tour in a tours file.
type Definition struct {
	Key       string `yaml:"key" json:"key"`
	Name      string `yaml:"name" json:"name,omitempty"`
	AutoStart bool   `yaml:"auto_start" json:"auto_start,omitempty"`
	Steps     []Step `yaml:"steps" json:"steps"`
}

// Tour builds a runnable tour for userID.
func (d Definition) Tour(userID string, onFinish func()) Tour {
	return Tour{
		Key:      d.Key,
		UserID:   userID,
		Steps:    d.Steps,
		OnFinish: onFinish,
	}
}

// Targets returns the distinct target IDs referenced by the steps, in order.
func (d Definition) Targets() []string {
	var ids []string
	seen := make(map[string]bool)
	for _, s := range d.Steps {
		if s.TargetID == "" || seen[s.TargetID] {
			continue
		}
		seen[s.TargetID] = true
		ids = append(ids, s.TargetID)
	}
	return ids
}

// Catalog is the parsed contents of a tours file.
type Catalog struct {
	Tours []Definition `yaml:"tours" json:"tours"`
}

// Find returns the definition with key.
func (c Catalog) Find(key string) (Definition, bool) {
	for _, d := range c.Tours {
		if d.Key == key {
			return d, true
		}
	}
	return Definition{}, false
}

// DefaultCatalog returns the built-in tours.
func DefaultCatalog() Catalog {
	c, err := ParseCatalog(defaultTours, FormatYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded tours are invalid: %v", err))
	}
	return c
}

// Format is a tours file encoding.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

// FormatFor picks the encoding from a file extension.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// LoadCatalog reads and validates a tours file.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from config
	if err != nil {
		return Catalog{}, fmt.Errorf("reading tours file: %w", err)
	}
	c, err := ParseCatalog(data, FormatFor(path))
	if err != nil {
		return Catalog{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// ParseCatalog decodes and validates tours. Steps without an ID are named
// step-N and placements are normalized.
func ParseCatalog(data []byte, format Format) (Catalog, error) {
	var c Catalog
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &c)
	default:
		err = yaml.Unmarshal(data, &c)
	}
	if err != nil {
		return Catalog{}, fmt.Errorf("decoding tours: %w", err)
	}

	seen := make(map[string]bool, len(c.Tours))
	for i := range c.Tours {
		d := &c.Tours[i]
		if d.Key == "" {
			return Catalog{}, fmt.Errorf("tour %d: missing key", i)
		}
		if seen[d.Key] {
			return Catalog{}, fmt.Errorf("tour %q: duplicate key", d.Key)
		}
		seen[d.Key] = true
		if len(d.Steps) == 0 {
			return Catalog{}, fmt.Errorf("tour %q: %w", d.Key, ErrNoSteps)
		}
		for j := range d.Steps {
			s := &d.Steps[j]
			if s.ID == "" {
				s.ID = fmt.Sprintf("step-%d", j+1)
			}
			p, err := geometry.ParsePlacement(string(s.Placement))
			if err != nil {
				return Catalog{}, fmt.Errorf("tour %q step %q: %w", d.Key, s.ID, err)
			}
			s.Placement = p
		}
	}
	return c, nil
}
