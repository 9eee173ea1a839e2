// Package presentation renders tour data for the command line.
package presentation

import (
	"time"

	"github.com/zjrosen/spotlight/internal/tour"
)

// TourDTO describes a catalog entry.
type TourDTO struct {
	Key       string   `json:"key"`
	Name      string   `json:"name"`
	AutoStart bool     `json:"auto_start"`
	Steps     int      `json:"steps"`
	Targets   []string `json:"targets"` // always present, possibly empty
}

// StatusDTO is the completion state of one tour for one user.
type StatusDTO struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	User  string `json:"user,omitempty"`
	Done  bool   `json:"done"`
	Error string `json:"error,omitempty"`

	// CompletedAt is set when the store records write times.
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// FromDefinition converts a tour definition to a DTO.
func FromDefinition(d tour.Definition) TourDTO {
	targets := d.Targets()
	if targets == nil {
		targets = []string{}
	}
	name := d.Name
	if name == "" {
		name = d.Key
	}
	return TourDTO{
		Key:       d.Key,
		Name:      name,
		AutoStart: d.AutoStart,
		Steps:     len(d.Steps),
		Targets:   targets,
	}
}

// FromCatalog converts every definition in c, preserving order.
func FromCatalog(c tour.Catalog) []TourDTO {
	out := make([]TourDTO, 0, len(c.Tours))
	for _, d := range c.Tours {
		out = append(out, FromDefinition(d))
	}
	return out
}
