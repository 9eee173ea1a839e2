// Package flags provides feature flags read from the config file.
// Flags are read-only after initialization.
package flags

import (
	"maps"
	"slices"

	"github.com/zjrosen/spotlight/internal/log"
)

// Flag name constants.
const (
	// FlagHighlightRing draws a ring on the border of the spotlight hole.
	FlagHighlightRing = "highlight-ring"

	// FlagBackdropAdvance lets a click on the dimmed backdrop move to the next
	// step. Steps may still opt out individually.
	FlagBackdropAdvance = "backdrop-advance"

	// FlagAutoStart is the master switch for auto-starting tours.
	FlagAutoStart = "auto-start"
)

// defaults holds the value of each known flag when the config omits it.
var defaults = map[string]bool{
	FlagHighlightRing:   true,
	FlagBackdropAdvance: true,
	FlagAutoStart:       true,
}

// Registry holds feature flag state.
type Registry struct {
	flags map[string]bool
}

// New creates a Registry from the config map layered over the defaults.
func New(configured map[string]bool) *Registry {
	flags := maps.Clone(defaults)
	maps.Copy(flags, configured)
	r := &Registry{flags: flags}
	log.Debug(log.CatConfig, "Feature flags initialized", "count", len(flags), "flags", r.All())
	return r
}

// Enabled reports whether the named flag is on. Unknown flags and a nil
// registry report false.
func (r *Registry) Enabled(name string) bool {
	if r == nil || r.flags == nil {
		return false
	}
	value, exists := r.flags[name]
	if !exists {
		log.Debug(log.CatConfig, "Unknown flag accessed", "flag", name, "result", false)
		return false
	}
	return value
}

// All returns a copy of all flags.
func (r *Registry) All() map[string]bool {
	if r == nil || r.flags == nil {
		return make(map[string]bool)
	}
	return maps.Clone(r.flags)
}

// Known returns the names of the built-in flags, sorted.
func Known() []string {
	return slices.Sorted(maps.Keys(defaults))
}
