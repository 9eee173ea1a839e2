package tour

import (
	"slices"

	"github.com/zjrosen/spotlight/internal/geometry"
	"github.com/zjrosen/spotlight/internal/log"
)

// Registry tracks the latest on-screen rectangle of every tour target.
// It is owned by the UI goroutine and is not safe for concurrent use.
type Registry struct {
	rects   map[string]geometry.Rect
	version uint64
	emit    func(Event)
}

// NewRegistry creates an empty registry. emit may be nil.
func NewRegistry(emit func(Event)) *Registry {
	return &Registry{
		rects: make(map[string]geometry.Rect),
		emit:  emit,
	}
}

// Register upserts the rectangle for id and reports whether anything changed.
// Empty rectangles (unsettled layout) are ignored so they never replace a good
// measurement; an identical rectangle is a no-op.
func (r *Registry) Register(id string, rect geometry.Rect) bool {
	if id == "" || rect.Empty() {
		return false
	}
	if prev, ok := r.rects[id]; ok && prev == rect {
		return false
	}
	r.rects[id] = rect
	r.version++
	log.Debug(log.CatRegistry, "target registered", "id", id, "x", rect.X, "y", rect.Y, "w", rect.Width, "h", rect.Height)
	r.publish(Event{Kind: EventTargetRegistered, TargetID: id, Rect: rect})
	return true
}

// Unregister removes id. Unknown ids are a no-op.
func (r *Registry) Unregister(id string) bool {
	rect, ok := r.rects[id]
	if !ok {
		return false
	}
	delete(r.rects, id)
	r.version++
	log.Debug(log.CatRegistry, "target unregistered", "id", id)
	r.publish(Event{Kind: EventTargetUnregistered, TargetID: id, Rect: rect})
	return true
}

// Lookup returns the rectangle for id.
func (r *Registry) Lookup(id string) (geometry.Rect, bool) {
	rect, ok := r.rects[id]
	return rect, ok
}

// Len returns the number of registered targets.
func (r *Registry) Len() int {
	return len(r.rects)
}

// Version increases on every effective change.
func (r *Registry) Version() uint64 {
	return r.version
}

// IDs returns the registered ids in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.rects))
	for id := range r.rects {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (r *Registry) publish(e Event) {
	if r.emit != nil {
		r.emit(e)
	}
}
