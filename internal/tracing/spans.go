package tracing

// Span names.
const (
	SpanTourRun   = "tour.run"
	SpanStoreGet  = "tour.store.get"
	SpanStoreSet  = "tour.store.set"
	SpanStoreDrop = "tour.store.delete"
)

// Span attribute keys.
const (
	AttrTourKey     = "tour.key"
	AttrTourUser    = "tour.user"
	AttrTourRunID   = "tour.run_id"
	AttrTourTotal   = "tour.total"
	AttrTourIndex   = "tour.index"
	AttrTourOutcome = "tour.outcome"
	AttrStoreKey    = "store.key"
	AttrStoreHit    = "store.hit"
)

// Span event names.
const (
	EventStepShown = "step.shown"
)
