package tour

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/spotlight/internal/geometry"
	"github.com/zjrosen/spotlight/internal/log"
	"github.com/zjrosen/spotlight/internal/pubsub"
	"github.com/zjrosen/spotlight/internal/tracing"
)

// DefaultWriteTimeout bounds a single fire-and-forget completion write.
const DefaultWriteTimeout = 5 * time.Second

// Service is the tour engine a UI host talks to. It owns the registry and
// controller, persists completion through a cached store and publishes every
// change on a broker.
//
// Registry and controller methods must be called from the UI goroutine.
// Completion reads (IsDone, ShouldAutoStart) are safe from any goroutine.
type Service struct {
	registry *Registry
	ctrl     *Controller
	store    *CachedStore
	broker   *pubsub.Broker[Event]
	tracer   trace.Tracer

	writes       sync.WaitGroup
	writeTimeout time.Duration
	cacheTTL     time.Duration
	newRunID     func() string

	runSpan trace.Span
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithTracer records tour runs and store operations as spans.
func WithTracer(t trace.Tracer) ServiceOption {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

// WithWriteTimeout bounds each completion write.
func WithWriteTimeout(d time.Duration) ServiceOption {
	return func(s *Service) {
		if d > 0 {
			s.writeTimeout = d
		}
	}
}

// WithCacheTTL sets how long completion lookups are cached.
func WithCacheTTL(d time.Duration) ServiceOption {
	return func(s *Service) {
		s.cacheTTL = d
	}
}

// WithRunIDs replaces the run ID generator.
func WithRunIDs(fn func() string) ServiceOption {
	return func(s *Service) {
		s.newRunID = fn
	}
}

// NewService creates a service persisting completion to store.
func NewService(store Store, opts ...ServiceOption) *Service {
	s := &Service{
		broker:       pubsub.NewBrokerWithBuffer[Event](128),
		tracer:       noop.NewTracerProvider().Tracer("noop"),
		writeTimeout: DefaultWriteTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.store = NewCachedStore(store, s.cacheTTL)
	s.registry = NewRegistry(s.emit)
	s.ctrl = NewController(Hooks{
		MarkDone: s.markDone,
		Emit:     s.emit,
		NewRunID: s.newRunID,
	})
	return s
}

// Registry returns the target registry.
func (s *Service) Registry() *Registry {
	return s.registry
}

// Register records the measured rectangle of a target.
func (s *Service) Register(id string, rect geometry.Rect) bool {
	return s.registry.Register(id, rect)
}

// Unregister forgets a target.
func (s *Service) Unregister(id string) bool {
	return s.registry.Unregister(id)
}

// Lookup returns the last registered rectangle of a target.
func (s *Service) Lookup(id string) (geometry.Rect, bool) {
	return s.registry.Lookup(id)
}

// Start begins t. See Controller.Start.
func (s *Service) Start(t Tour) bool {
	if !s.ctrl.Start(t) {
		return false
	}
	st := s.ctrl.State()
	_, s.runSpan = s.tracer.Start(context.Background(), tracing.SpanTourRun,
		trace.WithAttributes(
			attribute.String(tracing.AttrTourKey, st.Key),
			attribute.String(tracing.AttrTourUser, st.UserID),
			attribute.String(tracing.AttrTourRunID, st.RunID),
			attribute.Int(tracing.AttrTourTotal, st.Total),
		))
	s.stepShown(st)
	return true
}

// Next advances the active tour.
func (s *Service) Next() {
	s.ctrl.Next()
	if st := s.ctrl.State(); st.Active {
		s.stepShown(st)
	}
}

// Prev moves the active tour back one step.
func (s *Service) Prev() {
	s.ctrl.Prev()
	if st := s.ctrl.State(); st.Active {
		s.stepShown(st)
	}
}

// Stop skips the active tour.
func (s *Service) Stop() {
	s.ctrl.Stop()
}

// State returns the controller snapshot.
func (s *Service) State() State {
	return s.ctrl.State()
}

// Active reports whether a tour is running.
func (s *Service) Active() bool {
	return s.ctrl.Active()
}

// IsDone reports whether the completion record for (key, userID) exists.
func (s *Service) IsDone(ctx context.Context, key, userID string) (bool, error) {
	storeKey := CompletionKey(key, userID)
	ctx, span := s.tracer.Start(ctx, tracing.SpanStoreGet,
		trace.WithAttributes(attribute.String(tracing.AttrStoreKey, storeKey)))
	defer span.End()

	_, ok, err := s.store.Get(ctx, storeKey)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false, fmt.Errorf("reading completion %s: %w", storeKey, err)
	}
	span.SetAttributes(attribute.Bool(tracing.AttrStoreHit, ok))
	return ok, nil
}

// ShouldAutoStart reports whether a tour has not been completed yet. A failed
// read counts as not completed.
func (s *Service) ShouldAutoStart(ctx context.Context, key, userID string) bool {
	done, err := s.IsDone(ctx, key, userID)
	if err != nil {
		log.Warn(log.CatStore, "completion read failed, treating as not done", "key", key, "user", userID, "error", err)
		return true
	}
	return !done
}

// Reset deletes the completion record for (key, userID).
func (s *Service) Reset(ctx context.Context, key, userID string) error {
	storeKey := CompletionKey(key, userID)
	ctx, span := s.tracer.Start(ctx, tracing.SpanStoreDrop,
		trace.WithAttributes(attribute.String(tracing.AttrStoreKey, storeKey)))
	defer span.End()

	if err := s.store.Delete(ctx, storeKey); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("resetting completion %s: %w", storeKey, err)
	}
	log.Info(log.CatStore, "completion reset", "key", storeKey)
	return nil
}

// Subscribe returns a channel of service events, closed when ctx is done.
func (s *Service) Subscribe(ctx context.Context) <-chan pubsub.Event[Event] {
	return s.broker.Subscribe(ctx)
}

// Broker exposes the event broker for ContinuousListener wiring.
func (s *Service) Broker() *pubsub.Broker[Event] {
	return s.broker
}

// Flush waits for in-flight completion writes.
func (s *Service) Flush() {
	s.writes.Wait()
}

// Close flushes pending writes and shuts the broker down.
func (s *Service) Close() {
	s.Flush()
	if s.runSpan != nil {
		s.runSpan.End()
		s.runSpan = nil
	}
	s.broker.Close()
}

// markDone makes completion visible to this process immediately and writes
// it to the store in the background. Write failures are logged, not retried.
func (s *Service) markDone(t Tour, runID string, outcome EventKind) {
	storeKey := CompletionKey(t.Key, t.UserID)
	s.store.Remember(context.Background(), storeKey, DoneValue)

	parent := context.Background()
	if s.runSpan != nil {
		parent = trace.ContextWithSpan(parent, s.runSpan)
	}

	s.writes.Add(1)
	go func() {
		defer s.writes.Done()

		ctx, cancel := context.WithTimeout(parent, s.writeTimeout)
		defer cancel()
		ctx, span := s.tracer.Start(ctx, tracing.SpanStoreSet,
			trace.WithAttributes(
				attribute.String(tracing.AttrStoreKey, storeKey),
				attribute.String(tracing.AttrTourRunID, runID),
			))
		defer span.End()

		if err := s.store.Set(ctx, storeKey, DoneValue); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			log.ErrorErr(log.CatStore, "completion write failed", err, "key", storeKey, "outcome", outcome)
			return
		}
		log.Debug(log.CatStore, "completion written", "key", storeKey, "outcome", outcome)
	}()
}

func (s *Service) emit(e Event) {
	if e.Ended() && s.runSpan != nil {
		s.runSpan.SetAttributes(
			attribute.String(tracing.AttrTourOutcome, string(e.Kind)),
			attribute.Int(tracing.AttrTourIndex, e.State.Index),
		)
		s.runSpan.End()
		s.runSpan = nil
	}
	s.broker.Publish(e.Kind.pubsubType(), e)
}

func (s *Service) stepShown(st State) {
	if s.runSpan == nil {
		return
	}
	s.runSpan.AddEvent(tracing.EventStepShown, trace.WithAttributes(
		attribute.Int(tracing.AttrTourIndex, st.Index),
		attribute.String("step.id", st.Step.ID),
	))
}
