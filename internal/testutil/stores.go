package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/zjrosen/spotlight/internal/tour"
)

// ErrStoreUnavailable is returned by FailingStore.
var ErrStoreUnavailable = errors.New("store unavailable")

// Op is one recorded store call.
type Op struct {
	Method string
	Key    string
	Value  string
}

// RecordingStore is an in-memory tour.Store that records every call. When
// Gate is set, Set blocks until it is closed.
type RecordingStore struct {
	*tour.MemoryStore

	Gate chan struct{}

	mu  sync.Mutex
	ops []Op
}

var _ tour.Store = (*RecordingStore)(nil)

// NewRecordingStore creates an empty RecordingStore.
func NewRecordingStore() *RecordingStore {
	return &RecordingStore{MemoryStore: tour.NewMemoryStore()}
}

func (s *RecordingStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.record(Op{Method: "Get", Key: key})
	return s.MemoryStore.Get(ctx, key)
}

func (s *RecordingStore) Set(ctx context.Context, key, value string) error {
	if s.Gate != nil {
		select {
		case <-s.Gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	s.record(Op{Method: "Set", Key: key, Value: value})
	return s.MemoryStore.Set(ctx, key, value)
}

func (s *RecordingStore) Delete(ctx context.Context, key string) error {
	s.record(Op{Method: "Delete", Key: key})
	return s.MemoryStore.Delete(ctx, key)
}

// Ops returns a copy of the recorded calls.
func (s *RecordingStore) Ops() []Op {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Op(nil), s.ops...)
}

// Count returns how many calls to method were recorded.
func (s *RecordingStore) Count(method string) int {
	n := 0
	for _, op := range s.Ops() {
		if op.Method == method {
			n++
		}
	}
	return n
}

func (s *RecordingStore) record(op Op) {
	s.mu.Lock()
	s.ops = append(s.ops, op)
	s.mu.Unlock()
}

// FailingStore fails every call selected by its flags with ErrStoreUnavailable.
type FailingStore struct {
	FailGet    bool
	FailSet    bool
	FailDelete bool

	mu   sync.Mutex
	sets int
}

var _ tour.Store = (*FailingStore)(nil)

// NewFailingStore fails all operations.
func NewFailingStore() *FailingStore {
	return &FailingStore{FailGet: true, FailSet: true, FailDelete: true}
}

func (s *FailingStore) Get(context.Context, string) (string, bool, error) {
	if s.FailGet {
		return "", false, ErrStoreUnavailable
	}
	return "", false, nil
}

func (s *FailingStore) Set(context.Context, string, string) error {
	s.mu.Lock()
	s.sets++
	s.mu.Unlock()
	if s.FailSet {
		return ErrStoreUnavailable
	}
	return nil
}

func (s *FailingStore) Delete(context.Context, string) error {
	if s.FailDelete {
		return ErrStoreUnavailable
	}
	return nil
}

// SetCalls returns how many times Set was attempted.
func (s *FailingStore) SetCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sets
}
