package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecordingStore(t *testing.T) {
	ctx := context.Background()
	s := NewRecordingStore()

	require.NoError(t, s.Set(ctx, "a", "1"))
	v, ok, err := s.Get(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "1", v)
	require.NoError(t, s.Delete(ctx, "a"))

	require.Equal(t, []Op{
		{Method: "Set", Key: "a", Value: "1"},
		{Method: "Get", Key: "a"},
		{Method: "Delete", Key: "a"},
	}, s.Ops())
	require.Equal(t, 1, s.Count("Set"))
}

func TestRecordingStore_GateHonorsContext(t *testing.T) {
	s := NewRecordingStore()
	s.Gate = make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, s.Set(ctx, "a", "1"), context.Canceled)
	require.Zero(t, s.Count("Set"))
}

func TestFailingStore(t *testing.T) {
	ctx := context.Background()
	s := NewFailingStore()

	_, _, err := s.Get(ctx, "a")
	require.ErrorIs(t, err, ErrStoreUnavailable)
	require.ErrorIs(t, s.Set(ctx, "a", "1"), ErrStoreUnavailable)
	require.ErrorIs(t, s.Delete(ctx, "a"), ErrStoreUnavailable)
	require.Equal(t, 1, s.SetCalls())

	s.FailGet = false
	_, ok, err := s.Get(ctx, "a")
	require.NoError(t, err)
	require.False(t, ok)
}
