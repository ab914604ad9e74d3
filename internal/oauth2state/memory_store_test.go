package oauth2state

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreConsumeOnce(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	err := s.Create(ctx, "state-1", Handshake{Provider: "google", Verifier: "v1"})
	require.NoError(t, err)

	h, err := s.Consume(ctx, "state-1")
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.Equal(t, "google", h.Provider)
	assert.Equal(t, "v1", h.Verifier)

	// Second consume misses.
	h, err = s.Consume(ctx, "state-1")
	require.NoError(t, err)
	assert.Nil(t, h)
}

func TestMemoryStoreUnknownState(t *testing.T) {
	s := NewMemoryStore()

	h, err := s.Consume(context.Background(), "never-created")
	require.NoError(t, err)
	assert.Nil(t, h)
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	stale := Handshake{
		Provider:  "github",
		Verifier:  "v2",
		CreatedAt: time.Now().Add(-TTL - time.Second),
	}
	require.NoError(t, s.Create(ctx, "state-2", stale))

	h, err := s.Consume(ctx, "state-2")
	require.NoError(t, err)
	assert.Nil(t, h)
}
