// Package oauth2state holds the short-lived server side of an OAuth2
// handshake: the PKCE verifier and provider bound to an outstanding
// state value. Records live minutes and are consumed exactly once.
package oauth2state

import (
	"context"
	"time"
)

const TTL = 5 * time.Minute

// Handshake is one pending provider redirect.
type Handshake struct {
	Provider  string    `json:"provider"`
	Verifier  string    `json:"verifier"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists pending handshakes keyed by state.
type Store interface {
	Create(ctx context.Context, state string, h Handshake) error

	// Consume returns and deletes the handshake for a state, or nil when
	// the state is unknown or already used.
	Consume(ctx context.Context, state string) (*Handshake, error)
}
