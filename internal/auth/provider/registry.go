package provider

import (
	"fmt"

	"github.com/vikasreddy148/Expense-Tracker-Application/internal/auth"
)

// Registry holds all configured OAuth providers and allows lookup by
// provider name. It performs no auth logic itself.
type Registry struct {
	providers map[auth.Provider]OAuthProvider
}

// NewRegistry registers the given OAuth providers by name.
// Provider names must be unique.
func NewRegistry(list ...OAuthProvider) *Registry {
	m := make(map[auth.Provider]OAuthProvider)
	for _, p := range list {
		m[p.Name()] = p
	}
	return &Registry{providers: m}
}

// Get returns the OAuth provider for a provider tag, or
// auth.ErrUnsupportedProvider for anything unknown or unconfigured.
func (r *Registry) Get(name string) (OAuthProvider, error) {
	tag, err := auth.ParseProvider(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", auth.ErrUnsupportedProvider, name)
	}
	p, ok := r.providers[tag]
	if !ok {
		return nil, fmt.Errorf("%w: %s", auth.ErrUnsupportedProvider, name)
	}
	return p, nil
}
