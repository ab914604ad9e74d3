package provider_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vikasreddy148/Expense-Tracker-Application/internal/auth"
	"github.com/vikasreddy148/Expense-Tracker-Application/internal/auth/provider"
)

type stubProvider struct {
	name auth.Provider
}

func (s stubProvider) Name() auth.Provider { return s.name }

func (s stubProvider) AuthCodeURL(state, codeChallenge string) string {
	return "https://example.com/authorize?state=" + state
}

func (s stubProvider) ExchangeCode(_ context.Context, _, _ string) (*auth.Identity, error) {
	return &auth.Identity{Provider: s.name}, nil
}

func TestRegistryGet(t *testing.T) {
	registry := provider.NewRegistry(stubProvider{name: auth.ProviderGoogle})

	// Route segments arrive lowercase; tags are uppercase.
	for _, name := range []string{"google", "GOOGLE", "Google"} {
		p, err := registry.Get(name)
		require.NoError(t, err, "name %q", name)
		assert.Equal(t, auth.ProviderGoogle, p.Name())
	}
}

func TestRegistryGetUnknown(t *testing.T) {
	registry := provider.NewRegistry(stubProvider{name: auth.ProviderGoogle})

	tests := []struct {
		name  string
		input string
	}{
		{"unknown name", "gitlab"},
		{"known but unconfigured", "github"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := registry.Get(tt.input)
			assert.ErrorIs(t, err, auth.ErrUnsupportedProvider)
		})
	}
}
