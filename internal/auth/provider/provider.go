package provider

import (
	"context"

	"github.com/vikasreddy148/Expense-Tracker-Application/internal/auth"
)

// OAuthProvider defines the contract every external auth provider must
// implement. Implementations return identity facts only and must not
// perform account creation, linking, or token issuance.
type OAuthProvider interface {
	// Name returns the provider tag (e.g. GOOGLE, GITHUB).
	Name() auth.Provider

	// AuthCodeURL returns the OAuth authorization URL. State and PKCE
	// parameters are provided by the caller.
	AuthCodeURL(state string, codeChallenge string) string

	// ExchangeCode exchanges the authorization code for provider
	// credentials and returns a normalized identity assertion.
	ExchangeCode(
		ctx context.Context,
		code string,
		codeVerifier string,
	) (*auth.Identity, error)
}
