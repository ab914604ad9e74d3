// Package principal resolves the acting identity of one request and
// enforces ownership authorization.
package principal

import (
	"strings"

	"github.com/vikasreddy148/Expense-Tracker-Application/internal/auth/token"
)

const bearerPrefix = "Bearer "

// Principal is the resolved acting identity for the lifetime of a single
// request. The zero value is Anonymous.
type Principal struct {
	Username      string
	Email         string
	Roles         []string
	Authenticated bool
}

// Anonymous is the unauthenticated principal.
var Anonymous = Principal{}

// Resolver turns a raw Authorization header value into a Principal.
type Resolver struct {
	codec *token.Codec
}

func NewResolver(codec *token.Codec) *Resolver {
	return &Resolver{codec: codec}
}

// Resolve extracts and verifies the bearer token. Any failure (missing
// header, malformed value, bad signature, expiry) degrades to Anonymous
// rather than aborting the request; many endpoints are public, and the
// guard rejects anonymous access to protected ones.
func (r *Resolver) Resolve(headerValue string) Principal {
	raw, ok := strings.CutPrefix(headerValue, bearerPrefix)
	if !ok || raw == "" {
		return Anonymous
	}

	claims, err := r.codec.Verify(raw)
	if err != nil {
		return Anonymous
	}

	return Principal{
		Username:      claims.Username(),
		Email:         claims.Email,
		Roles:         claims.Roles,
		Authenticated: true,
	}
}
