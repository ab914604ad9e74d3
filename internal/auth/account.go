package auth

import (
	"strings"
	"time"
)

// Provider tags the authentication path an account arrived through.
type Provider string

const (
	ProviderLocal  Provider = "LOCAL"
	ProviderGoogle Provider = "GOOGLE"
	ProviderGithub Provider = "GITHUB"
)

// ParseProvider maps an external provider name (e.g. a URL segment) to a
// known provider tag. Matching is case-insensitive; routes carry
// lowercase segments while the tags are stored uppercase.
func ParseProvider(name string) (Provider, error) {
	switch p := Provider(strings.ToUpper(name)); p {
	case ProviderLocal, ProviderGoogle, ProviderGithub:
		return p, nil
	}
	return "", ErrUnsupportedProvider
}

const RoleUser = "USER"

// Account is the canonical user identity. Exactly one Account exists per
// real-world user regardless of how many login paths they use.
type Account struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string // empty for provider-only accounts
	Provider     Provider
	ProviderID   string // provider-assigned id, set iff Provider != LOCAL
	Roles        []string
	Enabled      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
