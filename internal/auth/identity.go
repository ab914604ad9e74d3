package auth

// Identity represents a normalized external authentication identity
// returned by an OAuth provider. It contains facts only, no decisions,
// and is consumed once by the reconciler.
type Identity struct {
	Provider       Provider
	ProviderUserID string         // provider-scoped unique user identifier (sub)
	Email          string         // email returned by provider
	DisplayName    string         // human-readable name returned by provider
	RawAttributes  map[string]any // full attribute payload, for diagnostics
}
