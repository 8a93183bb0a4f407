// Package tokens verifies the bearer credentials presented to the API.
// Production verifies Google ID tokens through OIDC discovery; local
// development falls back to an HS256 token service so the API runs
// without an external provider.
package tokens

import "context"

// Claims carries the provider-asserted identity of a verified token.
type Claims struct {
	Subject string
	Email   string
	Name    string
}

// Verifier checks a raw bearer token and returns its claims.
type Verifier interface {
	Verify(ctx context.Context, rawToken string) (*Claims, error)
}
