package ports

import (
	"context"

	"github.com/route2rise/leaddesk/internal/core/domain"
)

// FounderCredential is one statically configured principal.
type FounderCredential struct {
	Username string
	Password string
	Name     string // founder display name
}

// CredentialStore validates a submitted username/password pair against the
// static principal table. Absence (not an error) signals no match.
type CredentialStore interface {
	Verify(username, password string) (*domain.Founder, bool)
}

// TokenValidator checks a presented session token. Validation is pure and
// stateless: there is no revocation list, expiry is the only invalidation.
type TokenValidator interface {
	Validate(token string) (*domain.Claims, error)
}

// AuthService issues and validates session tokens for the two founders.
type AuthService interface {
	TokenValidator

	// Login verifies credentials and mints a signed, time-limited token.
	Login(ctx context.Context, username, password string) (string, *domain.Founder, error)
}
