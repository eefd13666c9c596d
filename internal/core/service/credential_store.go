package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/route2rise/leaddesk/internal/core/domain"
	"github.com/route2rise/leaddesk/internal/core/ports"
)

type staticFounder struct {
	passwordHash []byte
	name         string
}

// StaticCredentialStore holds the founders' credentials in memory. The
// configured passwords are bcrypt-hashed once at construction so that the
// per-login comparison is constant-time; the external contract (plain
// username/password in, match or no match out) is unchanged.
type StaticCredentialStore struct {
	founders map[string]staticFounder
}

// NewStaticCredentialStore builds the store from the configured principals.
func NewStaticCredentialStore(creds []ports.FounderCredential) (*StaticCredentialStore, error) {
	founders := make(map[string]staticFounder, len(creds))
	for _, c := range creds {
		if c.Username == "" || c.Password == "" {
			return nil, fmt.Errorf("credential store: founder %q: %w", c.Name, domain.ErrInvalidCredentials)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("credential store: hash password for %q: %w", c.Username, err)
		}
		founders[c.Username] = staticFounder{passwordHash: hash, name: c.Name}
	}
	return &StaticCredentialStore{founders: founders}, nil
}

// Verify checks a username/password pair. An unknown username and a wrong
// password are indistinguishable to the caller.
func (s *StaticCredentialStore) Verify(username, password string) (*domain.Founder, bool) {
	f, ok := s.founders[username]
	if !ok {
		return nil, false
	}
	if bcrypt.CompareHashAndPassword(f.passwordHash, []byte(password)) != nil {
		return nil, false
	}
	return &domain.Founder{Username: username, Name: f.name}, true
}
