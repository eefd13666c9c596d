package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/route2rise/leaddesk/internal/core/domain"
	"github.com/route2rise/leaddesk/internal/core/ports"
)

const defaultTokenTTL = 24 * time.Hour

// AuthService implements login and stateless token validation. Tokens are
// HS256-signed with a shared secret and carry {username, founder, exp};
// once issued they remain valid for their full TTL (no revocation list).
type AuthService struct {
	creds     ports.CredentialStore
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

// NewAuthService fails when the signing secret is unset: that is a
// configuration error, not recoverable at runtime.
func NewAuthService(creds ports.CredentialStore, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) (*AuthService, error) {
	if jwtSecret == "" {
		return nil, domain.ErrMissingSigningSecret
	}
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{creds: creds, jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: logger}, nil
}

// Login verifies credentials and issues a session token. Which part of the
// pair was wrong is never revealed to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.Founder, error) {
	founder, ok := s.creds.Verify(username, password)
	if !ok {
		s.logger.Warn().Str("username", username).Msg("login rejected")
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.issue(founder)
	if err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("failed to sign token")
		return "", nil, err
	}

	s.logger.Info().Str("username", username).Str("founder", founder.Name).Msg("founder logged in")
	return token, founder, nil
}

// Validate decodes and verifies a presented token. Malformed tokens, bad
// signatures, and expired tokens all surface as domain.ErrInvalidToken.
func (s *AuthService) Validate(token string) (*domain.Claims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	}, jwt.WithExpirationRequired())
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}

	username, _ := claims["username"].(string)
	founder, _ := claims["founder"].(string)
	if username == "" || founder == "" {
		return nil, domain.ErrInvalidToken
	}
	return &domain.Claims{Username: username, Founder: founder}, nil
}

func (s *AuthService) issue(founder *domain.Founder) (string, error) {
	claims := jwt.MapClaims{
		"username": founder.Username,
		"founder":  founder.Name,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
