package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/route2rise/leaddesk/internal/core/domain"
	"github.com/route2rise/leaddesk/internal/core/ports"
)

func testCredentials() []ports.FounderCredential {
	return []ports.FounderCredential{
		{Username: "founder_a", Password: "passw0rd-a", Name: "Alice"},
		{Username: "founder_b", Password: "passw0rd-b", Name: "Bob"},
	}
}

func newTestAuthService(t *testing.T, ttl time.Duration) *AuthService {
	t.Helper()
	creds, err := NewStaticCredentialStore(testCredentials())
	if err != nil {
		t.Fatalf("credential store: %v", err)
	}
	svc, err := NewAuthService(creds, "test-secret", ttl, discardLogger)
	if err != nil {
		t.Fatalf("auth service: %v", err)
	}
	return svc
}

func TestNewAuthService_RequiresSecret(t *testing.T) {
	creds, err := NewStaticCredentialStore(testCredentials())
	if err != nil {
		t.Fatalf("credential store: %v", err)
	}
	if _, err := NewAuthService(creds, "", time.Hour, discardLogger); !errors.Is(err, domain.ErrMissingSigningSecret) {
		t.Fatalf("expected ErrMissingSigningSecret, got %v", err)
	}
}

func TestNewStaticCredentialStore_RejectsEmptyCredential(t *testing.T) {
	_, err := NewStaticCredentialStore([]ports.FounderCredential{
		{Username: "founder_a", Password: "", Name: "Alice"},
	})
	if err == nil {
		t.Fatal("expected error for empty password, got nil")
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc := newTestAuthService(t, time.Hour)

	token, founder, err := svc.Login(context.Background(), "founder_a", "passw0rd-a")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected token, got empty")
	}
	if founder == nil || founder.Name != "Alice" {
		t.Fatalf("unexpected founder: %+v", founder)
	}

	// Token must parse with the same secret and carry the identity claims.
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["username"] != "founder_a" {
		t.Errorf("expected username claim founder_a, got %v", claims["username"])
	}
	if claims["founder"] != "Alice" {
		t.Errorf("expected founder claim Alice, got %v", claims["founder"])
	}
	if _, ok := claims["exp"]; !ok {
		t.Error("expected exp claim")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := newTestAuthService(t, time.Hour)

	if _, _, err := svc.Login(context.Background(), "founder_a", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc := newTestAuthService(t, time.Hour)

	// Unknown user and wrong password are the same error.
	if _, _, err := svc.Login(context.Background(), "ghost", "passw0rd-a"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Validate_RoundTrip(t *testing.T) {
	svc := newTestAuthService(t, time.Hour)

	token, _, err := svc.Login(context.Background(), "founder_b", "passw0rd-b")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.Username != "founder_b" {
		t.Errorf("expected username founder_b, got %q", claims.Username)
	}
	if claims.Founder != "Bob" {
		t.Errorf("expected founder Bob, got %q", claims.Founder)
	}
}

func TestAuthService_Validate_Expired(t *testing.T) {
	svc := newTestAuthService(t, time.Hour)

	// Sign an already-expired token with the right secret.
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": "founder_a",
		"founder":  "Alice",
		"exp":      time.Now().Add(-time.Minute).Unix(),
	})
	signed, err := expired.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := svc.Validate(signed); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestAuthService_Validate_WrongSignature(t *testing.T) {
	svc := newTestAuthService(t, time.Hour)

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": "founder_a",
		"founder":  "Alice",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	signed, err := forged.SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := svc.Validate(signed); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for forged token, got %v", err)
	}
}

func TestAuthService_Validate_Malformed(t *testing.T) {
	svc := newTestAuthService(t, time.Hour)

	if _, err := svc.Validate("not-a-jwt"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for garbage, got %v", err)
	}
}

func TestAuthService_Validate_MissingExpiry(t *testing.T) {
	svc := newTestAuthService(t, time.Hour)

	// Well-signed token without exp must be rejected.
	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": "founder_a",
		"founder":  "Alice",
	})
	signed, err := noExp.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := svc.Validate(signed); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for token without exp, got %v", err)
	}
}

func TestAuthService_Validate_MissingIdentityClaims(t *testing.T) {
	svc := newTestAuthService(t, time.Hour)

	anon := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := anon.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := svc.Validate(signed); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for token without identity, got %v", err)
	}
}

func TestAuthService_DefaultTTL(t *testing.T) {
	svc := newTestAuthService(t, 0)

	token, _, err := svc.Login(context.Background(), "founder_a", "passw0rd-a")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	}); err != nil {
		t.Fatalf("parse token: %v", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		t.Fatalf("exp claim: %v", err)
	}
	remaining := time.Until(exp.Time)
	if remaining < 23*time.Hour || remaining > 25*time.Hour {
		t.Errorf("expected ~24h TTL, got %v", remaining)
	}
}
