package domain

import "errors"

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidToken = errors.New("invalid or expired token")
var ErrMissingSigningSecret = errors.New("token signing secret is not configured")

// Founder is one of the two statically configured principals.
type Founder struct {
	Username string `json:"username"`
	Name     string `json:"founder"`
}

// Claims is the decoded content of a validated session token.
type Claims struct {
	Username string
	Founder  string
}
