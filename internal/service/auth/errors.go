package auth

import "errors"

// Common authentication errors.
var (
	// ErrInvalidToken is returned when a presented token is unknown or has
	// been revoked. Unknown and revoked tokens are deliberately
	// indistinguishable to clients.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a presented token exists but its
	// configured lifetime has elapsed.
	ErrExpiredToken = errors.New("token expired")

	// ErrInvalidCredentials is returned when an email/password pair does not
	// authenticate. The message never reveals whether the email or the
	// password was at fault.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
