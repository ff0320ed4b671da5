// Package redact strips sensitive material from strings before they are
// logged. Error text can embed connection strings, credentials, bearer
// tokens, or email addresses; everything logged at the API boundary passes
// through here first.
package redact

import (
	"regexp"
)

// Placeholders substituted for redacted material.
const (
	Placeholder           = "[REDACTED]"
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	EmailPlaceholder      = "[REDACTED_EMAIL]"
)

var (
	// Database connection strings with embedded credentials.
	dbConnRegex = regexp.MustCompile(`(?i)(postgres|postgresql|mysql)://[^@\s]+@`)

	// password=..., password: ... fragments.
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]['"]?)[^'"&\s]{3,}`)

	// Opaque bearer tokens: 64 hex characters, the exact shape this service
	// issues.
	tokenRegex = regexp.MustCompile(`\b[0-9a-f]{64}\b`)

	// Email addresses.
	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
)

// String redacts sensitive fragments from s.
func String(s string) string {
	s = dbConnRegex.ReplaceAllString(s, "$1://"+CredentialPlaceholder+"@")
	s = passwordRegex.ReplaceAllString(s, "$1$2"+CredentialPlaceholder)
	s = tokenRegex.ReplaceAllString(s, CredentialPlaceholder)
	s = emailRegex.ReplaceAllString(s, EmailPlaceholder)
	return s
}

// Error redacts an error's message, tolerating nil.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
