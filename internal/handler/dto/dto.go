// Package dto provides Data Transfer Objects for API requests and
// responses, including the pre-core field validation that runs before
// any service logic.
package dto

import (
	"regexp"
	"strings"
)

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// FieldError is one failed field check.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResponse carries all failed field checks for a request.
type ValidationResponse struct {
	Errors []FieldError `json:"errors"`
}

// TokenResponse carries a freshly issued credential.
type TokenResponse struct {
	Token string `json:"token"`
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func validEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}
