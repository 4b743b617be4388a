// Copyright (c) 2025 Ada Velis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"errors"
	"net/http"
)

var ErrInvalidAdminToken = errors.New("invalid admin token")

// AdminTokenHeader carries the shared admin secret on privileged requests.
const AdminTokenHeader = "X-Admin-Token"

// ValidateAdminToken checks the provided token against the configured one in
// constant time. An empty configured token disables admin operations
// entirely rather than leaving them open.
func ValidateAdminToken(provided, configured string) error {
	if configured == "" {
		return ErrInvalidAdminToken
	}
	if !hmac.Equal([]byte(provided), []byte(configured)) {
		return ErrInvalidAdminToken
	}
	return nil
}

// CheckRequest validates the admin token header of an incoming request.
func CheckRequest(r *http.Request, configured string) error {
	return ValidateAdminToken(r.Header.Get(AdminTokenHeader), configured)
}
