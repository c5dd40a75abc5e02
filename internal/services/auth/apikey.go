package auth

import (
	"crypto/subtle"
	"strings"
)

const APIKeyHeader = "X-Api-Key"

// CheckAPIKey gates all API traffic on a pre-shared secret. It carries no
// identity: a nil result only means the caller is a trusted client.
func CheckAPIKey(configured, provided string) error {
	if provided == "" {
		return ErrUnauthenticated
	}
	if strings.TrimSpace(configured) == "" {
		return ErrMisconfigured
	}
	if subtle.ConstantTimeCompare([]byte(provided), []byte(configured)) != 1 {
		return ErrForbidden
	}
	return nil
}
