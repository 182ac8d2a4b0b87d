package auth

import (
	"errors"
	"fmt"
)

// ErrAuth is matched by every error the token provider returns.
var ErrAuth = errors.New("authentication failed")

// AuthError describes a failed token exchange.
type AuthError struct {
	// URL is the token endpoint, empty when validation failed first.
	URL string

	// StatusCode is the HTTP status of the token response, zero when no
	// response was received.
	StatusCode int

	// Body is the raw token response body, if any.
	Body []byte

	Err error
}

func (e *AuthError) Error() string {
	msg := ErrAuth.Error()
	if e.URL != "" {
		msg += fmt.Sprintf(" (%s)", e.URL)
	}
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": HTTP %d", e.StatusCode)
	}
	if len(e.Body) > 0 {
		body := string(e.Body)
		if len(body) > 512 {
			body = body[:512] + "..."
		}
		msg += ": " + body
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *AuthError) Is(target error) bool { return target == ErrAuth }

func (e *AuthError) Unwrap() error { return e.Err }
