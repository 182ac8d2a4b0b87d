package vectara

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"google.golang.org/grpc/codes"
)

// Sentinel errors for the call outcome taxonomy. Every typed error below
// matches exactly one of these with errors.Is.
var (
	// ErrTransport is returned when the request could not be delivered or the
	// transport reported a failure (connection error, non-200 HTTP status,
	// gRPC error, timeout).
	ErrTransport = errors.New("transport failure")

	// ErrApplication is returned when a well-formed response carries a
	// status envelope with a non-OK code.
	ErrApplication = errors.New("platform reported failure")

	// ErrMalformedResponse is returned when the response body is missing
	// the structure the endpoint promises.
	ErrMalformedResponse = errors.New("malformed response")
)

// TransportError describes a failure below the platform's status envelope.
type TransportError struct {
	// Op is the endpoint name.
	Op string

	// StatusCode is the HTTP status, zero when no response was received.
	StatusCode int

	// RPCCode is the gRPC status code, codes.OK for REST calls.
	RPCCode codes.Code

	// Reason is a short human readable cause.
	Reason string

	// Body is the raw response body, if any.
	Body []byte

	// Err is the underlying error, if any.
	Err error
}

func (e *TransportError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(": ")
	b.WriteString(ErrTransport.Error())
	switch {
	case e.StatusCode != 0:
		fmt.Fprintf(&b, " (HTTP %d)", e.StatusCode)
	case e.RPCCode != codes.OK:
		fmt.Fprintf(&b, " (rpc %s)", e.RPCCode)
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	if len(e.Body) > 0 {
		b.WriteString(": ")
		b.WriteString(truncate(string(e.Body), 512))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

func (e *TransportError) Unwrap() error { return e.Err }

// ApplicationError describes a response that was delivered but signals a
// platform-level failure.
type ApplicationError struct {
	// Op is the endpoint name.
	Op string

	// Statuses holds every non-OK status found in the response.
	Statuses []Status

	// ExpectedItems and GotItems are set when a batch response carried a
	// different number of per-item entries than the request asked for.
	ExpectedItems int
	GotItems      int

	// Body is the raw response body.
	Body []byte

	// Err is set for structural failures, usually *MalformedResponseError.
	Err error
}

func (e *ApplicationError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(": ")
	b.WriteString(ErrApplication.Error())
	if e.CountMismatch() {
		fmt.Fprintf(&b, ": expected %d item(s), got %d", e.ExpectedItems, e.GotItems)
	}
	if failed := e.Failures(); failed != nil {
		b.WriteString(": ")
		b.WriteString(strings.TrimSpace(failed.Error()))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ApplicationError) Is(target error) bool { return target == ErrApplication }

func (e *ApplicationError) Unwrap() error { return e.Err }

// CountMismatch reports whether the error was caused by a per-item entry
// count that differs from the request.
func (e *ApplicationError) CountMismatch() bool {
	return e.ExpectedItems > 0 && e.ExpectedItems != e.GotItems
}

// Failures returns the non-OK statuses as a multierror, or nil when there are
// none.
func (e *ApplicationError) Failures() *multierror.Error {
	var result *multierror.Error
	for _, s := range e.Statuses {
		result = multierror.Append(result, fmt.Errorf("status %s", s))
	}
	if result != nil {
		result.ErrorFormat = func(errs []error) string {
			msgs := make([]string, len(errs))
			for i, err := range errs {
				msgs[i] = err.Error()
			}
			return strings.Join(msgs, "; ")
		}
	}
	return result
}

// MalformedResponseError reports a response body that does not have the shape
// the endpoint's envelope rules require.
type MalformedResponseError struct {
	// Path is the envelope location that could not be resolved.
	Path string

	// Msg describes what was wrong.
	Msg string

	// Err is the underlying decode error, if any.
	Err error
}

func (e *MalformedResponseError) Error() string {
	msg := ErrMalformedResponse.Error()
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedResponseError) Is(target error) bool { return target == ErrMalformedResponse }

func (e *MalformedResponseError) Unwrap() error { return e.Err }

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
