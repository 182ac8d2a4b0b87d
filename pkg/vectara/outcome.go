package vectara

import (
	"encoding/json"
	"fmt"
)

// Kind discriminates the three call outcomes.
type Kind int

const (
	KindSuccess Kind = iota + 1
	KindTransportError
	KindApplicationError
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindTransportError:
		return "transport_error"
	case KindApplicationError:
		return "application_error"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Payload is a parsed response body.
type Payload struct {
	// Raw is the body as received (REST) or as rendered to JSON (gRPC).
	Raw json.RawMessage

	// Data is the decoded body after any legacy adapter has run.
	Data map[string]any
}

// Decode unmarshals the raw body into v.
func (p Payload) Decode(v any) error {
	if len(p.Raw) == 0 {
		return json.Unmarshal([]byte("{}"), v)
	}
	return json.Unmarshal(p.Raw, v)
}

// Outcome is the result of exactly one call. Exactly one of Payload,
// Transport or Application is meaningful, selected by Kind.
type Outcome struct {
	Kind        Kind
	Endpoint    string
	Payload     Payload
	Transport   *TransportError
	Application *ApplicationError
}

// Succeeded builds a success outcome.
func Succeeded(endpoint string, p Payload) Outcome {
	return Outcome{Kind: KindSuccess, Endpoint: endpoint, Payload: p}
}

// TransportFailure builds a transport error outcome.
func TransportFailure(err *TransportError) Outcome {
	return Outcome{Kind: KindTransportError, Endpoint: err.Op, Transport: err}
}

// ApplicationFailure builds an application error outcome.
func ApplicationFailure(err *ApplicationError) Outcome {
	return Outcome{Kind: KindApplicationError, Endpoint: err.Op, Application: err}
}

// OK reports whether the call succeeded.
func (o Outcome) OK() bool { return o.Kind == KindSuccess }

// Err returns the outcome as an error, nil on success.
func (o Outcome) Err() error {
	switch o.Kind {
	case KindSuccess:
		return nil
	case KindTransportError:
		return o.Transport
	case KindApplicationError:
		return o.Application
	default:
		return fmt.Errorf("%s: invalid outcome kind %d", o.Endpoint, int(o.Kind))
	}
}

// Decode returns the success payload decoded into T, or the outcome's error.
func Decode[T any](o Outcome) (*T, error) {
	if err := o.Err(); err != nil {
		return nil, err
	}
	var v T
	if err := o.Payload.Decode(&v); err != nil {
		return nil, fmt.Errorf("%s: failed to decode response: %w", o.Endpoint, err)
	}
	return &v, nil
}
