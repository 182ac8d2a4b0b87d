package vectara

import (
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// OKCode is the status code the platform uses for success.
const OKCode = "OK"

// Status is the platform's status envelope.
type Status struct {
	Code         string  `json:"code" mapstructure:"code" yaml:"code"`
	StatusDetail string  `json:"statusDetail,omitempty" mapstructure:"statusDetail" yaml:"statusDetail,omitempty"`
	Cause        *Status `json:"cause,omitempty" mapstructure:"cause" yaml:"cause,omitempty"`
}

// OK reports whether the status carries the success code.
func (s Status) OK() bool { return s.Code == OKCode }

func (s Status) String() string {
	out := s.Code
	if s.StatusDetail != "" {
		out += ": " + s.StatusDetail
	}
	if s.Cause != nil {
		out += fmt.Sprintf(" (cause: %s)", s.Cause)
	}
	return out
}

// decodeStatus converts a located JSON object into a Status.
func decodeStatus(v any) (Status, error) {
	var s Status
	m, ok := v.(map[string]any)
	if !ok {
		return s, fmt.Errorf("status is %T, not an object", v)
	}
	if _, ok := m["code"]; !ok {
		return s, fmt.Errorf("status has no code")
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &s,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return s, err
	}
	if err := dec.Decode(m); err != nil {
		return s, err
	}
	// The numeric form of the OK enum value is 0.
	switch code := m["code"].(type) {
	case json.Number:
		if n, err := code.Int64(); err == nil && n == 0 {
			s.Code = OKCode
		}
	case float64:
		if code == 0 {
			s.Code = OKCode
		}
	}
	return s, nil
}
