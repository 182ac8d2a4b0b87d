package vectara

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Classify turns a response body that the transport delivered successfully
// into an Outcome. expectedItems is the number of per-item entries the
// request asked for, zero when the request is not a batch.
//
// The rules, applied in order:
//   - a body that is not a JSON object is malformed
//   - the endpoint adapter, if any, rewrites legacy shapes
//   - a required envelope that is missing is malformed
//   - a per-item array whose length differs from expectedItems fails the call
//   - any status whose code is not OK fails the call
//
// Everything else is a success. Failures are returned as ApplicationError;
// malformed bodies carry a *MalformedResponseError cause.
func Classify(ep Endpoint, expectedItems int, body []byte) Outcome {
	data, err := parseBody(body)
	if err != nil {
		return ApplicationFailure(&ApplicationError{
			Op:   ep.Name,
			Body: body,
			Err:  &MalformedResponseError{Msg: "body is not a JSON object", Err: err},
		})
	}

	if ep.Adapter != nil {
		data = ep.Adapter(data)
	}

	var failed []Status
	for _, env := range ep.Envelopes {
		found := &located{}
		if err := found.walk(data, env.segments(), env, ""); err != nil {
			return ApplicationFailure(&ApplicationError{Op: ep.Name, Body: body, Err: err})
		}

		if env.Items && expectedItems > 0 && found.items != expectedItems {
			return ApplicationFailure(&ApplicationError{
				Op:            ep.Name,
				ExpectedItems: expectedItems,
				GotItems:      found.items,
				Body:          body,
			})
		}

		for i, v := range found.values {
			s, err := decodeStatus(v)
			if err != nil {
				return ApplicationFailure(&ApplicationError{
					Op:   ep.Name,
					Body: body,
					Err:  &MalformedResponseError{Path: found.paths[i], Err: err},
				})
			}
			if !s.OK() {
				failed = append(failed, s)
			}
		}
	}

	if len(failed) > 0 {
		return ApplicationFailure(&ApplicationError{Op: ep.Name, Statuses: failed, Body: body})
	}

	return Succeeded(ep.Name, Payload{Raw: json.RawMessage(body), Data: data})
}

func parseBody(body []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return map[string]any{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var data map[string]any
	if err := dec.Decode(&data); err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("body is null")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("trailing data after JSON object")
	}
	return data, nil
}

// located collects the status values an envelope path resolves to.
type located struct {
	values []any
	paths  []string

	// items is the length of the first array on the path; only meaningful
	// when the path has one.
	items      int
	itemsFound bool
}

func (l *located) walk(node any, segs []segment, env Envelope, at string) error {
	if len(segs) == 0 {
		l.values = append(l.values, node)
		l.paths = append(l.paths, at)
		return nil
	}

	obj, ok := node.(map[string]any)
	if !ok {
		return &MalformedResponseError{Path: at, Msg: fmt.Sprintf("expected object, got %T", node)}
	}

	seg := segs[0]
	here := seg.key
	if at != "" {
		here = at + "." + seg.key
	}

	v, ok := obj[seg.key]
	if !ok || v == nil {
		if env.Optional {
			return nil
		}
		return &MalformedResponseError{Path: here, Msg: "missing"}
	}

	if !seg.array {
		return l.walk(v, segs[1:], env, here)
	}

	arr, ok := v.([]any)
	if !ok {
		return &MalformedResponseError{Path: here, Msg: fmt.Sprintf("expected array, got %T", v)}
	}
	if !l.itemsFound {
		l.items = len(arr)
		l.itemsFound = true
	}
	for i, elem := range arr {
		if err := l.walk(elem, segs[1:], env, fmt.Sprintf("%s[%d]", here, i)); err != nil {
			return err
		}
	}
	return nil
}
