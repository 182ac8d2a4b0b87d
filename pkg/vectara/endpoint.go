package vectara

import (
	"strings"

	"github.com/iancoleman/strcase"
)

// Host selects which platform front end serves an endpoint.
type Host int

const (
	HostAdmin Host = iota
	HostIndexing
	HostServing
)

func (h Host) String() string {
	switch h {
	case HostAdmin:
		return "admin"
	case HostIndexing:
		return "indexing"
	case HostServing:
		return "serving"
	default:
		return "unknown"
	}
}

// Envelope locates status objects inside a response body.
//
// Path is a dot separated list of object keys. A key suffixed with "[]" names
// an array whose elements are visited in turn, so "response[].status" visits
// the status of every element of the response array and "status[]" visits
// every element of a top level status array.
type Envelope struct {
	Path string

	// Optional envelopes may be absent or null without failing the call.
	Optional bool

	// Items marks the first array on Path as the per-item result list whose
	// length must match the number of items in the request.
	Items bool
}

// Adapter rewrites a response body before envelopes are located. Adapters
// convert legacy shapes, which report success by omission, into the common
// status envelope.
type Adapter func(body map[string]any) map[string]any

// RPC binds an endpoint to a gRPC method.
type RPC struct {
	// Method is the full method name, e.g. "/com.vectara.QueryService/Query".
	Method string

	// Request and Response are fully qualified protobuf message names.
	Request  string
	Response string
}

// Endpoint describes one platform operation. The call wrappers have a single
// code path driven entirely by this descriptor.
type Endpoint struct {
	// Name is the operation name used in logs and errors, e.g. "CreateApiKey".
	Name string

	// Path is the REST path, e.g. "/v1/create-api-key".
	Path string

	Host      Host
	Envelopes []Envelope
	Adapter   Adapter

	// Multipart endpoints take a multipart form body instead of JSON.
	Multipart bool

	// RPC is set for operations also exposed over gRPC.
	RPC *RPC
}

// ItemCounter is implemented by batch request bodies. The count sets how many
// per-item entries the response must contain.
type ItemCounter interface {
	ItemCount() int
}

// ExpectedItems returns the per-item count for body, zero when unknown.
func ExpectedItems(body any) int {
	if ic, ok := body.(ItemCounter); ok {
		return ic.ItemCount()
	}
	return 0
}

// newEndpoint builds a REST endpoint whose path is derived from its name.
func newEndpoint(name string, host Host, envelopes ...Envelope) Endpoint {
	return Endpoint{
		Name:      name,
		Path:      "/v1/" + strcase.ToKebab(name),
		Host:      host,
		Envelopes: envelopes,
	}
}

func (e Endpoint) withAdapter(a Adapter) Endpoint {
	e.Adapter = a
	return e
}

func (e Endpoint) withRPC(service, method, request, response string) Endpoint {
	e.RPC = &RPC{
		Method:   "/" + protoPackage + "." + service + "/" + method,
		Request:  protoPackage + "." + request,
		Response: protoPackage + "." + response,
	}
	return e
}

// segments splits an envelope path into keys and array markers.
func (env Envelope) segments() []segment {
	parts := strings.Split(env.Path, ".")
	segs := make([]segment, 0, len(parts))
	for _, p := range parts {
		if strings.HasSuffix(p, "[]") {
			segs = append(segs, segment{key: strings.TrimSuffix(p, "[]"), array: true})
		} else {
			segs = append(segs, segment{key: p})
		}
	}
	return segs
}

type segment struct {
	key   string
	array bool
}
