// Package vectarapb provides protobuf descriptors for the platform's gRPC
// services and converts between JSON request bodies and wire messages.
//
// The descriptors are built at runtime from vectara.textproto, so messages
// are dynamicpb values rather than generated types. JSON is the common
// currency: requests are rendered from the same typed bodies the REST caller
// sends, and responses are rendered back to JSON so both transports share
// one classifier.
package vectarapb

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"
)

//go:embed vectara.textproto
var schema []byte

var files = sync.OnceValues(func() (*protoregistry.Files, error) {
	var fdp descriptorpb.FileDescriptorProto
	if err := prototext.Unmarshal(schema, &fdp); err != nil {
		return nil, fmt.Errorf("error parsing descriptor: %w", err)
	}

	fd, err := protodesc.NewFile(&fdp, new(protoregistry.Files))
	if err != nil {
		return nil, fmt.Errorf("error building descriptor: %w", err)
	}

	reg := new(protoregistry.Files)
	if err := reg.RegisterFile(fd); err != nil {
		return nil, fmt.Errorf("error registering descriptor: %w", err)
	}
	return reg, nil
})

// Files returns the registry holding the platform descriptors.
func Files() (*protoregistry.Files, error) {
	return files()
}

// MessageDescriptor looks up a message by its fully qualified name, e.g.
// "com.vectara.BatchQueryRequest".
func MessageDescriptor(name string) (protoreflect.MessageDescriptor, error) {
	reg, err := files()
	if err != nil {
		return nil, err
	}
	d, err := reg.FindDescriptorByName(protoreflect.FullName(name))
	if err != nil {
		return nil, fmt.Errorf("error finding message %q: %w", name, err)
	}
	md, ok := d.(protoreflect.MessageDescriptor)
	if !ok {
		return nil, fmt.Errorf("%q is not a message", name)
	}
	return md, nil
}

// MethodDescriptor looks up a method by its gRPC full method name, e.g.
// "/com.vectara.QueryService/Query".
func MethodDescriptor(fullMethod string) (protoreflect.MethodDescriptor, error) {
	service, method, ok := strings.Cut(strings.TrimPrefix(fullMethod, "/"), "/")
	if !ok || service == "" || method == "" {
		return nil, fmt.Errorf("invalid method name %q", fullMethod)
	}

	reg, err := files()
	if err != nil {
		return nil, err
	}
	d, err := reg.FindDescriptorByName(protoreflect.FullName(service))
	if err != nil {
		return nil, fmt.Errorf("error finding service %q: %w", service, err)
	}
	sd, ok := d.(protoreflect.ServiceDescriptor)
	if !ok {
		return nil, fmt.Errorf("%q is not a service", service)
	}
	md := sd.Methods().ByName(protoreflect.Name(method))
	if md == nil {
		return nil, fmt.Errorf("service %q has no method %q", service, method)
	}
	return md, nil
}

// New returns an empty message of the named type.
func New(name string) (*dynamicpb.Message, error) {
	md, err := MessageDescriptor(name)
	if err != nil {
		return nil, err
	}
	return dynamicpb.NewMessage(md), nil
}

// FromJSON builds a message of the named type from JSON. Field names may use
// either the proto (snake_case) or JSON (camelCase) spelling. Fields the
// message does not declare are dropped.
func FromJSON(name string, data []byte) (*dynamicpb.Message, error) {
	m, err := New(name)
	if err != nil {
		return nil, err
	}
	opts := protojson.UnmarshalOptions{DiscardUnknown: true}
	if err := opts.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("error converting JSON to %s: %w", name, err)
	}
	return m, nil
}

// ToJSON renders a response message as JSON with unset fields emitted, so a
// status carrying the zero code reads as "OK" and empty lists read as [].
func ToJSON(m proto.Message) ([]byte, error) {
	opts := protojson.MarshalOptions{EmitUnpopulated: true}
	b, err := opts.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("error converting %s to JSON: %w",
			m.ProtoReflect().Descriptor().FullName(), err)
	}
	return b, nil
}

// Marshal renders a message as compact JSON without unset fields.
func Marshal(m proto.Message) ([]byte, error) {
	return protojson.Marshal(m)
}
