package rpc

import (
	"context"
	"strings"

	"google.golang.org/grpc/credentials"

	"github.com/hashicorp-forge/vectara-examples/pkg/vectara"
)

// perRPCCredential attaches a bearer token or API key to every call.
type perRPCCredential struct {
	cred   vectara.Credential
	secure bool
}

var _ credentials.PerRPCCredentials = perRPCCredential{}

func (p perRPCCredential) GetRequestMetadata(ctx context.Context, _ ...string) (map[string]string, error) {
	name, value := p.cred.Header()
	return map[string]string{strings.ToLower(name): value}, nil
}

func (p perRPCCredential) RequireTransportSecurity() bool {
	return p.secure
}
