// Package commandtest runs fake platform servers for command tests.
package commandtest

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/hashicorp-forge/vectara-examples/internal/cmd/base"
	"github.com/hashicorp-forge/vectara-examples/pkg/vectara/vectarapb"
)

const (
	CustomerID   int64 = 1234567
	ClientID           = "test-client"
	ClientSecret       = "test-secret"
	Token              = "test-token"
)

// Reply is the canned answer to one path or method.
type Reply struct {
	Status int
	Body   string
}

// OK is a 200 reply with body.
func OK(body string) Reply { return Reply{Status: http.StatusOK, Body: body} }

// Call is one request received by a fake server.
type Call struct {
	Path     string
	Query    url.Values
	Header   http.Header
	Metadata metadata.MD
	Body     []byte
}

type recorder struct {
	mu    sync.Mutex
	calls []Call
}

func (r *recorder) record(c Call) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, c)
}

// Calls returns the recorded calls in order, token requests excluded.
func (r *recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Paths returns the path of every recorded call.
func (r *recorder) Paths() []string {
	var paths []string
	for _, c := range r.Calls() {
		paths = append(paths, c.Path)
	}
	return paths
}

// Server is a fake REST platform with an OAuth2 token endpoint. Paths
// without a reply answer 404.
type Server struct {
	*httptest.Server
	recorder

	tokens atomic.Int32
}

// TokenRequests returns how many tokens were issued.
func (s *Server) TokenRequests() int { return int(s.tokens.Load()) }

// NewServer starts a fake REST platform answering with replies, keyed by
// path.
func NewServer(t *testing.T, replies map[string]Reply) *Server {
	t.Helper()

	s := &Server{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/oauth2/token" {
			id, secret, ok := r.BasicAuth()
			if !ok || id != ClientID || secret != ClientSecret {
				http.Error(w, `{"error":"invalid_client"}`, http.StatusUnauthorized)
				return
			}
			s.tokens.Add(1)
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintf(w, `{"access_token":%q,"token_type":"Bearer","expires_in":3600}`, Token)
			return
		}

		body, _ := io.ReadAll(r.Body)
		s.record(Call{Path: r.URL.Path, Query: r.URL.Query(), Header: r.Header.Clone(), Body: body})

		reply, ok := replies[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(reply.Status)
		_, _ = io.WriteString(w, reply.Body)
	}))
	t.Cleanup(s.Close)
	return s
}

// Args returns flags pointing every endpoint and the auth server at s,
// followed by extra.
func (s *Server) Args(extra ...string) []string {
	args := []string{
		"-customer-id=" + strconv.FormatInt(CustomerID, 10),
		"-app-client-id=" + ClientID,
		"-app-client-secret=" + ClientSecret,
		"-auth-url=" + s.URL,
		"-admin-endpoint=" + s.URL,
		"-indexing-endpoint=" + s.URL,
		"-serving-endpoint=" + s.URL,
		"-timeout=5s",
	}
	return append(args, extra...)
}

// GRPCServer is a fake gRPC platform listening on loopback.
type GRPCServer struct {
	recorder

	Addr string
}

// NewGRPCServer starts a fake gRPC platform answering with replies, keyed by
// full method name. Reply bodies are JSON renderings of the response
// message; methods without a reply answer Unimplemented, and a reply with a
// non-200 status answers Unavailable.
func NewGRPCServer(t *testing.T, replies map[string]Reply) *GRPCServer {
	t.Helper()

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("error listening: %v", err)
	}

	s := &GRPCServer{Addr: lis.Addr().String()}
	srv := grpc.NewServer(grpc.UnknownServiceHandler(func(_ any, stream grpc.ServerStream) error {
		method, _ := grpc.MethodFromServerStream(stream)
		md, err := vectarapb.MethodDescriptor(method)
		if err != nil {
			return status.Error(codes.Unimplemented, err.Error())
		}
		req := dynamicpb.NewMessage(md.Input())
		if err := stream.RecvMsg(req); err != nil {
			return err
		}
		body, err := vectarapb.Marshal(req)
		if err != nil {
			return status.Error(codes.Internal, err.Error())
		}
		incoming, _ := metadata.FromIncomingContext(stream.Context())
		s.record(Call{Path: method, Metadata: incoming, Body: body})

		reply, ok := replies[method]
		if !ok {
			return status.Error(codes.Unimplemented, method)
		}
		if reply.Status != http.StatusOK {
			return status.Error(codes.Unavailable, reply.Body)
		}
		resp, err := vectarapb.FromJSON(string(md.Output().FullName()), []byte(reply.Body))
		if err != nil {
			return status.Error(codes.Internal, err.Error())
		}
		return stream.SendMsg(resp)
	}))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)
	return s
}

// Args returns flags pointing every gRPC endpoint at s and the auth server
// at auth, followed by extra.
func (s *GRPCServer) Args(auth *Server, extra ...string) []string {
	args := []string{
		"-customer-id=" + strconv.FormatInt(CustomerID, 10),
		"-app-client-id=" + ClientID,
		"-app-client-secret=" + ClientSecret,
		"-auth-url=" + auth.URL,
		"-admin-endpoint=" + s.Addr,
		"-indexing-endpoint=" + s.Addr,
		"-serving-endpoint=" + s.Addr,
		"-insecure",
		"-timeout=5s",
	}
	return append(args, extra...)
}

// NewCommand returns a base command writing to a mock UI.
func NewCommand() (*base.Command, *cli.MockUi) {
	ui := cli.NewMockUi()
	return base.NewCommand(hclog.NewNullLogger(), ui), ui
}

// NoEnv is a LookupEnv that finds nothing.
func NoEnv(string) (string, bool) { return "", false }

// Decode unmarshals a recorded JSON body.
func Decode(t *testing.T, body []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("error decoding body %s: %v", body, err)
	}
}
