// Package rpc calls the platform's gRPC services and classifies every
// response into a vectara.Outcome using the same envelope rules as the REST
// caller.
package rpc

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/hashicorp-forge/vectara-examples/pkg/vectara"
	"github.com/hashicorp-forge/vectara-examples/pkg/vectara/vectarapb"
)

// Caller performs gRPC calls. Connections are created on first use, one per
// service address, and shared by concurrent calls.
type Caller struct {
	cfg    *Config
	logger hclog.Logger

	mu    sync.Mutex
	conns map[string]*grpc.ClientConn
}

// NewCaller creates a gRPC caller. Close releases its connections.
func NewCaller(cfg *Config) (*Caller, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid gRPC config: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &Caller{
		cfg:    cfg,
		logger: logger.Named("grpc"),
		conns:  make(map[string]*grpc.ClientConn),
	}, nil
}

// CallOption adjusts a single call.
type CallOption func(*callOptions)

type callOptions struct {
	corpusID int64
}

// WithCorpusID sends the corpus-id-bin metadata. The indexing service
// requires it.
func WithCorpusID(id int64) CallOption {
	return func(o *callOptions) { o.corpusID = id }
}

// Call sends body to the gRPC method bound to ep on behalf of tenantID and
// classifies the response. It never returns an error; failures are reported
// in the Outcome.
func (c *Caller) Call(
	ctx context.Context,
	tenantID int64,
	cred vectara.Credential,
	ep vectara.Endpoint,
	body any,
	opts ...CallOption,
) vectara.Outcome {
	var o callOptions
	for _, opt := range opts {
		opt(&o)
	}

	if ep.RPC == nil {
		return vectara.TransportFailure(&vectara.TransportError{
			Op:     ep.Name,
			Reason: "endpoint has no gRPC binding",
		})
	}

	logger := c.logger.With("endpoint", ep.Name, "method", ep.RPC.Method, "request_id", uuid.NewString())
	start := time.Now()

	req, reply, err := newMessages(ep.RPC, body)
	if err != nil {
		return vectara.TransportFailure(&vectara.TransportError{
			Op:     ep.Name,
			Reason: "failed to build request",
			Err:    err,
		})
	}

	conn, err := c.conn(ep.Host)
	if err != nil {
		return vectara.TransportFailure(&vectara.TransportError{
			Op:     ep.Name,
			Reason: "failed to create connection",
			Err:    err,
		})
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	ctx = metadata.AppendToOutgoingContext(ctx,
		vectara.MetadataCustomerID, string(vectara.PackID(tenantID)))
	if o.corpusID != 0 {
		ctx = metadata.AppendToOutgoingContext(ctx,
			vectara.MetadataCorpusID, string(vectara.PackID(o.corpusID)))
	}

	var callOpts []grpc.CallOption
	if !cred.IsZero() {
		callOpts = append(callOpts, grpc.PerRPCCredentials(perRPCCredential{
			cred:   cred,
			secure: !c.cfg.Insecure,
		}))
	}

	logger.Debug("sending request", "target", conn.Target(), "auth", cred.Scheme())

	if err := conn.Invoke(ctx, ep.RPC.Method, req, reply, callOpts...); err != nil {
		st := status.Convert(err)
		logger.Error("rpc failed", "code", st.Code(), "duration", time.Since(start))
		return vectara.TransportFailure(&vectara.TransportError{
			Op:      ep.Name,
			RPCCode: st.Code(),
			Reason:  st.Message(),
			Err:     err,
		})
	}

	respBody, err := vectarapb.ToJSON(reply)
	if err != nil {
		return vectara.ApplicationFailure(&vectara.ApplicationError{
			Op:  ep.Name,
			Err: &vectara.MalformedResponseError{Msg: "response cannot be rendered", Err: err},
		})
	}

	out := vectara.Classify(ep, vectara.ExpectedItems(body), respBody)
	if out.OK() {
		logger.Debug("request succeeded", "duration", time.Since(start))
	} else {
		logger.Error("platform reported failure", "error", out.Err(), "duration", time.Since(start))
	}
	return out
}

func newMessages(binding *vectara.RPC, body any) (req, reply *dynamicpb.Message, err error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	reqMsg, err := vectarapb.FromJSON(binding.Request, data)
	if err != nil {
		return nil, nil, err
	}
	replyMsg, err := vectarapb.New(binding.Response)
	if err != nil {
		return nil, nil, err
	}
	return reqMsg, replyMsg, nil
}

func (c *Caller) conn(h vectara.Host) (*grpc.ClientConn, error) {
	target := c.cfg.Target(h)

	c.mu.Lock()
	defer c.mu.Unlock()

	if conn, ok := c.conns[target]; ok {
		return conn, nil
	}

	var creds credentials.TransportCredentials
	if c.cfg.Insecure {
		creds = insecure.NewCredentials()
	} else {
		creds = credentials.NewTLS(&tls.Config{MinVersion: tls.VersionTLS12})
	}

	dialOpts := append([]grpc.DialOption{grpc.WithTransportCredentials(creds)}, c.cfg.DialOptions...)
	conn, err := grpc.NewClient(target, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("error creating client for %s: %w", target, err)
	}

	c.logger.Debug("created connection", "target", target, "host", h)
	c.conns[target] = conn
	return conn, nil
}

// Close closes every connection the caller opened.
func (c *Caller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var result *multierror.Error
	for target, conn := range c.conns {
		if err := conn.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("error closing %s: %w", target, err))
		}
		delete(c.conns, target)
	}
	return result.ErrorOrNil()
}
