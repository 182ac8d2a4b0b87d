package base

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/vectara-examples/internal/config"
	"github.com/hashicorp-forge/vectara-examples/pkg/vectara"
	"github.com/hashicorp-forge/vectara-examples/pkg/vectara/auth"
	"github.com/hashicorp-forge/vectara-examples/pkg/vectara/rest"
	"github.com/hashicorp-forge/vectara-examples/pkg/vectara/retry"
	"github.com/hashicorp-forge/vectara-examples/pkg/vectara/rpc"
)

// Session holds the resolved configuration and the clients of one command
// run.
type Session struct {
	Config *config.Config
	Log    hclog.Logger
	UI     cli.Ui
	Format string

	tokens *auth.Provider
	retry  retry.Policy

	rest *rest.Caller
	grpc *rpc.Caller
}

// NewSession resolves o into a session. Close releases it.
func (c *Command) NewSession(o *Options) (*Session, error) {
	if err := o.applyLogLevel(c.Log); err != nil {
		return nil, err
	}

	cfg, err := o.Config()
	if err != nil {
		return nil, err
	}

	return &Session{
		Config: cfg,
		Log:    c.Log,
		UI:     c.UI,
		Format: o.Format,
		tokens: auth.NewProvider(cfg.AuthConfig(c.Log)),
		retry:  cfg.RetryPolicy(c.Log.Named("retry")),
	}, nil
}

// FetchToken obtains a fresh bearer token.
func (s *Session) FetchToken(ctx context.Context) (*auth.Token, error) {
	return s.tokens.FetchToken(ctx, s.Config.Credentials())
}

// Credential returns the credential for the run's calls. When allowAPIKey is
// set and an API key is configured, the key is used and no token is fetched.
func (s *Session) Credential(ctx context.Context, allowAPIKey bool) (vectara.Credential, error) {
	if allowAPIKey && s.Config.APIKey != "" {
		return vectara.APIKey(s.Config.APIKey), nil
	}
	tok, err := s.FetchToken(ctx)
	if err != nil {
		return vectara.Credential{}, err
	}
	return vectara.Bearer(tok.AccessToken), nil
}

// REST returns the session's REST caller.
func (s *Session) REST() (*rest.Caller, error) {
	if s.rest == nil {
		c, err := rest.NewCaller(s.Config.RESTConfig(s.Log))
		if err != nil {
			return nil, err
		}
		s.rest = c
	}
	return s.rest, nil
}

// GRPC returns the session's gRPC caller.
func (s *Session) GRPC() (*rpc.Caller, error) {
	if s.grpc == nil {
		c, err := rpc.NewCaller(s.Config.GRPCConfig(s.Log))
		if err != nil {
			return nil, err
		}
		s.grpc = c
	}
	return s.grpc, nil
}

// Print renders v in the session's output format.
func (s *Session) Print(v any) error {
	out, err := Render(s.Format, v)
	if err != nil {
		return err
	}
	s.UI.Output(out)
	return nil
}

// Close releases the session's connections.
func (s *Session) Close() error {
	var result *multierror.Error
	if s.grpc != nil {
		if err := s.grpc.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("error closing gRPC caller: %w", err))
		}
	}
	return result.ErrorOrNil()
}
