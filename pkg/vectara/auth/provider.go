// Package auth obtains OAuth2 bearer tokens for the platform using the
// client-credentials grant.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// DefaultTimeout bounds a single token exchange.
const DefaultTimeout = 50 * time.Second

// Token is a bearer token obtained from the auth server.
type Token struct {
	AccessToken string
	TokenType   string
	ObtainedAt  time.Time

	// Expiry is zero when the server did not report a lifetime.
	Expiry time.Time
}

// String hides the access token.
func (t Token) String() string {
	return fmt.Sprintf("Token{Type: %s, ObtainedAt: %s, Expiry: %s}",
		t.TokenType, t.ObtainedAt.Format(time.RFC3339), t.Expiry.Format(time.RFC3339))
}

func (t Token) GoString() string { return t.String() }

// Config contains configuration for the token provider.
type Config struct {
	// Timeout for a single token exchange.
	// Default: 50 seconds
	Timeout time.Duration

	// Scopes requested with the token, none by default.
	Scopes []string

	// HTTPClient overrides the default client.
	HTTPClient *http.Client

	Logger hclog.Logger
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Timeout: DefaultTimeout,
		Logger:  hclog.NewNullLogger(),
	}
}

// Provider exchanges client credentials for a bearer token. Every call
// performs a fresh exchange; tokens are neither cached nor refreshed.
type Provider struct {
	cfg    *Config
	client *http.Client
	logger hclog.Logger
	now    func() time.Time
}

// NewProvider creates a token provider.
func NewProvider(cfg *Config) *Provider {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	return &Provider{
		cfg:    cfg,
		client: client,
		logger: logger.Named("auth"),
		now:    time.Now,
	}
}

// FetchToken exchanges creds for a bearer token. The returned error is
// always an *AuthError.
func (p *Provider) FetchToken(ctx context.Context, creds Credentials) (*Token, error) {
	if err := creds.Validate(); err != nil {
		return nil, &AuthError{Err: fmt.Errorf("invalid credentials: %w", err)}
	}

	tokenURL, err := creds.TokenURL()
	if err != nil {
		return nil, &AuthError{Err: err}
	}

	cc := &clientcredentials.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		TokenURL:     tokenURL,
		Scopes:       p.cfg.Scopes,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}

	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.client)

	p.logger.Debug("requesting token", "token_url", tokenURL, "client_id", creds.ClientID)

	start := p.now()
	tok, err := cc.Token(ctx)
	if err != nil {
		authErr := &AuthError{URL: tokenURL, Err: err}

		var re *oauth2.RetrieveError
		if errors.As(err, &re) {
			authErr.Body = re.Body
			if re.Response != nil {
				authErr.StatusCode = re.Response.StatusCode
			}
			// The body is kept on the error; drop the copy in the message.
			authErr.Err = fmt.Errorf("token request rejected")
			if re.ErrorCode != "" {
				authErr.Err = fmt.Errorf("token request rejected: %s", re.ErrorCode)
			}
		}

		p.logger.Error("error requesting token",
			"token_url", tokenURL,
			"status_code", authErr.StatusCode,
			"duration", p.now().Sub(start),
		)
		return nil, authErr
	}

	p.logger.Debug("obtained token", "token_type", tok.Type(), "expiry", tok.Expiry)

	return &Token{
		AccessToken: tok.AccessToken,
		TokenType:   tok.Type(),
		ObtainedAt:  start,
		Expiry:      tok.Expiry,
	}, nil
}
