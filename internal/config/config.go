// Package config loads settings for the vectara-examples CLI from an
// optional HCL file and the environment.
//
// Example configuration (HCL):
//
//	customer_id = 1234567890
//	corpus_id   = 7
//	timeout     = "50s"
//
//	auth {
//	  client_id     = "3ks9..."
//	  client_secret = "..."
//	  url           = "https://vectara-prod-1234567890.auth.us-west-2.amazoncognito.com"
//	}
//
//	rest {
//	  admin_url = "api.vectara.io"
//	}
//
//	grpc {
//	  serving_addr = "serving.vectara.io:443"
//	}
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/hcl/v2/hclsimple"

	"github.com/hashicorp-forge/vectara-examples/pkg/vectara/auth"
	"github.com/hashicorp-forge/vectara-examples/pkg/vectara/rest"
	"github.com/hashicorp-forge/vectara-examples/pkg/vectara/retry"
	"github.com/hashicorp-forge/vectara-examples/pkg/vectara/rpc"
)

// Environment variables read by ApplyEnv.
const (
	EnvCustomerID   = "VECTARA_CUSTOMER_ID"
	EnvCorpusID     = "VECTARA_CORPUS_ID"
	EnvClientID     = "VECTARA_CLIENT_ID"
	EnvClientSecret = "VECTARA_CLIENT_SECRET"
	EnvAuthURL      = "VECTARA_AUTH_URL"
	EnvAPIKey       = "VECTARA_API_KEY"
)

// Config is the CLI configuration.
type Config struct {
	// CustomerID is the tenant id sent with every call.
	CustomerID int64 `hcl:"customer_id,optional"`

	// CorpusID is the corpus the workflows operate on.
	CorpusID int64 `hcl:"corpus_id,optional"`

	// APIKey authenticates query calls instead of an OAuth2 token.
	APIKey string `hcl:"api_key,optional"`

	// Timeout bounds each call, as a Go duration string.
	// Default: "50s"
	Timeout string `hcl:"timeout,optional"`

	// MaxRetries for calls that fail with a transport error.
	// Default: 0
	MaxRetries int `hcl:"max_retries,optional"`

	Auth *Auth `hcl:"auth,block"`
	REST *REST `hcl:"rest,block"`
	GRPC *GRPC `hcl:"grpc,block"`
}

// Auth configures the OAuth2 client-credentials exchange.
type Auth struct {
	ClientID     string `hcl:"client_id,optional"`
	ClientSecret string `hcl:"client_secret,optional"`
	URL          string `hcl:"url,optional"`
}

// REST configures the REST endpoints.
type REST struct {
	AdminURL    string `hcl:"admin_url,optional"`
	IndexingURL string `hcl:"indexing_url,optional"`
	ServingURL  string `hcl:"serving_url,optional"`
	TLSVerify   *bool  `hcl:"tls_verify,optional"`
}

// GRPC configures the gRPC endpoints.
type GRPC struct {
	AdminAddr    string `hcl:"admin_addr,optional"`
	IndexingAddr string `hcl:"indexing_addr,optional"`
	ServingAddr  string `hcl:"serving_addr,optional"`
	Insecure     bool   `hcl:"insecure,optional"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Timeout == "" {
		c.Timeout = rest.DefaultTimeout.String()
	}
	if c.Auth == nil {
		c.Auth = &Auth{}
	}
	if c.REST == nil {
		c.REST = &REST{}
	}
	if c.REST.AdminURL == "" {
		c.REST.AdminURL = rest.DefaultHost
	}
	if c.REST.IndexingURL == "" {
		c.REST.IndexingURL = rest.DefaultHost
	}
	if c.REST.ServingURL == "" {
		c.REST.ServingURL = rest.DefaultHost
	}
	if c.GRPC == nil {
		c.GRPC = &GRPC{}
	}
	if c.GRPC.AdminAddr == "" {
		c.GRPC.AdminAddr = rpc.DefaultAdminAddr
	}
	if c.GRPC.IndexingAddr == "" {
		c.GRPC.IndexingAddr = rpc.DefaultIndexingAddr
	}
	if c.GRPC.ServingAddr == "" {
		c.GRPC.ServingAddr = rpc.DefaultServingAddr
	}
}

// LoadFile reads an HCL configuration file. Settings it leaves out keep
// their defaults.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", path)
	}

	var c Config
	if err := hclsimple.DecodeFile(path, nil, &c); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file: %w", err)
	}
	c.applyDefaults()
	return &c, nil
}

// ApplyEnv overrides settings with the VECTARA_* environment variables that
// are set. lookup is usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvCustomerID); ok && v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvCustomerID, err)
		}
		c.CustomerID = id
	}
	if v, ok := lookup(EnvCorpusID); ok && v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvCorpusID, err)
		}
		c.CorpusID = id
	}
	if v, ok := lookup(EnvClientID); ok && v != "" {
		c.Auth.ClientID = v
	}
	if v, ok := lookup(EnvClientSecret); ok && v != "" {
		c.Auth.ClientSecret = v
	}
	if v, ok := lookup(EnvAuthURL); ok && v != "" {
		c.Auth.URL = v
	}
	if v, ok := lookup(EnvAPIKey); ok && v != "" {
		c.APIKey = v
	}
	return nil
}

// Validate checks settings every command needs.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.CustomerID, validation.Required, validation.Min(int64(1))),
		validation.Field(&c.CorpusID, validation.Min(int64(0))),
		validation.Field(&c.Timeout, validation.Required, validation.By(positiveDuration)),
		validation.Field(&c.MaxRetries, validation.Min(0)),
	)
}

func positiveDuration(value interface{}) error {
	s, _ := value.(string)
	d, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("must be a duration such as \"50s\"")
	}
	if d <= 0 {
		return fmt.Errorf("must be positive")
	}
	return nil
}

// TimeoutDuration returns the parsed call timeout, or the default when the
// setting does not parse.
func (c *Config) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return rest.DefaultTimeout
	}
	return d
}

// Credentials returns the OAuth2 client credentials.
func (c *Config) Credentials() auth.Credentials {
	return auth.Credentials{
		ClientID:     c.Auth.ClientID,
		ClientSecret: c.Auth.ClientSecret,
		AuthURL:      c.Auth.URL,
	}
}

// HasOAuth reports whether any OAuth2 setting is present.
func (c *Config) HasOAuth() bool {
	return c.Auth.ClientID != "" || c.Auth.ClientSecret != "" || c.Auth.URL != ""
}

// AuthConfig builds the token provider configuration.
func (c *Config) AuthConfig(logger hclog.Logger) *auth.Config {
	cfg := auth.DefaultConfig()
	cfg.Timeout = c.TimeoutDuration()
	cfg.Logger = logger
	return cfg
}

// RESTConfig builds the REST caller configuration.
func (c *Config) RESTConfig(logger hclog.Logger) *rest.Config {
	cfg := rest.DefaultConfig()
	cfg.AdminURL = c.REST.AdminURL
	cfg.IndexingURL = c.REST.IndexingURL
	cfg.ServingURL = c.REST.ServingURL
	if c.REST.TLSVerify != nil {
		cfg.TLSVerify = c.REST.TLSVerify
	}
	cfg.Timeout = c.TimeoutDuration()
	cfg.Logger = logger
	return cfg
}

// GRPCConfig builds the gRPC caller configuration.
func (c *Config) GRPCConfig(logger hclog.Logger) *rpc.Config {
	cfg := rpc.DefaultConfig()
	cfg.AdminAddr = c.GRPC.AdminAddr
	cfg.IndexingAddr = c.GRPC.IndexingAddr
	cfg.ServingAddr = c.GRPC.ServingAddr
	cfg.Insecure = c.GRPC.Insecure
	cfg.Timeout = c.TimeoutDuration()
	cfg.Logger = logger
	return cfg
}

// RetryPolicy builds the retry policy for calls.
func (c *Config) RetryPolicy(logger hclog.Logger) retry.Policy {
	n := c.MaxRetries
	if n < 0 {
		n = 0
	}
	return retry.Policy{MaxRetries: uint64(n), Logger: logger}
}
