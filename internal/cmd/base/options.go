package base

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/hashicorp-forge/vectara-examples/internal/config"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Options are the flags every command accepts. Settings are resolved in
// order: config file, environment, flags.
type Options struct {
	ConfigPath string
	CustomerID int64
	CorpusID   int64

	ClientID     string
	ClientSecret string
	AuthURL      string
	APIKey       string

	AdminEndpoint    string
	IndexingEndpoint string
	ServingEndpoint  string
	Insecure         bool

	Timeout    time.Duration
	MaxRetries int

	Format   string
	LogLevel string

	// LookupEnv reads the environment, os.LookupEnv when nil.
	LookupEnv func(string) (string, bool)
}

// AddFlags registers the shared flags on f.
func (o *Options) AddFlags(f *FlagSet) {
	f.StringVar(&o.ConfigPath, "config", "",
		"Path to an HCL config file")
	f.Int64Var(&o.CustomerID, "customer-id", 0,
		fmt.Sprintf("[%s] Unique customer ID in the platform", config.EnvCustomerID))
	f.Int64Var(&o.CorpusID, "corpus-id", 0,
		fmt.Sprintf("[%s] Corpus ID the command operates on", config.EnvCorpusID))
	f.StringVar(&o.ClientID, "app-client-id", "",
		fmt.Sprintf("[%s] OAuth2 app client ID; the client needs enough rights for the command", config.EnvClientID))
	f.StringVar(&o.ClientSecret, "app-client-secret", "",
		fmt.Sprintf("[%s] OAuth2 app client secret", config.EnvClientSecret))
	f.StringVar(&o.AuthURL, "auth-url", "",
		fmt.Sprintf("[%s] Auth domain or token URL for this customer", config.EnvAuthURL))
	f.StringVar(&o.APIKey, "api-key", "",
		fmt.Sprintf("[%s] API key used for queries instead of an OAuth2 token", config.EnvAPIKey))
	f.StringVar(&o.AdminEndpoint, "admin-endpoint", "",
		"Admin endpoint such as api.vectara.io (REST) or admin.vectara.io:443 (gRPC)")
	f.StringVar(&o.IndexingEndpoint, "indexing-endpoint", "",
		"Indexing endpoint such as api.vectara.io (REST) or indexing.vectara.io:443 (gRPC)")
	f.StringVar(&o.ServingEndpoint, "serving-endpoint", "",
		"Serving endpoint such as api.vectara.io (REST) or serving.vectara.io:443 (gRPC)")
	f.BoolVar(&o.Insecure, "insecure", false,
		"Dial gRPC without TLS and skip REST certificate checks; for local testing only")
	f.DurationVar(&o.Timeout, "timeout", 0,
		"Timeout for each call (default 50s)")
	f.IntVar(&o.MaxRetries, "max-retries", 0,
		"Retries for calls that fail with a transport error")
	f.StringVar(&o.Format, "format", FormatJSON,
		"Output format for results: json or yaml")
	f.StringVar(&o.LogLevel, "log-level", "",
		"Log level: trace, debug, info, warn or error")
}

// Config resolves the configuration and validates it.
func (o *Options) Config() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.ConfigPath != "" {
		cfg, err = config.LoadFile(o.ConfigPath)
		if err != nil {
			return nil, err
		}
	} else {
		cfg = config.DefaultConfig()
	}

	lookup := o.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, err
	}

	if o.CustomerID != 0 {
		cfg.CustomerID = o.CustomerID
	}
	if o.CorpusID != 0 {
		cfg.CorpusID = o.CorpusID
	}
	if o.ClientID != "" {
		cfg.Auth.ClientID = o.ClientID
	}
	if o.ClientSecret != "" {
		cfg.Auth.ClientSecret = o.ClientSecret
	}
	if o.AuthURL != "" {
		cfg.Auth.URL = o.AuthURL
	}
	if o.APIKey != "" {
		cfg.APIKey = o.APIKey
	}
	if o.AdminEndpoint != "" {
		cfg.REST.AdminURL = o.AdminEndpoint
		cfg.GRPC.AdminAddr = o.AdminEndpoint
	}
	if o.IndexingEndpoint != "" {
		cfg.REST.IndexingURL = o.IndexingEndpoint
		cfg.GRPC.IndexingAddr = o.IndexingEndpoint
	}
	if o.ServingEndpoint != "" {
		cfg.REST.ServingURL = o.ServingEndpoint
		cfg.GRPC.ServingAddr = o.ServingEndpoint
	}
	if o.Insecure {
		verify := false
		cfg.REST.TLSVerify = &verify
		cfg.GRPC.Insecure = true
	}
	if o.Timeout != 0 {
		cfg.Timeout = o.Timeout.String()
	}
	if o.MaxRetries != 0 {
		cfg.MaxRetries = o.MaxRetries
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if o.Format != FormatJSON && o.Format != FormatYAML {
		return nil, fmt.Errorf("invalid format %q: must be json or yaml", o.Format)
	}
	return cfg, nil
}

// applyLogLevel sets the level on log when one was requested.
func (o *Options) applyLogLevel(log hclog.Logger) error {
	if o.LogLevel == "" {
		return nil
	}
	level := hclog.LevelFromString(o.LogLevel)
	if level == hclog.NoLevel {
		return fmt.Errorf("invalid log level %q", o.LogLevel)
	}
	log.SetLevel(level)
	return nil
}
