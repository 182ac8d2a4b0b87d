package rest

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"

	"github.com/hashicorp-forge/vectara-examples/pkg/vectara"
)

const (
	// DefaultHost serves every REST endpoint of the platform.
	DefaultHost = "api.vectara.io"

	// DefaultTimeout bounds a single call.
	DefaultTimeout = 50 * time.Second
)

// Config contains configuration for the REST caller.
//
// Endpoint addresses may be given as a bare host ("api.vectara.io"), in
// which case https is assumed, or as a full base URL.
type Config struct {
	// AdminURL serves corpus, API key and user management.
	AdminURL string `json:"adminUrl"`

	// IndexingURL serves index, upload and delete-doc.
	IndexingURL string `json:"indexingUrl"`

	// ServingURL serves query.
	ServingURL string `json:"servingUrl"`

	// TLSVerify controls TLS certificate verification
	// Set to false only for development/testing with self-signed certs
	TLSVerify *bool `json:"tlsVerify,omitempty"`

	// Timeout for a single call.
	// Default: 50 seconds
	Timeout time.Duration `json:"timeout,omitempty"`

	// HTTPClient overrides the client built by NewHTTPClient.
	HTTPClient *http.Client `json:"-"`

	Logger hclog.Logger `json:"-"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	tlsVerify := true
	return &Config{
		AdminURL:    DefaultHost,
		IndexingURL: DefaultHost,
		ServingURL:  DefaultHost,
		TLSVerify:   &tlsVerify,
		Timeout:     DefaultTimeout,
		Logger:      hclog.NewNullLogger(),
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.AdminURL, validation.Required, validation.By(httpBase)),
		validation.Field(&c.IndexingURL, validation.Required, validation.By(httpBase)),
		validation.Field(&c.ServingURL, validation.Required, validation.By(httpBase)),
		validation.Field(&c.Timeout, validation.By(positive)),
	)
}

func httpBase(value interface{}) error {
	s, _ := value.(string)
	u, err := url.Parse(baseURL(s))
	if err != nil {
		return errors.New("must be a valid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("must use http or https scheme, got: %s", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("must include a host")
	}
	return nil
}

func positive(value interface{}) error {
	if d, _ := value.(time.Duration); d <= 0 {
		return fmt.Errorf("must be positive, got: %v", d)
	}
	return nil
}

// BaseURL returns the base URL serving endpoints of the given host kind.
func (c *Config) BaseURL(h vectara.Host) string {
	switch h {
	case vectara.HostIndexing:
		return baseURL(c.IndexingURL)
	case vectara.HostServing:
		return baseURL(c.ServingURL)
	default:
		return baseURL(c.AdminURL)
	}
}

func baseURL(addr string) string {
	addr = strings.TrimRight(addr, "/")
	if !strings.Contains(addr, "://") {
		addr = "https://" + addr
	}
	return addr
}

// NewHTTPClient creates a configured HTTP client for the caller
func (c *Config) NewHTTPClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	// Configure TLS verification
	if c.TLSVerify != nil && !*c.TLSVerify {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	return &http.Client{
		Timeout:   c.Timeout,
		Transport: transport,
	}
}
