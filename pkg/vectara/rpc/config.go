package rpc

import (
	"fmt"
	"net"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"
	"google.golang.org/grpc"

	"github.com/hashicorp-forge/vectara-examples/pkg/vectara"
)

// Default service addresses.
const (
	DefaultAdminAddr    = "admin.vectara.io:443"
	DefaultIndexingAddr = "indexing.vectara.io:443"
	DefaultServingAddr  = "serving.vectara.io:443"

	DefaultTimeout = 50 * time.Second
)

// Config contains configuration for the gRPC caller.
type Config struct {
	// AdminAddr, IndexingAddr and ServingAddr are dial targets. A bare host
	// gets port 443.
	AdminAddr    string
	IndexingAddr string
	ServingAddr  string

	// Timeout for a single call.
	// Default: 50 seconds
	Timeout time.Duration

	// Insecure dials without TLS. Only for local testing.
	Insecure bool

	// DialOptions are appended to the options the caller builds.
	DialOptions []grpc.DialOption

	Logger hclog.Logger
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		AdminAddr:    DefaultAdminAddr,
		IndexingAddr: DefaultIndexingAddr,
		ServingAddr:  DefaultServingAddr,
		Timeout:      DefaultTimeout,
		Logger:       hclog.NewNullLogger(),
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.AdminAddr, validation.Required),
		validation.Field(&c.IndexingAddr, validation.Required),
		validation.Field(&c.ServingAddr, validation.Required),
		validation.Field(&c.Timeout, validation.By(func(value interface{}) error {
			if d, _ := value.(time.Duration); d <= 0 {
				return fmt.Errorf("must be positive, got: %v", d)
			}
			return nil
		})),
	)
}

// Target returns the dial target for endpoints of the given host kind.
func (c *Config) Target(h vectara.Host) string {
	switch h {
	case vectara.HostIndexing:
		return target(c.IndexingAddr)
	case vectara.HostServing:
		return target(c.ServingAddr)
	default:
		return target(c.AdminAddr)
	}
}

func target(addr string) string {
	if strings.Contains(addr, "://") {
		return addr
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return net.JoinHostPort(addr, "443")
	}
	return addr
}
