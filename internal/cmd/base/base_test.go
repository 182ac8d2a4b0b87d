package base

import (
	"context"
	"flag"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/vectara-examples/internal/config"
	"github.com/hashicorp-forge/vectara-examples/pkg/vectara"
)

func parseOptions(t *testing.T, env map[string]string, args ...string) (*Options, *FlagSet) {
	t.Helper()

	o := &Options{LookupEnv: func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}}
	f := NewFlagSet(flag.NewFlagSet("test", flag.ContinueOnError))
	o.AddFlags(f)
	require.NoError(t, f.Parse(args))
	return o, f
}

func TestOptions_Config(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
customer_id = 1
corpus_id   = 2

auth {
  client_id = "file-client"
  url       = "https://auth.example.com"
}
`), 0o600))

	tests := []struct {
		name   string
		env    map[string]string
		args   []string
		verify func(t *testing.T, cfg *config.Config)
	}{
		{
			name: "file only",
			args: []string{"-config=" + path},
			verify: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, int64(1), cfg.CustomerID)
				assert.Equal(t, int64(2), cfg.CorpusID)
				assert.Equal(t, "file-client", cfg.Auth.ClientID)
			},
		},
		{
			name: "environment overrides file",
			env:  map[string]string{config.EnvCustomerID: "10", config.EnvClientID: "env-client"},
			args: []string{"-config=" + path},
			verify: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, int64(10), cfg.CustomerID)
				assert.Equal(t, "env-client", cfg.Auth.ClientID)
				assert.Equal(t, int64(2), cfg.CorpusID)
			},
		},
		{
			name: "flags override environment",
			env:  map[string]string{config.EnvCustomerID: "10", config.EnvAPIKey: "env-key"},
			args: []string{"-customer-id=20", "-api-key=flag-key", "-timeout=3s", "-max-retries=2"},
			verify: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, int64(20), cfg.CustomerID)
				assert.Equal(t, "flag-key", cfg.APIKey)
				assert.Equal(t, 3*time.Second, cfg.TimeoutDuration())
				assert.Equal(t, 2, cfg.MaxRetries)
			},
		},
		{
			name: "endpoint flags set both transports",
			args: []string{"-customer-id=1", "-serving-endpoint=localhost:8443", "-insecure"},
			verify: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "localhost:8443", cfg.REST.ServingURL)
				assert.Equal(t, "localhost:8443", cfg.GRPC.ServingAddr)
				assert.True(t, cfg.GRPC.Insecure)
				require.NotNil(t, cfg.REST.TLSVerify)
				assert.False(t, *cfg.REST.TLSVerify)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, _ := parseOptions(t, tt.env, tt.args...)
			cfg, err := o.Config()
			require.NoError(t, err)
			tt.verify(t, cfg)
		})
	}
}

func TestOptions_ConfigErrors(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		args      []string
		wantError string
	}{
		{name: "no customer", wantError: "invalid configuration"},
		{name: "bad env", env: map[string]string{config.EnvCustomerID: "abc"}, wantError: config.EnvCustomerID},
		{name: "missing file", args: []string{"-config=/does/not/exist.hcl"}, wantError: "exist.hcl"},
		{name: "bad format", args: []string{"-customer-id=1", "-format=toml"}, wantError: `invalid format "toml"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, _ := parseOptions(t, tt.env, tt.args...)
			_, err := o.Config()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantError)
		})
	}
}

func TestOptions_LogLevel(t *testing.T) {
	log := hclog.New(&hclog.LoggerOptions{Level: hclog.Warn})

	o := &Options{LogLevel: "debug"}
	require.NoError(t, o.applyLogLevel(log))
	assert.True(t, log.IsDebug())

	o.LogLevel = "loud"
	assert.Error(t, o.applyLogLevel(log))
}

func TestFlagSet_Help(t *testing.T) {
	_, f := parseOptions(t, nil)
	help := f.Help()

	assert.Contains(t, help, "Options:")
	assert.Contains(t, help, "-customer-id=0")
	assert.Contains(t, help, "["+config.EnvCustomerID+"]")
	assert.Contains(t, help, "-format=json")
	assert.Less(t, strings.Index(help, "-api-key"), strings.Index(help, "-timeout"))
}

func TestRender(t *testing.T) {
	v := struct {
		Name string `json:"name" yaml:"name"`
		Size int    `json:"size" yaml:"size"`
	}{"docs", 3}

	out, err := Render(FormatJSON, v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"docs","size":3}`, out)

	out, err = Render(FormatYAML, v)
	require.NoError(t, err)
	assert.Equal(t, "name: docs\nsize: 3\n", out)

	_, err = Render(FormatJSON, func() {})
	assert.Error(t, err)
}

// newSession opens a session against srv with an API key configured.
func newSession(t *testing.T, srv *httptest.Server, args ...string) (*Session, *cli.MockUi) {
	t.Helper()

	ui := cli.NewMockUi()
	c := NewCommand(hclog.NewNullLogger(), ui)
	o, _ := parseOptions(t, nil, append([]string{
		"-customer-id=1",
		"-api-key=zqt_test",
		"-admin-endpoint=" + srv.URL,
		"-indexing-endpoint=" + srv.URL,
		"-serving-endpoint=" + srv.URL,
	}, args...)...)

	s, err := c.NewSession(o)
	require.NoError(t, err)
	s.retry.InitialInterval = time.Millisecond
	t.Cleanup(func() { assert.NoError(t, s.Close()) })
	return s, ui
}

func TestWorkflow_StopsAfterFirstFailure(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		switch r.URL.Path {
		case "/v1/query":
			_, _ = w.Write([]byte(`{"responseSet":[],"status":[]}`))
		case "/v1/index":
			w.WriteHeader(http.StatusBadGateway)
		default:
			_, _ = w.Write([]byte(`{}`))
		}
	}))
	defer srv.Close()

	s, ui := newSession(t, srv)
	ctx := testContext(t)

	cred, err := s.Credential(ctx, true)
	require.NoError(t, err)
	w := s.Workflow(cred)

	_, ok := w.REST(ctx, "query", vectara.Query, map[string]any{})
	assert.True(t, ok)

	out, ok := w.REST(ctx, "index", vectara.Index, map[string]any{})
	assert.False(t, ok)
	assert.Equal(t, vectara.KindTransportError, out.Kind)

	_, ok = w.REST(ctx, "delete", vectara.DeleteDoc, map[string]any{})
	assert.False(t, ok)
	assert.False(t, w.Print("delete", "ignored"))

	assert.Equal(t, int32(2), hits.Load())
	assert.Equal(t, 1, w.ExitCode())
	assert.ErrorIs(t, w.Err(), vectara.ErrTransport)
	assert.Contains(t, w.Err().Error(), "index: ")
	assert.Contains(t, ui.ErrorWriter.String(), "index failed")
	assert.NotContains(t, ui.ErrorWriter.String(), "delete")
}

func TestWorkflow_RetriesTransportErrors(t *testing.T) {
	tests := []struct {
		name      string
		failures  int32
		status    int
		body      string
		wantOK    bool
		wantCalls int32
	}{
		{name: "recovers", failures: 2, status: http.StatusServiceUnavailable, wantOK: true, wantCalls: 3},
		{name: "gives up", failures: 10, status: http.StatusServiceUnavailable, wantCalls: 3},
		{name: "application errors are final", failures: 10, status: http.StatusOK, body: `{"status":{"code":"FAILURE"}}`, wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if calls.Add(1) <= tt.failures {
					w.WriteHeader(tt.status)
					_, _ = w.Write([]byte(tt.body))
					return
				}
				_, _ = w.Write([]byte(`{"corpusId":5,"status":{"code":"OK"}}`))
			}))
			defer srv.Close()

			s, _ := newSession(t, srv, "-max-retries=2")
			w := s.Workflow(vectara.APIKey("zqt_test"))

			out, ok := w.REST(testContext(t), "create corpus", vectara.CreateCorpus, map[string]any{})
			assert.Equal(t, tt.wantOK, ok, "outcome: %v", out.Err())
			assert.Equal(t, tt.wantCalls, calls.Load())
		})
	}
}

func TestResult(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	s, ui := newSession(t, srv)

	type created struct {
		CorpusID int64 `json:"corpusId"`
	}

	w := s.Workflow(vectara.APIKey("k"))
	out := vectara.Succeeded("CreateCorpus", vectara.Payload{Raw: []byte(`{"corpusId":5}`)})
	got, ok := Result[created](w, "create", out, true)
	require.True(t, ok)
	assert.Equal(t, int64(5), got.CorpusID)

	_, ok = Result[created](w, "create", out, false)
	assert.False(t, ok)
	assert.NoError(t, w.Err())

	bad := vectara.Succeeded("CreateCorpus", vectara.Payload{Raw: []byte(`{"corpusId":"five"}`)})
	_, ok = Result[created](w, "create", bad, true)
	assert.False(t, ok)
	assert.Equal(t, 1, w.ExitCode())
	assert.Contains(t, ui.ErrorWriter.String(), "failed to decode response")
}

func TestSession_Credential(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	s, _ := newSession(t, srv)

	cred, err := s.Credential(testContext(t), true)
	require.NoError(t, err)
	name, value := cred.Header()
	assert.Equal(t, "x-api-key", name)
	assert.Equal(t, "zqt_test", value)

	// Without OAuth2 settings a token cannot be fetched.
	_, err = s.Credential(testContext(t), false)
	assert.Error(t, err)
}

// testContext stands in for testing.T.Context (Go 1.24+): a context that is
// cancelled when the test finishes.
func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
