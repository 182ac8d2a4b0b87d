package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/vectara-examples/internal/cmd/commands/commandtest"
	"github.com/hashicorp-forge/vectara-examples/pkg/vectara/schema"
)

const (
	queryOK     = `{"responseSet":[{"response":[{"text":"The answer is 42.","score":0.87,"documentIndex":0},{"text":"Deep Thought","score":0.5,"documentIndex":1}],"status":[],"document":[{"id":"doc-1"},{"id":"doc-2"}]}],"status":[]}`
	queryMethod = "/com.vectara.QueryService/Query"
)

func newCommand() (*Command, func() (string, string)) {
	b, ui := commandtest.NewCommand()
	c := &Command{Command: b}
	c.opts.LookupEnv = commandtest.NoEnv
	return c, func() (string, string) {
		return ui.OutputWriter.String(), ui.ErrorWriter.String()
	}
}

func TestCommand_REST(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantHeader string
		wantValue  string
		wantTokens int
	}{
		{
			name:       "oauth token",
			args:       []string{"-corpus-id=7"},
			wantHeader: "Authorization",
			wantValue:  "Bearer " + commandtest.Token,
			wantTokens: 1,
		},
		{
			name:       "api key",
			args:       []string{"-corpus-id=7", "-api-key=zqt_query"},
			wantHeader: "x-api-key",
			wantValue:  "zqt_query",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := commandtest.NewServer(t, map[string]commandtest.Reply{
				"/v1/query": commandtest.OK(queryOK),
			})
			c, output := newCommand()

			code := c.Run(srv.Args(append(tt.args, "-filter=doc.source = 'x'", "-num-results=5")...))
			stdout, stderr := output()
			require.Equal(t, 0, code, stderr)

			calls := srv.Calls()
			require.Len(t, calls, 1)
			assert.Equal(t, tt.wantValue, calls[0].Header.Get(tt.wantHeader))
			assert.Equal(t, tt.wantTokens, srv.TokenRequests())

			var req schema.BatchQueryRequest
			commandtest.Decode(t, calls[0].Body, &req)
			require.Len(t, req.Query, 1)
			assert.Equal(t, uint32(5), req.Query[0].NumResults)
			assert.Equal(t, []schema.CorpusKey{{
				CustomerID:     commandtest.CustomerID,
				CorpusID:       7,
				MetadataFilter: "doc.source = 'x'",
			}}, req.Query[0].CorpusKey)

			assert.Contains(t, stdout, `"document_id": "doc-2"`)
			assert.NotContains(t, stdout, "zqt_query")
		})
	}
}

func TestCommand_NoResults(t *testing.T) {
	srv := commandtest.NewServer(t, map[string]commandtest.Reply{
		"/v1/query": commandtest.OK(`{"responseSet":[{"response":[],"status":[],"document":[]}],"status":[]}`),
	})
	c, output := newCommand()

	require.Equal(t, 0, c.Run(srv.Args("-corpus-id=7")))
	stdout, _ := output()
	assert.Contains(t, stdout, "[]")
}

func TestCommand_GRPC(t *testing.T) {
	auth := commandtest.NewServer(t, nil)
	srv := commandtest.NewGRPCServer(t, map[string]commandtest.Reply{
		queryMethod: commandtest.OK(queryOK),
	})
	c, output := newCommand()

	code := c.Run(srv.Args(auth, "-corpus-id=7", "-grpc", "-api-key=zqt_query"))
	stdout, stderr := output()
	require.Equal(t, 0, code, stderr)

	calls := srv.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, queryMethod, calls[0].Path)
	assert.Equal(t, []string{"zqt_query"}, calls[0].Metadata.Get("x-api-key"))
	assert.Zero(t, auth.TokenRequests())
	assert.Contains(t, stdout, "The answer is 42.")
}

func TestCommand_Failures(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		reply     commandtest.Reply
		wantError string
	}{
		{"missing corpus", nil, commandtest.OK(queryOK), "corpus-id is required"},
		{"unauthorized", []string{"-corpus-id=7", "-api-key=bad"}, commandtest.Reply{Status: 401, Body: "bad key"}, "HTTP 401"},
		{"corpus failure", []string{"-corpus-id=7"}, commandtest.OK(`{"responseSet":[{"status":[{"code":"UNAVAILABLE","statusDetail":"corpus offline"}]}]}`), "UNAVAILABLE: corpus offline"},
		{"unknown flag", []string{"-nope"}, commandtest.OK(queryOK), "error parsing flags"},
		{"bad format", []string{"-corpus-id=7", "-format=xml"}, commandtest.OK(queryOK), `invalid format "xml"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := commandtest.NewServer(t, map[string]commandtest.Reply{"/v1/query": tt.reply})
			c, output := newCommand()

			assert.Equal(t, 1, c.Run(srv.Args(tt.args...)))
			_, stderr := output()
			assert.Contains(t, stderr, tt.wantError)
		})
	}
}
