package vectara

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpoints_Paths(t *testing.T) {
	want := map[string]string{
		"CreateApiKey":           "/v1/create-api-key",
		"ListApiKeys":            "/v1/list-api-keys",
		"DeleteApiKey":           "/v1/delete-api-key",
		"EnableApiKey":           "/v1/enable-api-key",
		"ReadCorpus":             "/v1/read-corpus",
		"ComputeCorpusSize":      "/v1/compute-corpus-size",
		"UpdateCorpusEnablement": "/v1/update-corpus-enablement",
		"GetUsageMetrics":        "/v1/get-usage-metrics",
		"CreateCorpus":           "/v1/create-corpus",
		"DeleteCorpus":           "/v1/delete-corpus",
		"ResetCorpus":            "/v1/reset-corpus",
		"ManageUser":             "/v1/manage-user",
		"ListUsers":              "/v1/list-users",
		"Index":                  "/v1/index",
		"DeleteDoc":              "/v1/delete-doc",
		"Upload":                 "/v1/upload",
		"Query":                  "/v1/query",
	}

	eps := Endpoints()
	require.Len(t, eps, len(want))
	for _, ep := range eps {
		assert.Equal(t, want[ep.Name], ep.Path, ep.Name)
		assert.NotEmpty(t, ep.Envelopes, ep.Name)
	}
}

func TestEndpoints_RPCBindings(t *testing.T) {
	tests := []struct {
		ep     Endpoint
		method string
	}{
		{Query, "/com.vectara.QueryService/Query"},
		{Index, "/com.vectara.IndexService/Index"},
		{DeleteDoc, "/com.vectara.IndexService/Delete"},
		{CreateCorpus, "/com.vectara.AdminService/CreateCorpus"},
		{DeleteCorpus, "/com.vectara.AdminService/DeleteCorpus"},
	}

	for _, tt := range tests {
		t.Run(tt.ep.Name, func(t *testing.T) {
			require.NotNil(t, tt.ep.RPC)
			assert.Equal(t, tt.method, tt.ep.RPC.Method)
			assert.Contains(t, tt.ep.RPC.Request, "com.vectara.")
			assert.Contains(t, tt.ep.RPC.Response, "com.vectara.")
		})
	}

	assert.Nil(t, CreateAPIKey.RPC)
	assert.True(t, Upload.Multipart)
	assert.Equal(t, HostServing, Query.Host)
	assert.Equal(t, HostIndexing, Index.Host)
	assert.Equal(t, HostAdmin, ManageUser.Host)
}

func TestAssumeOK_LeavesExistingStatus(t *testing.T) {
	body := map[string]any{"status": map[string]any{"code": "FAILURE"}}
	got := assumeOK("status")(body)
	assert.Equal(t, "FAILURE", got["status"].(map[string]any)["code"])

	nested := map[string]any{"response": map[string]any{}}
	got = assumeOK("response.status")(nested)
	assert.Equal(t, OKCode, got["response"].(map[string]any)["status"].(map[string]any)["code"])
}

func TestExpectedItems(t *testing.T) {
	assert.Equal(t, 0, ExpectedItems(map[string]any{}))
	assert.Equal(t, 3, ExpectedItems(countingBody(3)))
}

type countingBody int

func (c countingBody) ItemCount() int { return int(c) }

func TestCredential(t *testing.T) {
	name, value := Bearer("tok").Header()
	assert.Equal(t, "Authorization", name)
	assert.Equal(t, "Bearer tok", value)

	name, value = APIKey("zqt_key").Header()
	assert.Equal(t, "x-api-key", name)
	assert.Equal(t, "zqt_key", value)

	assert.True(t, Credential{}.IsZero())
	assert.NotContains(t, Bearer("secret-token").String(), "secret-token")
}

func TestPackID(t *testing.T) {
	b := PackID(1234567890)
	assert.Equal(t, []byte{0, 0, 0, 0, 0x49, 0x96, 0x02, 0xd2}, b)

	id, ok := UnpackID(b)
	require.True(t, ok)
	assert.Equal(t, int64(1234567890), id)

	_, ok = UnpackID([]byte{1, 2})
	assert.False(t, ok)
}
