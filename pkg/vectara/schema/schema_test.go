package schema

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/vectara-examples/pkg/vectara"
)

func TestInt64_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Int64
		wantErr  bool
	}{
		{name: "number", input: `42`, expected: 42},
		{name: "string", input: `"1700000000"`, expected: 1700000000},
		{name: "negative string", input: `"-7"`, expected: -7},
		{name: "null", input: `null`, expected: 0},
		{name: "empty string", input: `""`, expected: 0},
		{name: "not a number", input: `"abc"`, wantErr: true},
		{name: "float", input: `1.5`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Int64
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestInt64_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		ID Int64 `json:"id"`
	}{ID: 9007199254740993})
	require.NoError(t, err)
	assert.Equal(t, `{"id":9007199254740993}`, string(b))
}

func TestItemCount(t *testing.T) {
	tests := []struct {
		name     string
		body     any
		expected int
	}{
		{
			name: "create api key",
			body: CreateAPIKeyRequest{APIKeyData: []APIKeyData{
				{APIKeyType: APIKeyTypeServing, CorpusID: []int64{1}},
			}},
			expected: 1,
		},
		{
			name:     "delete api key",
			body:     DeleteAPIKeyRequest{KeyID: []string{"a", "b"}},
			expected: 2,
		},
		{
			name: "enable api key",
			body: EnableAPIKeyRequest{KeyEnablement: []KeyEnablement{
				{KeyID: "a"}, {KeyID: "b"}, {KeyID: "c"},
			}},
			expected: 3,
		},
		{
			name:     "manage user",
			body:     ManageUserRequest{UserAction: []UserAction{{UserActionType: UserActionAdd}}},
			expected: 1,
		},
		{
			name:     "not a batch",
			body:     ComputeCorpusSizeRequest{CorpusID: 1},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, vectara.ExpectedItems(tt.body))
		})
	}
}

func TestBatchQueryResponse_Hits(t *testing.T) {
	body := `{
		"responseSet": [{
			"response": [
				{"text": "42", "score": 0.9, "documentIndex": 1},
				{"text": "orphan", "score": 0.1, "documentIndex": 5}
			],
			"status": [],
			"document": [{"id": "doc-a"}, {"id": "doc-b"}]
		}],
		"status": []
	}`

	var resp BatchQueryResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))

	hits := resp.Hits()
	require.Len(t, hits, 2)
	assert.Equal(t, Hit{Text: "42", Score: 0.9, DocumentID: "doc-b"}, hits[0])
	assert.Equal(t, "", hits[1].DocumentID)

	assert.NotNil(t, BatchQueryResponse{}.Hits())
	assert.Empty(t, BatchQueryResponse{}.Hits())
}

func TestUploadRequest_Multipart(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/doc.json", []byte(`{"title":"x"}`), 0o644))

	req, err := ReadUploadFile(fs, "/data/doc.json", 1234, 5)
	require.NoError(t, err)
	assert.Equal(t, "doc.json", req.FileName)
	assert.Equal(t, "c=1234&o=5", req.QueryParams().Encode())

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, req.WriteMultipart(w))
	require.NoError(t, w.Close())

	r := multipart.NewReader(&buf, w.Boundary())
	part, err := r.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "file", part.FormName())
	assert.Equal(t, "doc.json", part.FileName())
	assert.Equal(t, `form-data; name="file"; filename="doc.json"`, part.Header.Get("Content-Disposition"))

	mt, _, err := mime.ParseMediaType(part.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "application/json", mt)

	content, err := io.ReadAll(part)
	require.NoError(t, err)
	assert.Equal(t, `{"title":"x"}`, string(content))

	_, err = r.NextPart()
	assert.ErrorIs(t, err, io.EOF)
}

func TestUploadRequest_QuotedFileName(t *testing.T) {
	req := UploadRequest{FileName: `say "hi".txt`, Content: []byte("hi")}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, req.WriteMultipart(w))
	require.NoError(t, w.Close())

	part, err := multipart.NewReader(&buf, w.Boundary()).NextPart()
	require.NoError(t, err)
	assert.Equal(t, `form-data; name="file"; filename="say \"hi\".txt"`, part.Header.Get("Content-Disposition"))
	assert.Equal(t, `say "hi".txt`, part.FileName())
}

func TestReadUploadFile_Missing(t *testing.T) {
	_, err := ReadUploadFile(afero.NewMemMapFs(), "/nope.json", 1, 2)
	assert.Error(t, err)
}

func TestFormatInterval(t *testing.T) {
	tests := []struct {
		in       time.Duration
		expected string
	}{
		{time.Hour, "PT1H"},
		{90 * time.Minute, "PT1H30M"},
		{45 * time.Second, "PT45S"},
		{1500 * time.Millisecond, "PT1.5S"},
		{0, "PT0S"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatInterval(tt.in), tt.in.String())
	}
}

func TestMetadata(t *testing.T) {
	assert.Equal(t, "", Metadata(nil))
	assert.JSONEq(t, `{"author":"Example Author"}`, Metadata(map[string]string{"author": "Example Author"}))
}
