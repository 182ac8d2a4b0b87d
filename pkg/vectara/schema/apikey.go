package schema

import "github.com/hashicorp-forge/vectara-examples/pkg/vectara"

// API key types accepted by CreateApiKey.
const (
	APIKeyTypeServing         = 1
	APIKeyTypeServingIndexing = 2
)

type CreateAPIKeyRequest struct {
	APIKeyData []APIKeyData `json:"apiKeyData"`
}

type APIKeyData struct {
	Description string  `json:"description,omitempty"`
	APIKeyType  int     `json:"apiKeyType"`
	CorpusID    []int64 `json:"corpusId"`
}

func (r CreateAPIKeyRequest) ItemCount() int { return len(r.APIKeyData) }

type CreateAPIKeyResponse struct {
	Response []struct {
		KeyID  string         `json:"keyId"`
		Status vectara.Status `json:"status"`
	} `json:"response"`
}

// KeyIDs returns the ids of the created keys in request order.
func (r CreateAPIKeyResponse) KeyIDs() []string {
	ids := make([]string, 0, len(r.Response))
	for _, item := range r.Response {
		ids = append(ids, item.KeyID)
	}
	return ids
}

type ListAPIKeysRequest struct {
	NumResults      int    `json:"numResults,omitempty"`
	PageKey         string `json:"pageKey,omitempty"`
	ReadCorporaInfo bool   `json:"readCorporaInfo"`
}

type ListAPIKeysResponse struct {
	KeyData []KeyData      `json:"keyData"`
	PageKey string         `json:"pageKey,omitempty"`
	Status  vectara.Status `json:"status"`
}

type KeyData struct {
	APIKey APIKey   `json:"apiKey" yaml:"api_key"`
	Corpus []Corpus `json:"corpus" yaml:"corpus"`
}

type APIKey struct {
	ID          string `json:"id" yaml:"id"`
	Description string `json:"description" yaml:"description"`
	KeyType     string `json:"keyType" yaml:"key_type"`
	Enabled     bool   `json:"enabled" yaml:"enabled"`
}

type DeleteAPIKeyRequest struct {
	KeyID []string `json:"keyId"`
}

func (r DeleteAPIKeyRequest) ItemCount() int { return len(r.KeyID) }

type EnableAPIKeyRequest struct {
	KeyEnablement []KeyEnablement `json:"keyEnablement"`
}

type KeyEnablement struct {
	KeyID  string `json:"keyId"`
	Enable bool   `json:"enable"`
}

func (r EnableAPIKeyRequest) ItemCount() int { return len(r.KeyEnablement) }

// StatusListResponse is the body of endpoints that answer with one status
// per request item.
type StatusListResponse struct {
	Status []vectara.Status `json:"status"`
}
