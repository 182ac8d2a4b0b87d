package schema

import "github.com/hashicorp-forge/vectara-examples/pkg/vectara"

type Section struct {
	ID           int32     `json:"id,omitempty"`
	Title        string    `json:"title,omitempty"`
	Text         string    `json:"text,omitempty"`
	MetadataJSON string    `json:"metadata_json,omitempty"`
	Section      []Section `json:"section,omitempty"`
}

type Document struct {
	DocumentID   string    `json:"document_id"`
	Title        string    `json:"title,omitempty"`
	Description  string    `json:"description,omitempty"`
	MetadataJSON string    `json:"metadata_json,omitempty"`
	Section      []Section `json:"section,omitempty"`
}

type IndexRequest struct {
	CustomerID int64    `json:"customer_id"`
	CorpusID   int64    `json:"corpus_id"`
	Document   Document `json:"document"`
}

type StorageQuota struct {
	NumChars         Int64 `json:"numChars" yaml:"num_chars"`
	NumMetadataChars Int64 `json:"numMetadataChars" yaml:"num_metadata_chars"`
}

type IndexResponse struct {
	Status        vectara.Status `json:"status"`
	QuotaConsumed StorageQuota   `json:"quotaConsumed"`
}

type DeleteDocRequest struct {
	CustomerID int64  `json:"customer_id"`
	CorpusID   int64  `json:"corpus_id"`
	DocumentID string `json:"document_id"`
}
