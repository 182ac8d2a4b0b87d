package schema

import "github.com/hashicorp-forge/vectara-examples/pkg/vectara"

type CorpusKey struct {
	CustomerID     int64  `json:"customer_id"`
	CorpusID       int64  `json:"corpus_id"`
	MetadataFilter string `json:"metadata_filter,omitempty"`
}

type QueryRequest struct {
	Query      string      `json:"query"`
	Start      uint32      `json:"start,omitempty"`
	NumResults uint32      `json:"num_results"`
	CorpusKey  []CorpusKey `json:"corpus_key"`
}

type BatchQueryRequest struct {
	Query []QueryRequest `json:"query"`
}

type Attribute struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

type Response struct {
	Text          string      `json:"text"`
	Score         float32     `json:"score"`
	Metadata      []Attribute `json:"metadata"`
	DocumentIndex uint32      `json:"documentIndex"`
}

type ServingDocument struct {
	ID       string      `json:"id"`
	Metadata []Attribute `json:"metadata"`
}

type ResponseSet struct {
	Response []Response        `json:"response"`
	Status   []vectara.Status  `json:"status"`
	Document []ServingDocument `json:"document"`
}

type BatchQueryResponse struct {
	ResponseSet []ResponseSet    `json:"responseSet"`
	Status      []vectara.Status `json:"status"`
}

// Hit is one matched passage with the id of the document it came from.
type Hit struct {
	Text       string  `json:"text" yaml:"text"`
	Score      float32 `json:"score" yaml:"score"`
	DocumentID string  `json:"document_id" yaml:"document_id"`
}

// Hits flattens every response set into a list of hits. A response whose
// document index is out of range keeps an empty document id.
func (r BatchQueryResponse) Hits() []Hit {
	hits := []Hit{}
	for _, set := range r.ResponseSet {
		for _, resp := range set.Response {
			h := Hit{Text: resp.Text, Score: resp.Score}
			if int(resp.DocumentIndex) < len(set.Document) {
				h.DocumentID = set.Document[resp.DocumentIndex].ID
			}
			hits = append(hits, h)
		}
	}
	return hits
}
