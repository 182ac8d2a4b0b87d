package schema

import (
	"time"

	"github.com/hashicorp-forge/vectara-examples/pkg/vectara"
)

type Corpus struct {
	ID          Int64  `json:"id,omitempty" yaml:"id"`
	Name        string `json:"name,omitempty" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	DtProvision Int64  `json:"dtProvision,omitempty" yaml:"dt_provision,omitempty"`
	Enabled     bool   `json:"enabled,omitempty" yaml:"enabled"`
}

type CorpusSize struct {
	EpochSecs Int64 `json:"epochSecs" yaml:"epoch_secs"`
	Size      Int64 `json:"size" yaml:"size"`
}

type ReadCorpusRequest struct {
	CorpusID             []int64 `json:"corpusId"`
	ReadBasicInfo        bool    `json:"readBasicInfo"`
	ReadSize             bool    `json:"readSize"`
	ReadAPIKeys          bool    `json:"readApiKeys"`
	ReadCustomDimensions bool    `json:"readCustomDimensions"`
	ReadFilterAttributes bool    `json:"readFilterAttributes"`
}

type ReadCorpusResponse struct {
	Corpora []CorpusInfo `json:"corpora"`
}

type CorpusInfo struct {
	Corpus       Corpus          `json:"corpus" yaml:"corpus"`
	CorpusStatus *vectara.Status `json:"corpusStatus,omitempty" yaml:"corpus_status,omitempty"`
	Size         CorpusSize      `json:"size" yaml:"size"`
	SizeStatus   *vectara.Status `json:"sizeStatus,omitempty" yaml:"size_status,omitempty"`
	APIKey       []APIKey        `json:"apiKey" yaml:"api_keys"`
	APIKeyStatus *vectara.Status `json:"apiKeyStatus,omitempty" yaml:"api_key_status,omitempty"`
}

type ComputeCorpusSizeRequest struct {
	CorpusID int64 `json:"corpusId"`
}

type ComputeCorpusSizeResponse struct {
	Size   CorpusSize     `json:"size"`
	Status vectara.Status `json:"status"`
}

type UpdateCorpusEnablementRequest struct {
	CorpusID int64 `json:"corpusId"`
	Enable   bool  `json:"enable"`
}

// StatusResponse is the body of endpoints that answer with a single status.
type StatusResponse struct {
	Status vectara.Status `json:"status"`
}

// Usage metric types.
const (
	MetricTypeServing  = "METRICTYPE__SERVING"
	MetricTypeIndexing = "METRICTYPE__INDEXING"
)

type GetUsageMetricsRequest struct {
	CorpusID int64        `json:"corpusId"`
	Window   MetricWindow `json:"window"`
	Type     string       `json:"type"`

	// Interval is an ISO 8601 duration, see FormatInterval.
	Interval string `json:"interval"`
}

type MetricWindow struct {
	AbsoluteWindow AbsoluteWindow `json:"absoluteWindow"`
}

type AbsoluteWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type GetUsageMetricsResponse struct {
	Values []UsageValue   `json:"values"`
	Status vectara.Status `json:"status"`
}

type UsageValue struct {
	ServingValue  *ServingUsage  `json:"servingValue,omitempty" yaml:"serving,omitempty"`
	IndexingValue *IndexingUsage `json:"indexingValue,omitempty" yaml:"indexing,omitempty"`
}

type ServingUsage struct {
	RowsRead   Int64 `json:"rowsRead" yaml:"rows_read"`
	QueryCount Int64 `json:"queryCount" yaml:"query_count"`
	Start      Int64 `json:"start" yaml:"start"`
}

type IndexingUsage struct {
	BytesIndexed Int64 `json:"bytesIndexed" yaml:"bytes_indexed"`
	Start        Int64 `json:"start" yaml:"start"`
}

type CreateCorpusRequest struct {
	Corpus Corpus `json:"corpus"`
}

type CreateCorpusResponse struct {
	CorpusID Int64          `json:"corpusId"`
	Status   vectara.Status `json:"status"`
}

// CorpusRequest addresses one corpus of one customer. DeleteCorpus and
// ResetCorpus take it as their request body.
type CorpusRequest struct {
	CustomerID int64 `json:"customer_id"`
	CorpusID   int64 `json:"corpus_id"`
}
