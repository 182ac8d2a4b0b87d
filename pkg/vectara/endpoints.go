package vectara

// protoPackage is the protobuf package of the platform's gRPC services.
const protoPackage = "com.vectara"

// API key management.
var (
	CreateAPIKey = newEndpoint("CreateApiKey", HostAdmin,
		Envelope{Path: "response[].status", Items: true})
	ListAPIKeys = newEndpoint("ListApiKeys", HostAdmin,
		Envelope{Path: "status"})
	DeleteAPIKey = newEndpoint("DeleteApiKey", HostAdmin,
		Envelope{Path: "status[]", Items: true})
	EnableAPIKey = newEndpoint("EnableApiKey", HostAdmin,
		Envelope{Path: "status[]", Items: true})
)

// Corpus management.
var (
	ReadCorpus = newEndpoint("ReadCorpus", HostAdmin,
		Envelope{Path: "status"}).
		withAdapter(corpusFound)
	ComputeCorpusSize = newEndpoint("ComputeCorpusSize", HostAdmin,
		Envelope{Path: "status"})
	UpdateCorpusEnablement = newEndpoint("UpdateCorpusEnablement", HostAdmin,
		Envelope{Path: "status"})
	GetUsageMetrics = newEndpoint("GetUsageMetrics", HostAdmin,
		Envelope{Path: "status"})
	CreateCorpus = newEndpoint("CreateCorpus", HostAdmin,
		Envelope{Path: "status"}).
		withRPC("AdminService", "CreateCorpus", "CreateCorpusRequest", "CreateCorpusResponse")
	DeleteCorpus = newEndpoint("DeleteCorpus", HostAdmin,
		Envelope{Path: "status"}).
		withAdapter(assumeOK("status")).
		withRPC("AdminService", "DeleteCorpus", "DeleteCorpusRequest", "DeleteCorpusResponse")
	ResetCorpus = newEndpoint("ResetCorpus", HostAdmin,
		Envelope{Path: "status"})
)

// User management.
var (
	ManageUser = newEndpoint("ManageUser", HostAdmin,
		Envelope{Path: "response[].status", Items: true})
	ListUsers = newEndpoint("ListUsers", HostAdmin,
		Envelope{Path: "status"}).
		withAdapter(assumeOK("status"))
)

// Indexing and serving.
var (
	Index = newEndpoint("Index", HostIndexing,
		Envelope{Path: "status"}).
		withRPC("IndexService", "Index", "IndexDocumentRequest", "IndexDocumentResponse")
	DeleteDoc = newEndpoint("DeleteDoc", HostIndexing,
		Envelope{Path: "status"}).
		withAdapter(assumeOK("status")).
		withRPC("IndexService", "Delete", "DeleteDocumentRequest", "DeleteDocumentResponse")
	Upload = func() Endpoint {
		e := newEndpoint("Upload", HostIndexing, Envelope{Path: "response.status"})
		e.Multipart = true
		return e.withAdapter(assumeOK("response.status"))
	}()
	Query = newEndpoint("Query", HostServing,
		Envelope{Path: "status[]", Optional: true},
		Envelope{Path: "responseSet[].status[]", Optional: true}).
		withRPC("QueryService", "Query", "BatchQueryRequest", "BatchQueryResponse")
)

// Endpoints lists every known endpoint.
func Endpoints() []Endpoint {
	return []Endpoint{
		CreateAPIKey, ListAPIKeys, DeleteAPIKey, EnableAPIKey,
		ReadCorpus, ComputeCorpusSize, UpdateCorpusEnablement, GetUsageMetrics,
		CreateCorpus, DeleteCorpus, ResetCorpus,
		ManageUser, ListUsers,
		Index, DeleteDoc, Upload, Query,
	}
}

// assumeOK returns an adapter for endpoints whose older revisions omit the
// status on success. A missing or null status at path is replaced by an OK
// status; the parent objects on path must exist.
func assumeOK(path string) Adapter {
	segs := Envelope{Path: path}.segments()
	return func(body map[string]any) map[string]any {
		parent := body
		for _, s := range segs[:len(segs)-1] {
			next, ok := parent[s.key].(map[string]any)
			if !ok {
				return body
			}
			parent = next
		}
		last := segs[len(segs)-1].key
		if v, ok := parent[last]; !ok || v == nil {
			parent[last] = map[string]any{"code": OKCode}
		}
		return body
	}
}

// corpusFound converts the read-corpus response, which has no envelope, into
// one: an empty corpora list means the corpus does not exist.
func corpusFound(body map[string]any) map[string]any {
	if _, ok := body["status"]; ok && body["status"] != nil {
		return body
	}
	corpora, _ := body["corpora"].([]any)
	if len(corpora) == 0 {
		body["status"] = map[string]any{
			"code":         "NOT_FOUND",
			"statusDetail": "Corpus not found",
		}
	} else {
		body["status"] = map[string]any{"code": OKCode}
	}
	return body
}
