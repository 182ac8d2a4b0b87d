package schema

import (
	"fmt"
	"mime"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/hashicorp-forge/vectara-examples/pkg/vectara"
)

// UploadRequest is a file upload to the indexing service. It is sent as a
// multipart form with a single "file" part; the customer and corpus travel
// in the query string.
type UploadRequest struct {
	CustomerID  int64
	CorpusID    int64
	FileName    string
	ContentType string
	Content     []byte
}

// QueryParams returns the query string of the upload URL.
func (r UploadRequest) QueryParams() url.Values {
	v := url.Values{}
	v.Set("c", strconv.FormatInt(r.CustomerID, 10))
	v.Set("o", strconv.FormatInt(r.CorpusID, 10))
	return v
}

// WriteMultipart writes the file part to w.
func (r UploadRequest) WriteMultipart(w *multipart.Writer) error {
	ct := r.ContentType
	if ct == "" {
		ct = mime.TypeByExtension(filepath.Ext(r.FileName))
	}
	if ct == "" {
		ct = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(r.FileName)))
	h.Set("Content-Type", ct)

	part, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("error creating file part: %w", err)
	}
	if _, err := part.Write(r.Content); err != nil {
		return fmt.Errorf("error writing file part: %w", err)
	}
	return nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string { return quoteEscaper.Replace(s) }

// ReadUploadFile loads path from fs into an upload request.
func ReadUploadFile(fs afero.Fs, path string, customerID, corpusID int64) (*UploadRequest, error) {
	content, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("error reading upload file: %w", err)
	}
	return &UploadRequest{
		CustomerID: customerID,
		CorpusID:   corpusID,
		FileName:   filepath.Base(path),
		Content:    content,
	}, nil
}

type UploadResponse struct {
	Response struct {
		Status        *vectara.Status `json:"status,omitempty"`
		QuotaConsumed StorageQuota    `json:"quotaConsumed"`
	} `json:"response"`
}
