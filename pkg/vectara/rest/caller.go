// Package rest calls the platform's REST endpoints and classifies every
// response into a vectara.Outcome.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/hashicorp-forge/vectara-examples/pkg/vectara"
)

// MultipartBody is implemented by request bodies of multipart endpoints.
type MultipartBody interface {
	QueryParams() url.Values
	WriteMultipart(w *multipart.Writer) error
}

// Caller performs REST calls. It is safe for concurrent use.
type Caller struct {
	cfg    *Config
	client *http.Client
	logger hclog.Logger
}

// NewCaller creates a REST caller.
func NewCaller(cfg *Config) (*Caller, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid REST config: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &Caller{
		cfg:    cfg,
		client: cfg.NewHTTPClient(),
		logger: logger.Named("rest"),
	}, nil
}

// Call sends body to ep on behalf of tenantID and classifies the response.
// It never returns an error; failures are reported in the Outcome.
func (c *Caller) Call(
	ctx context.Context,
	tenantID int64,
	cred vectara.Credential,
	ep vectara.Endpoint,
	body any,
) vectara.Outcome {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	logger := c.logger.With("endpoint", ep.Name, "request_id", uuid.NewString())
	start := time.Now()

	req, err := c.newRequest(ctx, tenantID, cred, ep, body)
	if err != nil {
		return vectara.TransportFailure(&vectara.TransportError{
			Op:     ep.Name,
			Reason: "failed to build request",
			Err:    err,
		})
	}

	logger.Debug("sending request", "url", req.URL.String(), "auth", cred.Scheme())

	resp, err := c.client.Do(req)
	if err != nil {
		reason := "request failed"
		if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
			reason = fmt.Sprintf("request timed out after %s", c.cfg.Timeout)
		}
		logger.Error("request failed", "error", err, "duration", time.Since(start))
		return vectara.TransportFailure(&vectara.TransportError{
			Op:     ep.Name,
			Reason: reason,
			Err:    err,
		})
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error("error reading response body", "error", err)
		return vectara.TransportFailure(&vectara.TransportError{
			Op:         ep.Name,
			StatusCode: resp.StatusCode,
			Reason:     "failed to read response body",
			Err:        err,
		})
	}

	if resp.StatusCode != http.StatusOK {
		logger.Error("request returned non-OK HTTP status",
			"status_code", resp.StatusCode,
			"duration", time.Since(start),
		)
		return vectara.TransportFailure(&vectara.TransportError{
			Op:         ep.Name,
			StatusCode: resp.StatusCode,
			Reason:     http.StatusText(resp.StatusCode),
			Body:       respBody,
		})
	}

	out := vectara.Classify(ep, vectara.ExpectedItems(body), respBody)
	if out.OK() {
		logger.Debug("request succeeded", "duration", time.Since(start))
	} else {
		logger.Error("platform reported failure", "error", out.Err(), "duration", time.Since(start))
	}
	return out
}

func (c *Caller) newRequest(
	ctx context.Context,
	tenantID int64,
	cred vectara.Credential,
	ep vectara.Endpoint,
	body any,
) (*http.Request, error) {
	target := c.cfg.BaseURL(ep.Host) + ep.Path

	var (
		buf         bytes.Buffer
		contentType = "application/json"
	)
	if ep.Multipart {
		mb, ok := body.(MultipartBody)
		if !ok {
			return nil, fmt.Errorf("%s requires a multipart body, got %T", ep.Name, body)
		}
		w := multipart.NewWriter(&buf)
		if err := mb.WriteMultipart(w); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("error closing multipart body: %w", err)
		}
		contentType = w.FormDataContentType()
		if q := mb.QueryParams(); len(q) > 0 {
			target += "?" + q.Encode()
		}
	} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(vectara.HeaderCustomerID, strconv.FormatInt(tenantID, 10))
	if !cred.IsZero() {
		name, value := cred.Header()
		req.Header.Set(name, value)
	}
	return req, nil
}
