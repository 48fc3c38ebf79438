// Package remote implements the typed HTTP client for the document-management
// service. It speaks the service's envelope contract ({success, message,
// data}) and translates failures into the data-access error taxonomy:
// *dms.TransportError when no response was received, *dms.StatusError when
// the service answered with a non-2xx status.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"dms-go/internal/dms"
)

// TokenFunc supplies the bearer token for outgoing requests. An empty
// return sends the request unauthenticated.
type TokenFunc func() string

// Client issues typed requests against the remote DMS API.
type Client struct {
	baseURL string
	http    *http.Client
	token   TokenFunc
}

var _ dms.Remote = (*Client)(nil)

// NewClient creates a Client for the given base URL (e.g.
// "http://localhost:8000/api/v1"). token may be nil for an unauthenticated
// client. No request timeout is enforced; only the simulated fallback path
// has a bounded delay.
func NewClient(baseURL string, token TokenFunc) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		token:   token,
	}
}

type successEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type errorEnvelope struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
	// FastAPI's default error shape, seen on unhandled validation errors.
	Detail json.RawMessage `json:"detail"`
}

// get issues a GET and decodes the envelope's data field into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", path, err)
	}
	return c.do(req, out)
}

// sendJSON issues a request with a JSON body and decodes the envelope's
// data field into out (out may be nil).
func (c *Client) sendJSON(ctx context.Context, method, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("encoding request body for %s: %w", path, err)
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

// sendMultipart issues a POST with form fields and an optional file part
// named "file". The file is read fully before sending; documents handled by
// this client are form uploads, not bulk transfers.
func (c *Client) sendMultipart(ctx context.Context, path string, fields map[string]string, filePath string, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range fields {
		if v == "" {
			continue
		}
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("writing form field %s: %w", k, err)
		}
	}

	if filePath != "" {
		f, err := os.Open(filePath)
		if err != nil {
			return fmt.Errorf("opening upload file: %w", err)
		}
		part, err := w.CreateFormFile("file", filepath.Base(filePath))
		if err != nil {
			f.Close()
			return fmt.Errorf("creating file part: %w", err)
		}
		if _, err := io.Copy(part, f); err != nil {
			f.Close()
			return fmt.Errorf("reading upload file: %w", err)
		}
		f.Close()
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("finalizing multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", path, err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.do(req, out)
}

// do sends the request and decodes the success envelope into out.
// A failure to reach the service at all becomes a *dms.TransportError; a
// non-2xx response becomes a *dms.StatusError carrying the service's
// structured error body when one was sent.
func (c *Client) do(req *http.Request, out any) error {
	c.prepare(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return &dms.TransportError{Op: req.Method + " " + req.URL.Path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	var env successEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decoding response envelope: %w", err)
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decoding response data: %w", err)
	}
	return nil
}

// download sends a GET expecting a raw (non-enveloped) body and streams it
// to w.
func (c *Client) download(ctx context.Context, path string, w io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", path, err)
	}
	c.prepare(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return &dms.TransportError{Op: "GET " + path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("streaming download: %w", err)
	}
	return nil
}

func (c *Client) prepare(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if c.token != nil {
		if t := c.token(); t != "" {
			req.Header.Set("Authorization", "Bearer "+t)
		}
	}
}

// statusError reads a non-2xx response body into a *dms.StatusError.
// Bodies that are not the structured error envelope leave Code/Message
// empty; the caller-facing layer substitutes a generic message.
func statusError(resp *http.Response) *dms.StatusError {
	se := &dms.StatusError{Status: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return se
	}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return se
	}
	se.Code = env.Error.Code
	se.Message = env.Error.Message
	if se.Message == "" && len(env.Detail) > 0 {
		// FastAPI sends either a string or a list of validation issues.
		var msg string
		if json.Unmarshal(env.Detail, &msg) == nil {
			se.Message = msg
		}
	}
	return se
}

// SetHTTPClient overrides the underlying HTTP client. Used by tests to
// inject timeouts or transports.
func (c *Client) SetHTTPClient(h *http.Client) { c.http = h }
