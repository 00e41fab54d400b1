// Package cloud provides the thin HTTP client for the document sync
// backend. The backend itself is an external service; this package is
// request/response glue only.
package cloud

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 15 * time.Second

// Client errors.
var (
	ErrBaseURLRequired = errors.New("sync base URL is empty")
	ErrUnauthorized    = errors.New("sync backend rejected the credential")
	ErrRemoteNotFound  = errors.New("remote document not found")
)

// Client handles sync backend HTTP API calls.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

// RemoteDocument is the backend's document representation.
type RemoteDocument struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Scene     string    `json:"scene"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewClient constructs a client with defaults applied.
func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		Token:   token,
		HTTP:    &http.Client{Timeout: defaultTimeout},
	}
}

// Push uploads a scene document. A non-empty remoteID updates the existing
// remote document; otherwise a new one is created. Returns the remote ID.
func (c *Client) Push(ctx context.Context, remoteID, name string, sceneData []byte) (string, error) {
	base, err := c.baseURL()
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(RemoteDocument{ID: remoteID, Name: name, Scene: string(sceneData)})
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}

	method := http.MethodPost
	url := base + "/v1/documents"
	if remoteID != "" {
		method = http.MethodPut
		url += "/" + remoteID
	}

	body, err := c.do(ctx, method, url, payload)
	if err != nil {
		return "", err
	}

	var created RemoteDocument
	if err := json.Unmarshal(body, &created); err != nil {
		return "", fmt.Errorf("decode push response: %w", err)
	}
	if created.ID == "" {
		return "", fmt.Errorf("push response missing document id")
	}
	return created.ID, nil
}

// Pull downloads the scene document with the given remote ID.
func (c *Client) Pull(ctx context.Context, remoteID string) (*RemoteDocument, error) {
	base, err := c.baseURL()
	if err != nil {
		return nil, err
	}
	if remoteID == "" {
		return nil, fmt.Errorf("remote document id is required")
	}

	body, err := c.do(ctx, http.MethodGet, base+"/v1/documents/"+remoteID, nil)
	if err != nil {
		return nil, err
	}

	var doc RemoteDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode pull response: %w", err)
	}
	return &doc, nil
}

// List fetches the remote document index.
func (c *Client) List(ctx context.Context) ([]RemoteDocument, error) {
	base, err := c.baseURL()
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, http.MethodGet, base+"/v1/documents", nil)
	if err != nil {
		return nil, err
	}

	var docs []RemoteDocument
	if err := json.Unmarshal(body, &docs); err != nil {
		return nil, fmt.Errorf("decode list response: %w", err)
	}
	return docs, nil
}

func (c *Client) baseURL() (string, error) {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		return "", ErrBaseURLRequired
	}
	return base, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP == nil {
		c.HTTP = &http.Client{Timeout: defaultTimeout}
	}
	return c.HTTP
}

func (c *Client) do(ctx context.Context, method, url string, payload []byte) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("call sync backend: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read sync response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrRemoteNotFound
	case resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices:
		snippet := strings.TrimSpace(string(body))
		if snippet == "" {
			snippet = resp.Status
		}
		return nil, fmt.Errorf("sync request failed (%s): %s", resp.Status, snippet)
	}

	return body, nil
}
