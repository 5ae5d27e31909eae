// Package transport moves the whole local dataset to and from a remote
// copy. Every push replaces the remote document; there is no diffing.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vsinha/factoryops/pkg/domain/entities"
)

// HTTPTransport pushes with POST and pulls with GET against one URL
type HTTPTransport struct {
	url    string
	client *http.Client
}

// NewHTTPTransport creates a transport for url. A zero timeout means none.
func NewHTTPTransport(url string, timeout time.Duration) *HTTPTransport {
	return &HTTPTransport{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Push uploads the dataset
func (t *HTTPTransport) Push(ctx context.Context, data *entities.Dataset) error {
	body, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("push to %s failed: %w", t.url, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("push to %s failed: status %d", t.url, resp.StatusCode)
	}
	return nil
}

// Pull downloads the dataset
func (t *HTTPTransport) Pull(ctx context.Context) (*entities.Dataset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build pull request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pull from %s failed: %w", t.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("pull from %s failed: status %d", t.url, resp.StatusCode)
	}

	var data entities.Dataset
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode dataset from %s: %w", t.url, err)
	}
	return &data, nil
}
