// Package remote is the HTTP client for the single-document itinerary
// endpoint served by voyaged. There is no authentication and no partial
// update: every write replaces the whole document.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/HaruLab/travel-planning/internal/domain"
)

// userAgent identifies the client to the endpoint (and keeps the same habit
// the geocoder requires).
const userAgent = "voyage/1.0"

// Client talks to one itinerary endpoint.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for the endpoint at baseURL (e.g. "http://localhost:3001").
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Fetch reads the remote document. A "{}" body — the endpoint's shape for a
// never-written backing file — is a successful response carrying no data;
// callers treat it the same as a load failure for fallback purposes, but it
// is reported through ok, not err.
func (c *Client) Fetch(ctx context.Context) (doc domain.Document, ok bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/itinerary", nil)
	if err != nil {
		return domain.Document{}, false, fmt.Errorf("remote.Fetch: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Document{}, false, fmt.Errorf("remote.Fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.Document{}, false, fmt.Errorf("remote.Fetch: unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return domain.Document{}, false, fmt.Errorf("remote.Fetch: decode: %w", err)
	}
	if doc.Empty() {
		return domain.Document{}, false, nil
	}
	return doc, true, nil
}

// Push replaces the remote document with the full trip.
func (c *Client) Push(ctx context.Context, t domain.Trip) error {
	body, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("remote.Push: encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/itinerary", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("remote.Push: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("remote.Push: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("remote.Push: unexpected status %d", resp.StatusCode)
	}
	return nil
}
