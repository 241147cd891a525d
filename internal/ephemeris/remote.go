package ephemeris

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Remote fetches positions from an HTTP ephemeris service. The service is
// expected to answer GET {base}/api/v1/position?body=<slug>&t=<RFC3339Nano> with
// {"longitude":..,"latitude":..,"distance_km":..}.
type Remote struct {
	baseURL string
	client  *http.Client
}

// NewRemote creates a remote provider. Returns nil if baseURL is empty.
func NewRemote(baseURL string) *Remote {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil
	}
	return &Remote{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type remotePosition struct {
	Longitude  *float64 `json:"longitude"`
	Latitude   float64  `json:"latitude"`
	DistanceKm float64  `json:"distance_km"`
}

// Position implements Provider. Failures are returned as-is; there is no
// retry or fallback.
func (r *Remote) Position(b Body, t time.Time) (Position, error) {
	if b.Name() == "Unknown" {
		return Position{}, fmt.Errorf("%w: %d", ErrUnknownBody, b)
	}

	q := url.Values{}
	q.Set("body", b.Slug())
	q.Set("t", t.UTC().Format(time.RFC3339Nano))
	apiURL := r.baseURL + "/api/v1/position?" + q.Encode()

	resp, err := r.client.Get(apiURL)
	if err != nil {
		return Position{}, fmt.Errorf("ephemeris API call: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Position{}, fmt.Errorf("ephemeris API read: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return Position{}, fmt.Errorf("ephemeris API status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var raw remotePosition
	if err := json.Unmarshal(body, &raw); err != nil {
		return Position{}, fmt.Errorf("ephemeris API parse: %w", err)
	}
	if raw.Longitude == nil {
		return Position{}, fmt.Errorf("ephemeris API parse: missing longitude for %s", b.Slug())
	}

	return Position{
		Longitude:  normalize(*raw.Longitude),
		Latitude:   raw.Latitude,
		DistanceKm: raw.DistanceKm,
	}, nil
}
