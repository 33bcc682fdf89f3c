// Package geocode provides an HTTP geocoding client speaking the
// Nominatim search API.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"minar-ads/internal/core/domain"
)

// Client resolves addresses against a Nominatim-compatible endpoint.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

// NewClient builds a geocoding client. Nominatim requires an identifying
// User-Agent.
func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		http:      &http.Client{Timeout: timeout},
	}
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Resolve returns the best-match coordinate for the address. An empty
// result set is reported as *domain.GeocodeError so callers can ask the
// user for a corrected address.
func (c *Client) Resolve(ctx context.Context, address string) (domain.Coordinate, error) {
	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return domain.Coordinate{}, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return domain.Coordinate{}, fmt.Errorf("geocode request: unexpected status %d", resp.StatusCode)
	}

	var results []searchResult
	if err = json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return domain.Coordinate{}, fmt.Errorf("geocode response: %w", err)
	}
	if len(results) == 0 {
		return domain.Coordinate{}, &domain.GeocodeError{Address: address}
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("geocode response: %w", err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("geocode response: %w", err)
	}
	return domain.Coordinate{Lat: lat, Lng: lng}, nil
}
