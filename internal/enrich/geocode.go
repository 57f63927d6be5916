package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Geocoder resolves a free-text place name to coordinates.
// ok is false on a successful lookup with no results.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (c Coordinates, ok bool, err error)
}

// nominatimBaseURL is the default OpenStreetMap geocoding endpoint.
const nominatimBaseURL = "https://nominatim.openstreetmap.org"

// userAgent identifies this client; Nominatim rejects requests without one.
const userAgent = "voyage/1.0 (travel itinerary planner)"

// NominatimGeocoder queries the OpenStreetMap Nominatim search API.
type NominatimGeocoder struct {
	baseURL string
	http    *http.Client
}

// NewNominatimGeocoder returns a geocoder against the public Nominatim
// endpoint. baseURL overrides it when non-empty (tests point it at a local
// server).
func NewNominatimGeocoder(baseURL string) *NominatimGeocoder {
	if baseURL == "" {
		baseURL = nominatimBaseURL
	}
	return &NominatimGeocoder{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// nominatimResult is the subset of the Nominatim response we read.
// Coordinates arrive as strings.
type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode looks up a single best match for query.
func (g *NominatimGeocoder) Geocode(ctx context.Context, query string) (Coordinates, bool, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		g.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return Coordinates{}, false, fmt.Errorf("enrich.Geocode: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := g.http.Do(req)
	if err != nil {
		return Coordinates{}, false, fmt.Errorf("enrich.Geocode: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Coordinates{}, false, fmt.Errorf("enrich.Geocode: unexpected status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return Coordinates{}, false, fmt.Errorf("enrich.Geocode: decode: %w", err)
	}
	if len(results) == 0 {
		return Coordinates{}, false, nil
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		return Coordinates{}, false, fmt.Errorf("enrich.Geocode: malformed coordinates %q,%q",
			results[0].Lat, results[0].Lon)
	}
	return Coordinates{Lat: lat, Lon: lon}, true, nil
}
