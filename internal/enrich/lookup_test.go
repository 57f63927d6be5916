package enrich_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HaruLab/travel-planning/internal/enrich"
)

func TestNominatimGeocoder_ParsesStringCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "青森駅", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"), "Nominatim requires a User-Agent")
		w.Write([]byte(`[{"lat":"40.8244","lon":"140.7400","display_name":"青森駅"}]`))
	}))
	defer srv.Close()

	c, ok, err := enrich.NewNominatimGeocoder(srv.URL).Geocode(context.Background(), "青森駅")
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 40.8244, c.Lat, 1e-9)
	assert.InDelta(t, 140.74, c.Lon, 1e-9)
}

func TestNominatimGeocoder_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, ok, err := enrich.NewNominatimGeocoder(srv.URL).Geocode(context.Background(), "nowhere at all")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNominatimGeocoder_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, _, err := enrich.NewNominatimGeocoder(srv.URL).Geocode(context.Background(), "東京")
	assert.Error(t, err)
}

func TestOpenMeteoLookup_RoundsTemperature(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/forecast", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("current_weather"))
		w.Write([]byte(`{"current_weather":{"temperature":-1.6,"weathercode":71,"windspeed":13.2}}`))
	}))
	defer srv.Close()

	info, err := enrich.NewOpenMeteoLookup(srv.URL).Current(context.Background(),
		enrich.Coordinates{Lat: 40.8244, Lon: 140.74})
	require.NoError(t, err)
	assert.Equal(t, -2, info.Temperature)
	assert.Equal(t, 71, info.WeatherCode)
}

func TestOpenMeteoLookup_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "oops", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := enrich.NewOpenMeteoLookup(srv.URL).Current(context.Background(), enrich.Coordinates{})
	assert.Error(t, err)
}
