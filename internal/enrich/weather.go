package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/HaruLab/travel-planning/internal/domain"
)

// WeatherLookup fetches the current conditions at a location.
type WeatherLookup interface {
	Current(ctx context.Context, c Coordinates) (domain.WeatherInfo, error)
}

// openMeteoBaseURL is the default forecast endpoint. Open-Meteo requires no
// API key and reports conditions as WMO weather interpretation codes.
const openMeteoBaseURL = "https://api.open-meteo.com"

// OpenMeteoLookup queries the Open-Meteo current-weather API.
type OpenMeteoLookup struct {
	baseURL string
	http    *http.Client
}

// NewOpenMeteoLookup returns a lookup against the public Open-Meteo endpoint,
// or against baseURL when non-empty (tests).
func NewOpenMeteoLookup(baseURL string) *OpenMeteoLookup {
	if baseURL == "" {
		baseURL = openMeteoBaseURL
	}
	return &OpenMeteoLookup{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// openMeteoResponse is the subset of the forecast response we read.
type openMeteoResponse struct {
	CurrentWeather struct {
		Temperature float64 `json:"temperature"`
		WeatherCode int     `json:"weathercode"`
	} `json:"current_weather"`
}

// Current returns the conditions at c, with the temperature rounded to a
// whole degree.
func (l *OpenMeteoLookup) Current(ctx context.Context, c Coordinates) (domain.WeatherInfo, error) {
	reqURL := fmt.Sprintf("%s/v1/forecast?latitude=%.4f&longitude=%.4f&current_weather=true",
		l.baseURL, c.Lat, c.Lon)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return domain.WeatherInfo{}, fmt.Errorf("enrich.Current: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := l.http.Do(req)
	if err != nil {
		return domain.WeatherInfo{}, fmt.Errorf("enrich.Current: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.WeatherInfo{}, fmt.Errorf("enrich.Current: unexpected status %d", resp.StatusCode)
	}

	var body openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.WeatherInfo{}, fmt.Errorf("enrich.Current: decode: %w", err)
	}

	return domain.WeatherInfo{
		Temperature: int(math.Round(body.CurrentWeather.Temperature)),
		WeatherCode: body.CurrentWeather.WeatherCode,
	}, nil
}
