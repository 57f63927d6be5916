package enrich_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HaruLab/travel-planning/internal/domain"
	"github.com/HaruLab/travel-planning/internal/enrich"
	"github.com/HaruLab/travel-planning/internal/store"
)

// mockGeocoder is a test double for enrich.Geocoder.
type mockGeocoder struct {
	mu      sync.Mutex
	geocode func(ctx context.Context, query string) (enrich.Coordinates, bool, error)
	queries []string
}

func (m *mockGeocoder) Geocode(ctx context.Context, query string) (enrich.Coordinates, bool, error) {
	m.mu.Lock()
	m.queries = append(m.queries, query)
	m.mu.Unlock()
	if m.geocode == nil {
		return enrich.Coordinates{}, false, nil
	}
	return m.geocode(ctx, query)
}

func (m *mockGeocoder) seen() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.queries...)
}

var _ enrich.Geocoder = (*mockGeocoder)(nil)

// mockWeather is a test double for enrich.WeatherLookup.
type mockWeather struct {
	mu      sync.Mutex
	current func(ctx context.Context, c enrich.Coordinates) (domain.WeatherInfo, error)
	calls   int
}

func (m *mockWeather) Current(ctx context.Context, c enrich.Coordinates) (domain.WeatherInfo, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.current == nil {
		return domain.WeatherInfo{Temperature: 5, WeatherCode: 1}, nil
	}
	return m.current(ctx, c)
}

func (m *mockWeather) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

var _ enrich.WeatherLookup = (*mockWeather)(nil)

// ---- helpers ---------------------------------------------------------------

func seededStore(acts ...domain.Activity) *store.Store {
	s := store.New()
	s.Seed(domain.Trip{Title: "旅", Activities: acts})
	return s
}

func act(id, title, origin string) domain.Activity {
	return domain.Activity{
		ID: id, Kind: domain.KindSightseeing,
		Title: title, Origin: origin,
		StartTime: "10:00", EndTime: "12:00",
	}
}

// runPass starts the enricher, enqueues every candidate, and drains the queue.
func runPass(t *testing.T, s *store.Store, geo enrich.Geocoder, weather enrich.WeatherLookup) {
	t.Helper()
	e := enrich.New(s, geo, weather, nil)
	e.Start(context.Background())
	e.EnqueueMissing(s.Snapshot())
	e.Stop()
}

// ---- tests -----------------------------------------------------------------

func TestEnrich_StaticTableHitSkipsGeocoder(t *testing.T) {
	s := seededStore(act("a1", "ねぶたの家 ワ・ラッセ", "青森駅"))
	geo := &mockGeocoder{}
	weather := &mockWeather{}

	runPass(t, s, geo, weather)

	w := s.Snapshot().Activities[0].Weather
	require.NotNil(t, w)
	assert.Equal(t, 5, w.Temperature)
	assert.Empty(t, geo.seen(), "static match must not hit the geocoder")
}

func TestEnrich_GeocoderFallback(t *testing.T) {
	s := seededStore(act("a1", "Somewhere", "Shin-Anywhere Station"))
	geo := &mockGeocoder{geocode: func(_ context.Context, q string) (enrich.Coordinates, bool, error) {
		return enrich.Coordinates{Lat: 1, Lon: 2}, true, nil
	}}
	weather := &mockWeather{}

	runPass(t, s, geo, weather)

	require.NotNil(t, s.Snapshot().Activities[0].Weather)
	require.NotEmpty(t, geo.seen())
	assert.Equal(t, "Shin-Anywhere Station", geo.seen()[0], "geocodes by origin")
}

func TestEnrich_QueryVariantsOnMiss(t *testing.T) {
	s := seededStore(act("a1", "Nowhere", "Obscure Little Place"))
	geo := &mockGeocoder{} // always "no results"
	weather := &mockWeather{}

	runPass(t, s, geo, weather)

	queries := geo.seen()
	require.Len(t, queries, 3)
	assert.Equal(t, "Obscure Little Place", queries[0])
	assert.Equal(t, "Obscure Little Place 日本", queries[1])
	assert.Equal(t, "Obscure Little", queries[2], "truncated two-token retry")

	assert.Nil(t, s.Snapshot().Activities[0].Weather)
	assert.Zero(t, weather.callCount())
}

func TestEnrich_AlreadyResolvedIsSkipped(t *testing.T) {
	a := act("a1", "浅草寺", "東京")
	a.Weather = &domain.WeatherInfo{Temperature: 10}
	s := seededStore(a)
	weather := &mockWeather{}

	runPass(t, s, &mockGeocoder{}, weather)

	assert.Zero(t, weather.callCount())
	assert.Equal(t, 10, s.Snapshot().Activities[0].Weather.Temperature, "existing weather untouched")
}

func TestEnrich_BlankActivityIsSkipped(t *testing.T) {
	s := seededStore(act("a1", "", "   "))
	geo := &mockGeocoder{}

	e := enrich.New(s, geo, &mockWeather{}, nil)
	e.Start(context.Background())
	n := e.EnqueueMissing(s.Snapshot())
	e.Stop()

	assert.Zero(t, n)
	assert.Empty(t, geo.seen())
}

func TestEnrich_DeletedActivityIsSkipped(t *testing.T) {
	s := seededStore(act("a1", "東京タワー", "東京"))
	weather := &mockWeather{}

	e := enrich.New(s, &mockGeocoder{}, weather, nil)
	e.EnqueueMissing(s.Snapshot())
	// Delete between enqueue and processing.
	require.NoError(t, s.RemoveActivity("a1"))
	e.Start(context.Background())
	e.Stop()

	assert.Zero(t, weather.callCount())
}

func TestEnrich_WeatherFailureLeavesActivityForRetry(t *testing.T) {
	s := seededStore(act("a1", "弘前城", "青森"))
	weather := &mockWeather{current: func(context.Context, enrich.Coordinates) (domain.WeatherInfo, error) {
		return domain.WeatherInfo{}, errors.New("service unavailable")
	}}

	runPass(t, s, &mockGeocoder{}, weather)
	assert.Nil(t, s.Snapshot().Activities[0].Weather)

	// The trigger condition is "weather absent", so the next pass retries.
	ok := &mockWeather{}
	runPass(t, s, &mockGeocoder{}, ok)
	assert.NotNil(t, s.Snapshot().Activities[0].Weather)
	assert.Equal(t, 1, ok.callCount())
}

func TestEnrich_MultipleActivities(t *testing.T) {
	s := seededStore(
		act("a1", "はやぶさ1号", "東京"),
		act("a2", "のっけ丼", "青森魚菜センター"),
		act("a3", "氷川神社", "大宮"),
	)
	weather := &mockWeather{}

	e := enrich.New(s, &mockGeocoder{}, weather, nil)
	e.Start(context.Background())
	n := e.EnqueueMissing(s.Snapshot())
	e.Stop()

	assert.Equal(t, 3, n)
	for _, a := range s.Snapshot().Activities {
		assert.NotNil(t, a.Weather, "activity %s", a.ID)
	}
	assert.Equal(t, 3, weather.callCount())
}
