// Package domain contains the core data types for the Voyage itinerary planner.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (store, timeline, persist, enrich, handler).
package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// ActivityKind classifies a planned event. Transport kinds (train, bus, plane,
// walk) are the only ones for which a Destination is meaningful.
type ActivityKind string

const (
	KindTrain       ActivityKind = "train"
	KindBus         ActivityKind = "bus"
	KindPlane       ActivityKind = "plane"
	KindWalk        ActivityKind = "walk"
	KindSightseeing ActivityKind = "sightseeing"
	KindFood        ActivityKind = "food"
	KindStay        ActivityKind = "stay"
	KindOther       ActivityKind = "other"
)

// Kinds lists every valid ActivityKind in display order.
var Kinds = []ActivityKind{
	KindTrain, KindBus, KindPlane, KindWalk,
	KindSightseeing, KindFood, KindStay, KindOther,
}

// ParseKind validates a raw kind string.
// Returns ErrValidation for anything outside the known set.
func ParseKind(s string) (ActivityKind, error) {
	k := ActivityKind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: unknown activity kind %q", ErrValidation, s)
}

// IsTransport reports whether activities of this kind move the traveller
// between two places, making the Destination field meaningful.
func (k ActivityKind) IsTransport() bool {
	switch k {
	case KindTrain, KindBus, KindPlane, KindWalk:
		return true
	}
	return false
}

// Label returns the Japanese display label for the kind, matching the labels
// the itinerary was originally composed with.
func (k ActivityKind) Label() string {
	switch k {
	case KindTrain:
		return "電車"
	case KindBus:
		return "バス"
	case KindPlane:
		return "飛行機"
	case KindWalk:
		return "徒歩"
	case KindSightseeing:
		return "観光"
	case KindFood:
		return "食事"
	case KindStay:
		return "宿泊"
	default:
		return "その他"
	}
}

// Todo is a sub-task attached to an activity ("buy tickets", "reserve seats").
type Todo struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// WeatherInfo is the enrichment cache attached to an activity once its
// location has been geocoded and a current-weather lookup succeeded.
// It is cleared whenever Title or Origin changes, forcing re-resolution.
type WeatherInfo struct {
	// Temperature in whole degrees Celsius, rounded from the provider value.
	Temperature int `json:"temperature"`
	// WeatherCode is a WMO weather interpretation code (Open-Meteo vocabulary).
	WeatherCode int `json:"weatherCode"`
}

// Activity is one planned event in the trip. The JSON tags define the
// persisted document shape shared by the local cache, the remote endpoint,
// and import/export files.
type Activity struct {
	ID           string       `json:"id"`
	Kind         ActivityKind `json:"type"`
	Title        string       `json:"title"`
	Origin       string       `json:"from"`
	Destination  string       `json:"to,omitempty"`
	StartTime    string       `json:"startTime"` // "HH:MM", 24h, no date, no zone
	EndTime      string       `json:"endTime"`
	Distance     string       `json:"distance,omitempty"` // display-only annotation, e.g. "5.2km"
	Note         string       `json:"note,omitempty"`
	Price        float64      `json:"price,omitempty"` // non-negative; summed for the trip total
	URLs         []string     `json:"urls,omitempty"`
	MapEmbedCode string       `json:"mapEmbedCode,omitempty"`
	Todos        []Todo       `json:"todos,omitempty"`
	Weather      *WeatherInfo `json:"weatherInfo,omitempty"`
}

// Clone returns a deep copy, so snapshots handed to other goroutines cannot
// alias the store's slices.
func (a Activity) Clone() Activity {
	c := a
	if a.URLs != nil {
		c.URLs = append([]string(nil), a.URLs...)
	}
	if a.Todos != nil {
		c.Todos = append([]Todo(nil), a.Todos...)
	}
	if a.Weather != nil {
		w := *a.Weather
		c.Weather = &w
	}
	return c
}

// MapQuery returns the search text used for map links and embeds:
// "origin to destination" for transport legs, just the origin otherwise.
func (a Activity) MapQuery() string {
	if a.Kind.IsTransport() && a.Destination != "" {
		return a.Origin + " to " + a.Destination
	}
	return a.Origin
}

// DeriveMapEmbed builds an embeddable map snippet from the activity's
// locations. Used to populate MapEmbedCode when the user left it empty.
// Returns "" when there is no origin to point at.
func (a Activity) DeriveMapEmbed() string {
	q := strings.TrimSpace(a.MapQuery())
	if q == "" {
		return ""
	}
	return fmt.Sprintf(
		`<iframe src="https://www.google.com/maps?q=%s&output=embed" loading="lazy"></iframe>`,
		url.QueryEscape(q),
	)
}
