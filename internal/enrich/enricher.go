package enrich

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/HaruLab/travel-planning/internal/domain"
	"github.com/HaruLab/travel-planning/internal/store"
)

// defaultWorkers bounds concurrent geocode/weather lookups; the public
// endpoints are shared infrastructure and the queue is in no hurry.
const defaultWorkers = 2

// queueSize bounds the job backlog. Enqueueing into a full queue drops the
// job — the activity still lacks weather, so a later pass picks it up again.
const queueSize = 64

// Enricher drains a queue of activity IDs, resolving coordinates and current
// weather for each and attaching the result to the store. Jobs are
// idempotent: an activity that was deleted, or already has weather by the
// time its job runs, is skipped.
type Enricher struct {
	store   *store.Store
	geo     Geocoder
	weather WeatherLookup
	log     *slog.Logger

	jobs      chan string
	wg        sync.WaitGroup
	startOnce sync.Once
	stopOnce  sync.Once
}

// New wires an enricher; call Start before enqueueing.
func New(s *store.Store, geo Geocoder, weather WeatherLookup, log *slog.Logger) *Enricher {
	if log == nil {
		log = slog.Default()
	}
	return &Enricher{
		store:   s,
		geo:     geo,
		weather: weather,
		log:     log,
		jobs:    make(chan string, queueSize),
	}
}

// Start launches the worker pool. Workers exit when Stop closes the queue or
// ctx is cancelled.
func (e *Enricher) Start(ctx context.Context) {
	e.startOnce.Do(func() {
		for i := 0; i < defaultWorkers; i++ {
			e.wg.Add(1)
			go func() {
				defer e.wg.Done()
				for {
					select {
					case <-ctx.Done():
						return
					case id, open := <-e.jobs:
						if !open {
							return
						}
						e.process(ctx, id)
					}
				}
			}()
		}
	})
}

// Stop closes the queue and waits for the workers to drain it.
func (e *Enricher) Stop() {
	e.stopOnce.Do(func() { close(e.jobs) })
	e.wg.Wait()
}

// Enqueue schedules one activity for enrichment. Dropped silently when the
// queue is full.
func (e *Enricher) Enqueue(id string) {
	select {
	case e.jobs <- id:
	default:
		e.log.Debug("enrichment queue full, dropping job", "activity", id)
	}
}

// EnqueueMissing schedules every activity that lacks weather and has a title
// or origin to resolve. Returns the number of jobs enqueued.
func (e *Enricher) EnqueueMissing(t domain.Trip) int {
	n := 0
	for _, a := range t.Activities {
		if a.Weather != nil {
			continue
		}
		if strings.TrimSpace(a.Title) == "" && strings.TrimSpace(a.Origin) == "" {
			continue
		}
		e.Enqueue(a.ID)
		n++
	}
	return n
}

// process runs one job end to end. All failures are logged and swallowed;
// the activity simply stays without weather until a later pass.
func (e *Enricher) process(ctx context.Context, id string) {
	trip := e.store.Snapshot()
	i := trip.IndexOf(id)
	if i < 0 {
		return // deleted since enqueue
	}
	a := trip.Activities[i]
	if a.Weather != nil {
		return // already resolved; re-enqueueing is a no-op
	}

	coords, ok := e.resolve(ctx, a)
	if !ok {
		return
	}

	info, err := e.weather.Current(ctx, coords)
	if err != nil {
		e.log.Warn("weather lookup failed", "activity", id, "error", err)
		return
	}

	if err := e.store.SetWeather(id, info); err != nil {
		e.log.Warn("attaching weather failed", "activity", id, "error", err)
	}
}

// resolve finds coordinates for the activity: static table first, then the
// external geocoder over a sequence of query variants.
func (e *Enricher) resolve(ctx context.Context, a domain.Activity) (Coordinates, bool) {
	if c, ok := lookupStatic(a.Title + " " + a.Origin); ok {
		return c, true
	}

	for _, q := range queryVariants(a.Origin) {
		c, ok, err := e.geo.Geocode(ctx, q)
		if err != nil {
			e.log.Warn("geocode failed", "query", q, "error", err)
			continue
		}
		if ok {
			return c, true
		}
	}
	return Coordinates{}, false
}

// queryVariants builds the lookup sequence for a place name: as given, with
// a localizing suffix, and truncated to its first two tokens.
func queryVariants(origin string) []string {
	origin = strings.TrimSpace(origin)
	if origin == "" {
		return nil
	}

	variants := []string{origin, origin + " 日本"}
	if fields := strings.Fields(origin); len(fields) > 2 {
		variants = append(variants, strings.Join(fields[:2], " "))
	}
	return variants
}
