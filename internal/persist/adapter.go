// Package persist reconciles the in-memory itinerary store with its two
// backing stores: the local SQLite cache and the remote single-document
// endpoint. Load order is remote → cache → built-in default; after the
// initial load, every store mutation writes the cache synchronously and the
// remote asynchronously, with an observable tri-state sync status.
package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/HaruLab/travel-planning/internal/domain"
	"github.com/HaruLab/travel-planning/internal/store"
)

// Status reflects the outcome of the most recent remote write.
type Status string

const (
	// StatusSaved — the last remote write succeeded (also the initial state).
	StatusSaved Status = "saved"
	// StatusSyncing — a remote write is in flight.
	StatusSyncing Status = "syncing"
	// StatusError — the last remote write failed. The local cache still holds
	// the data; nothing retries automatically.
	StatusError Status = "error"
)

// CacheStore is the local persistence the adapter depends on.
// Defined here, in the consumer package, so tests can inject a fake.
type CacheStore interface {
	SaveTrip(ctx context.Context, t domain.Trip) error
	LoadTrip(ctx context.Context) (t domain.Trip, ok bool, err error)
}

// RemoteStore is the remote endpoint the adapter depends on.
type RemoteStore interface {
	Fetch(ctx context.Context) (doc domain.Document, ok bool, err error)
	Push(ctx context.Context, t domain.Trip) error
}

// Adapter owns the load-then-sync lifecycle for one store.
type Adapter struct {
	store  *store.Store
	cache  CacheStore
	remote RemoteStore
	log    *slog.Logger

	loadOnce sync.Once
	inflight sync.WaitGroup

	mu     sync.Mutex
	status Status
}

// New wires an adapter. remote may be nil (offline mode: cache only).
func New(s *store.Store, cache CacheStore, remote RemoteStore, log *slog.Logger) *Adapter {
	if log == nil {
		log = slog.Default()
	}
	return &Adapter{store: s, cache: cache, remote: remote, log: log, status: StatusSaved}
}

// Status returns the sync indicator state.
func (a *Adapter) Status() Status {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status
}

func (a *Adapter) setStatus(s Status) {
	a.mu.Lock()
	a.status = s
	a.mu.Unlock()
}

// Load resolves the initial trip — remote endpoint first, then local cache,
// then the built-in default — seeds the store, and only then arms the save
// path. It runs at most once; later calls are no-ops. Nothing is ever
// written to either backing store before Load resolves, so a transient
// default trip can never overwrite real persisted data.
// Every failure along the chain degrades to the next source, so Load itself
// cannot fail.
func (a *Adapter) Load(ctx context.Context) {
	a.loadOnce.Do(func() {
		a.store.BeginLoad()

		trip, source := a.resolve(ctx)
		a.store.Seed(trip)
		a.store.OnChange(a.persist)
		a.log.Debug("itinerary loaded", "source", source, "activities", len(trip.Activities))
	})
}

// resolve walks the source priority chain and returns the adopted trip.
func (a *Adapter) resolve(ctx context.Context) (domain.Trip, string) {
	if a.remote != nil {
		doc, ok, err := a.remote.Fetch(ctx)
		if err != nil {
			a.log.Warn("remote load failed, falling back to local cache", "error", err)
		} else if ok {
			return doc.ToTrip(domain.DefaultTrip()), "remote"
		}
		// An empty "{}" document is a successful response carrying no data:
		// fall through rather than adopt an empty trip over a cached one.
	}

	trip, ok, err := a.cache.LoadTrip(ctx)
	if err != nil {
		a.log.Warn("cache load failed, using default trip", "error", err)
	} else if ok {
		return trip, "cache"
	}

	return domain.DefaultTrip(), "default"
}

// persist is the store's change listener: synchronous cache write, then a
// fire-and-forget remote write observable through Status. A remote failure
// neither rolls back nor retries; the cache stays authoritative until the
// next successful sync.
func (a *Adapter) persist(t domain.Trip) {
	if err := a.cache.SaveTrip(context.Background(), t); err != nil {
		// The local cache is expected to always accept writes; failure here
		// means the environment itself is broken.
		a.log.Error("local cache write failed", "error", err)
	}

	if a.remote == nil {
		return
	}

	a.setStatus(StatusSyncing)
	a.inflight.Add(1)
	go func() {
		defer a.inflight.Done()
		if err := a.remote.Push(context.Background(), t); err != nil {
			a.log.Warn("remote sync failed", "error", err)
			a.setStatus(StatusError)
			return
		}
		a.setStatus(StatusSaved)
	}()
}

// Flush blocks until all in-flight remote writes have completed.
// The CLI calls it before exiting so a just-made edit reaches the endpoint.
func (a *Adapter) Flush() {
	a.inflight.Wait()
}

// Export writes the current trip as an indented JSON document.
func (a *Adapter) Export(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(a.store.Snapshot()); err != nil {
		return fmt.Errorf("persist.Export: %w", err)
	}
	return nil
}

// ExportFile writes the export document into dir, named from the trip title
// ("travel.json" when the title is empty), and returns the full path.
func (a *Adapter) ExportFile(dir string) (string, error) {
	path := filepath.Join(dir, exportName(a.store.Snapshot().Title))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("persist.ExportFile: %w", err)
	}
	if err := a.Export(f); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("persist.ExportFile: %w", err)
	}
	return path, nil
}

// Import parses a document and adopts it wholesale: fields present replace
// state, missing fields stay unchanged. Malformed JSON aborts the operation
// with the prior state untouched. Imports persist to the local cache only —
// the remote endpoint is bypassed.
func (a *Adapter) Import(r io.Reader) error {
	var doc domain.Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return fmt.Errorf("persist.Import: %w: %v", domain.ErrValidation, err)
	}

	if err := a.store.Adopt(doc); err != nil {
		return fmt.Errorf("persist.Import: %w", err)
	}

	if err := a.cache.SaveTrip(context.Background(), a.store.Snapshot()); err != nil {
		a.log.Error("local cache write failed after import", "error", err)
	}
	return nil
}

// exportName derives the download-style filename from the trip title.
func exportName(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		title = "travel"
	}
	// Keep the name usable as a single path element.
	title = strings.NewReplacer("/", "-", string(os.PathSeparator), "-").Replace(title)
	return title + ".json"
}
