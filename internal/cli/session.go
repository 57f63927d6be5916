package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/HaruLab/travel-planning/internal/cache"
	"github.com/HaruLab/travel-planning/internal/persist"
	"github.com/HaruLab/travel-planning/internal/remote"
	"github.com/HaruLab/travel-planning/internal/store"
)

// session is one fully-wired client: cache, optional remote, store, and the
// persistence adapter, loaded and ready for mutations.
type session struct {
	Store   *store.Store
	Adapter *persist.Adapter
	Log     *slog.Logger

	cache *cache.Cache
}

// openSession opens the cache, performs the initial load (remote first, then
// cache, then the built-in default), and returns the ready session. Callers
// must Close it so pending writes reach the cache and the remote.
func openSession(ctx context.Context, app *App) (*session, error) {
	level := slog.LevelWarn
	if app.Verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	path := app.CachePath
	if path == "" {
		var err error
		path, err = cache.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("cli: resolving cache path: %w", err)
		}
	}

	c, err := cache.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("cli: opening cache: %w", err)
	}

	var rc persist.RemoteStore
	if app.RemoteURL != "" {
		rc = remote.New(app.RemoteURL)
	}

	st := store.New()
	ad := persist.New(st, c, rc, log)
	ad.Load(ctx)

	return &session{Store: st, Adapter: ad, Log: log, cache: c}, nil
}

// Close flushes in-flight remote pushes and closes the cache.
func (s *session) Close() error {
	s.Adapter.Flush()
	return s.cache.Close()
}
