// Package filestore persists the itinerary document as a single JSON file on
// disk, the whole storage engine behind the remote endpoint. Every write
// replaces the document in full; there is no merge and no history.
package filestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/HaruLab/travel-planning/internal/domain"
)

// FileStore serializes reads and writes of one backing file.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// New returns a store over path. The file is created lazily on first write.
func New(path string) *FileStore {
	return &FileStore{path: path}
}

// Read returns the persisted document. A missing or empty backing file is
// not an error: it yields an empty document (served as "{}"), matching the
// behavior clients rely on for first-run detection.
func (f *FileStore) Read() (domain.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return domain.Document{}, nil
	}
	if err != nil {
		return domain.Document{}, fmt.Errorf("filestore.Read: %w", err)
	}
	if strings.TrimSpace(string(raw)) == "" {
		return domain.Document{}, nil
	}

	var doc domain.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.Document{}, fmt.Errorf("filestore.Read: parse: %w", err)
	}
	return doc, nil
}

// Write replaces the backing file with the document. The write goes through
// a temp file and a rename so a crash mid-write cannot corrupt the previous
// document.
func (f *FileStore) Write(doc domain.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("filestore.Write: encode: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("filestore.Write: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".itinerary-*.json")
	if err != nil {
		return fmt.Errorf("filestore.Write: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("filestore.Write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("filestore.Write: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("filestore.Write: %w", err)
	}
	return nil
}
