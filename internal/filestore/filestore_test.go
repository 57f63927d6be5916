package filestore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HaruLab/travel-planning/internal/domain"
	"github.com/HaruLab/travel-planning/internal/filestore"
)

func tempStore(t *testing.T) (*filestore.FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "itinerary.json")
	return filestore.New(path), path
}

func TestRead_MissingFileYieldsEmptyDocument(t *testing.T) {
	fs, _ := tempStore(t)

	doc, err := fs.Read()
	require.NoError(t, err)
	assert.True(t, doc.Empty())
}

func TestRead_EmptyFileYieldsEmptyDocument(t *testing.T) {
	fs, path := tempStore(t)
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o644))

	doc, err := fs.Read()
	require.NoError(t, err)
	assert.True(t, doc.Empty())
}

func TestRead_MalformedFileIsAnError(t *testing.T) {
	fs, path := tempStore(t)
	require.NoError(t, os.WriteFile(path, []byte(`{"items": [`), 0o644))

	_, err := fs.Read()
	assert.Error(t, err)
}

func TestWriteRead_RoundTrip(t *testing.T) {
	fs, _ := tempStore(t)
	want := domain.DocumentFrom(domain.Trip{
		Title: "青森の旅",
		Date:  "2026年1月",
		Activities: []domain.Activity{{
			ID: "a1", Kind: domain.KindTrain, Title: "はやぶさ1号",
			Origin: "東京", Destination: "新青森",
			StartTime: "08:20", EndTime: "11:25", Price: 17670,
		}},
	})

	require.NoError(t, fs.Write(want))

	got, err := fs.Read()
	require.NoError(t, err)
	require.NotNil(t, got.Items)
	assert.Equal(t, "青森の旅", *got.Title)
	assert.Equal(t, "はやぶさ1号", (*got.Items)[0].Title)
}

func TestWrite_ReplacesDocumentInFull(t *testing.T) {
	fs, _ := tempStore(t)
	require.NoError(t, fs.Write(domain.DocumentFrom(domain.Trip{
		Title:      "first",
		Activities: []domain.Activity{{ID: "a1", Title: "one"}},
	})))

	require.NoError(t, fs.Write(domain.DocumentFrom(domain.Trip{Title: "second"})))

	got, err := fs.Read()
	require.NoError(t, err)
	assert.Equal(t, "second", *got.Title)
	assert.Empty(t, *got.Items, "no merge: old items are gone")
}

func TestWrite_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "itinerary.json")
	fs := filestore.New(path)

	require.NoError(t, fs.Write(domain.DocumentFrom(domain.Trip{Title: "ok"})))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}
