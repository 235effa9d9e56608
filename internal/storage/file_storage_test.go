package storage_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/project-explorer/backend/internal/enrich"
	"github.com/project-explorer/backend/internal/storage"
)

func TestSaveAndGet(t *testing.T) {
	fs, err := storage.NewFileStorage(t.TempDir())
	assert.NoError(t, err)
	defer fs.Close()

	lookup := &enrich.Lookup{
		Source:    enrich.SourceNPM,
		Query:     "web framework",
		FetchedAt: time.Now().Truncate(time.Second),
		Results: []enrich.Result{
			{Name: "express", Version: "4.18.2", Source: enrich.SourceNPM},
		},
	}

	assert.NoError(t, fs.Save(lookup))

	got, err := fs.Get(lookup.Key())
	assert.NoError(t, err)
	assert.Equal(t, lookup.Source, got.Source)
	assert.Equal(t, lookup.Query, got.Query)
	assert.Len(t, got.Results, 1)
	assert.Equal(t, "express", got.Results[0].Name)
}

func TestGetMissingKey(t *testing.T) {
	fs, err := storage.NewFileStorage(t.TempDir())
	assert.NoError(t, err)

	_, err = fs.Get("npm_never_seen")
	assert.Error(t, err)
}

func TestKeysWithUnsafeCharacters(t *testing.T) {
	fs, err := storage.NewFileStorage(t.TempDir())
	assert.NoError(t, err)

	lookup := &enrich.Lookup{
		Source: enrich.SourceGitHub,
		Query:  "web/framework?q=1 two",
	}
	assert.NoError(t, fs.Save(lookup))

	got, err := fs.Get(lookup.Key())
	assert.NoError(t, err)
	assert.Equal(t, lookup.Query, got.Query)
}
