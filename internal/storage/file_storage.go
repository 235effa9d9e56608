package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/project-explorer/backend/internal/enrich"
)

// LookupStorage defines the interface for persisting enrichment lookups
type LookupStorage interface {
	Save(lookup *enrich.Lookup) error
	Get(key string) (*enrich.Lookup, error)
	Close() error
}

// FileStorage implements LookupStorage using the local file system
type FileStorage struct {
	baseDir string
	mu      sync.RWMutex
}

// NewFileStorage creates a new file-based storage
func NewFileStorage(baseDir string) (*FileStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileStorage{
		baseDir: baseDir,
	}, nil
}

// Save writes the lookup to a JSON file keyed by source and query
func (fs *FileStorage) Save(lookup *enrich.Lookup) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	path := filepath.Join(fs.baseDir, safeFilename(lookup.Key()))

	data, err := json.MarshalIndent(lookup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal lookup: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// Get retrieves a cached lookup from disk
func (fs *FileStorage) Get(key string) (*enrich.Lookup, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	path := filepath.Join(fs.baseDir, safeFilename(key))

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var lookup enrich.Lookup
	if err := json.Unmarshal(data, &lookup); err != nil {
		return nil, fmt.Errorf("failed to unmarshal lookup: %w", err)
	}

	return &lookup, nil
}

// Close is a no-op for file storage
func (fs *FileStorage) Close() error {
	return nil
}

// safeFilename converts a cache key to a safe filename
func safeFilename(key string) string {
	safe := ""
	for _, r := range key {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			safe += string(r)
		} else {
			safe += "_"
		}
	}
	// Limit length
	if len(safe) > 100 {
		safe = safe[:100]
	}
	return safe + ".json"
}
