// Package storage holds the driven persistence adapters: the seen-posts
// file and the SQL analytics repository.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"painradar/internal/ports"
)

// seenEnvelope is the on-disk shape of the seen-posts file.
type seenEnvelope struct {
	Posts     []string  `json:"posts"`
	UpdatedAt time.Time `json:"updated_at"`
	Count     int       `json:"count"`
}

// SeenFile persists the seen-posts identifiers as a JSON file.
type SeenFile struct {
	path string
}

var _ ports.SeenStore = (*SeenFile)(nil)

// NewSeenFile wires the file path. The file does not need to exist yet.
func NewSeenFile(path string) *SeenFile {
	return &SeenFile{path: path}
}

// Load reads the persisted identifiers. A missing file is an empty set.
func (s *SeenFile) Load(_ context.Context) ([]string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	var envelope seenEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	return envelope.Posts, nil
}

// Save writes the identifiers atomically via a temp file rename.
func (s *SeenFile) Save(_ context.Context, ids []string) error {
	envelope := seenEnvelope{
		Posts:     ids,
		UpdatedAt: time.Now().UTC(),
		Count:     len(ids),
	}

	raw, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return fmt.Errorf("encode seen posts: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".seen-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}
