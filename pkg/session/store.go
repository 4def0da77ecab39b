package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// ErrNoIdentity is returned by Save when the mandatory identity field is
// missing. No file is written in that case; the caller decides whether to
// apologize and stop.
var ErrNoIdentity = errors.New("session: record has no identity field")

// Store persists completed (or partially completed) records.
type Store interface {
	// Save writes the record and returns the file path. Saving the same
	// record again rewrites the same file (last write wins), so a derived
	// summary can be merged in after the initial save.
	Save(rec *Record) (string, error)
}

// JSONStore writes one indented JSON document per record into a fixed
// directory, named by sanitized identity and save timestamp.
type JSONStore struct {
	dir    string
	suffix string

	mu    sync.Mutex
	paths map[string]string // record ID -> file path from the first save

	// now is swappable for tests.
	now func() time.Time
}

// NewJSONStore creates a store writing into dir. The suffix is inserted
// between the identity and the timestamp (e.g. "_feedback"); pass "" for
// none. The directory is created if missing.
func NewJSONStore(dir, suffix string) (*JSONStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	return &JSONStore{
		dir:    dir,
		suffix: suffix,
		paths:  make(map[string]string),
		now:    time.Now,
	}, nil
}

// Save persists the record. The first save fixes the filename; later saves
// of the same record overwrite it in place.
func (s *JSONStore) Save(rec *Record) (string, error) {
	identity := rec.Identity()
	if identity == "" {
		return "", ErrNoIdentity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path, ok := s.paths[rec.ID()]
	if !ok {
		stamp := s.now().Format("20060102_150405")
		name := Sanitize(identity) + s.suffix + "_" + stamp + ".json"
		path = filepath.Join(s.dir, name)
	}

	data, err := json.MarshalIndent(rec.Snapshot(), "", "    ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal record: %w", err)
	}

	// Write to temp file first, then rename (atomic write)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to rename temp file: %w", err)
	}

	s.paths[rec.ID()] = path
	return path, nil
}

// Sanitize turns an identity string into a filesystem-safe name: lowercase,
// spaces to underscores, everything else outside [a-z0-9_-] dropped.
func Sanitize(identity string) string {
	lowered := strings.ToLower(strings.TrimSpace(identity))
	var b strings.Builder
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "unknown"
	}
	return b.String()
}
