// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists lore entries as one JSON file per category. Writes
// go through a file lock shared by every process touching the corpus, are
// validated against the entry schema, and land atomically via a temp-file
// rename, so concurrent readers never observe a half-written category.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofrs/flock"
	"go.uber.org/zap"

	"github.com/pdiddy/lore-engine/pkg/types"
)

const (
	lockFile  = ".lore.lock"
	filePerm  = 0o644
	dirPerm   = 0o755
	lockRetry = 100 * time.Millisecond

	// DefaultListLimit caps List when the caller does not.
	DefaultListLimit = 50
)

// Sentinel errors callers branch on.
var (
	ErrNotFound        = errors.New("entry not found")
	ErrDuplicateID     = errors.New("entry id already exists")
	ErrInvalidCategory = errors.New("invalid category")
	ErrCategoryChange  = errors.New("entry category is immutable")
)

// categoryFile is the on-disk shape of one category: entries keyed by ID
// plus file-level metadata. Entries are kept raw so one undecodable record
// neither fails a read nor gets dropped by an unrelated write.
type categoryFile struct {
	Entries  map[string]json.RawMessage `json:"entries"`
	Metadata fileMetadata               `json:"metadata"`
}

type fileMetadata struct {
	LastUpdated time.Time `json:"last_updated"`
}

// Store reads and writes the corpus under a single data directory.
type Store struct {
	cfg      types.StoreConfig
	log      *zap.Logger
	validate *validator.Validate
}

// New creates the data directory if needed and returns a store over it.
// Zero config fields get defaults: data in "lore", backups in "backups",
// a 5 second lock timeout. A nil logger disables logging.
func New(cfg types.StoreConfig, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "lore"
	}
	if cfg.BackupDir == "" {
		cfg.BackupDir = "backups"
	}
	if cfg.LockTimeout <= 0 {
		cfg.LockTimeout = 5 * time.Second
	}
	if err := os.MkdirAll(cfg.DataDir, dirPerm); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &Store{cfg: cfg, log: log, validate: validator.New()}, nil
}

// DataDir returns the directory category files live in.
func (s *Store) DataDir() string { return s.cfg.DataDir }

func (s *Store) path(cat types.Category) string {
	return filepath.Join(s.cfg.DataDir, string(cat)+".json")
}

// withLock runs fn while holding the corpus write lock, polling until the
// configured timeout.
func (s *Store) withLock(fn func() error) error {
	fl := flock.New(filepath.Join(s.cfg.DataDir, lockFile))
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.LockTimeout)
	defer cancel()

	locked, err := fl.TryLockContext(ctx, lockRetry)
	if err != nil {
		return fmt.Errorf("acquiring corpus lock: %w", err)
	}
	if !locked {
		return errors.New("corpus lock held by another process")
	}
	defer fl.Unlock()

	return fn()
}

// readCategory loads one category file. A missing file is an empty category.
func (s *Store) readCategory(cat types.Category) (*categoryFile, error) {
	data, err := os.ReadFile(s.path(cat))
	if errors.Is(err, os.ErrNotExist) {
		return &categoryFile{Entries: map[string]json.RawMessage{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path(cat), err)
	}

	var cf categoryFile
	if err := json.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", s.path(cat), err)
	}
	if cf.Entries == nil {
		cf.Entries = map[string]json.RawMessage{}
	}
	return &cf, nil
}

// writeCategory stamps the file metadata and writes atomically: the new
// contents land in a temp file in the same directory, then rename over the
// old file.
func (s *Store) writeCategory(cat types.Category, cf *categoryFile) error {
	cf.Metadata.LastUpdated = time.Now().UTC()

	data, err := json.MarshalIndent(cf, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", cat, err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(s.cfg.DataDir, string(cat)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing %s: %w", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, filePerm); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting permissions on %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, s.path(cat)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing %s: %w", s.path(cat), err)
	}
	return nil
}

// Entries returns the decoded entries of one category, keyed by ID. Records
// that fail to decode are skipped with a warning so the rest of the category
// stays readable. This is the engine's read path into the store.
func (s *Store) Entries(cat types.Category) (map[string]types.Entry, error) {
	cf, err := s.readCategory(cat)
	if err != nil {
		return nil, err
	}

	entries := make(map[string]types.Entry, len(cf.Entries))
	for id, raw := range cf.Entries {
		var e types.Entry
		if err := json.Unmarshal(raw, &e); err != nil {
			s.log.Warn("skipping undecodable entry",
				zap.String("id", id),
				zap.String("category", string(cat)),
				zap.Error(err))
			continue
		}
		e.ID = id
		entries[id] = e
	}
	return entries, nil
}

// locate finds the category file holding id. It returns the category, the
// loaded file, and the raw record, or ErrNotFound.
func (s *Store) locate(id string) (types.Category, *categoryFile, json.RawMessage, error) {
	for _, cat := range types.Categories {
		cf, err := s.readCategory(cat)
		if err != nil {
			return "", nil, nil, err
		}
		if raw, ok := cf.Entries[id]; ok {
			return cat, cf, raw, nil
		}
	}
	return "", nil, nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

func decodeEntry(id string, raw json.RawMessage) (types.Entry, error) {
	var e types.Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return types.Entry{}, fmt.Errorf("decoding entry %s: %w", id, err)
	}
	e.ID = id
	return e, nil
}
