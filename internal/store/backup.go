// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/lore-engine/pkg/types"
)

// Backup copies every category file into a timestamped directory under the
// configured backup root and returns that directory. The corpus lock is held
// for the duration so the snapshot is consistent across categories.
func (s *Store) Backup() (string, error) {
	stamp := time.Now().Format("20060102_150405")
	dir := filepath.Join(s.cfg.BackupDir, "backup_"+stamp)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return "", fmt.Errorf("creating backup directory: %w", err)
	}

	copied := 0
	err := s.withLock(func() error {
		for _, cat := range types.Categories {
			data, err := os.ReadFile(s.path(cat))
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			if err != nil {
				return fmt.Errorf("reading %s: %w", s.path(cat), err)
			}
			dst := filepath.Join(dir, string(cat)+".json")
			if err := os.WriteFile(dst, data, filePerm); err != nil {
				return fmt.Errorf("writing %s: %w", dst, err)
			}
			copied++
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	s.log.Info("backup complete", zap.String("dir", dir), zap.Int("files", copied))
	return dir, nil
}
