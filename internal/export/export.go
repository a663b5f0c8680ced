// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export renders the corpus to files meant for reading outside the
// tool: one markdown document per entry, or a whole-corpus YAML/JSON dump.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/lore-engine/internal/lore"
	"github.com/pdiddy/lore-engine/pkg/types"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Exporter writes snapshots of a built engine's corpus.
type Exporter struct {
	eng *lore.Engine
	cfg types.ExportConfig
	log *zap.Logger
}

// New returns an Exporter over eng. Zero config fields fall back to the
// "export" directory and markdown format.
func New(eng *lore.Engine, cfg types.ExportConfig, log *zap.Logger) *Exporter {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "export"
	}
	if cfg.Format == "" {
		cfg.Format = types.ExportMarkdown
	}
	return &Exporter{eng: eng, cfg: cfg, log: log}
}

// Export runs the configured format and returns the path written.
func (x *Exporter) Export() (string, error) {
	switch x.cfg.Format {
	case types.ExportMarkdown:
		return x.Markdown()
	case types.ExportYAML:
		return x.YAML()
	case types.ExportJSON:
		return x.JSON()
	default:
		return "", fmt.Errorf("unknown export format: %q", x.cfg.Format)
	}
}

// Markdown writes one document per entry under
// <output>/markdown/<category>/<Entry_Name>.md and returns the root it wrote.
func (x *Exporter) Markdown() (string, error) {
	root := filepath.Join(x.cfg.OutputDir, "markdown")

	byCategory := make(map[types.Category][]types.Entry)
	for _, e := range x.eng.Entries() {
		byCategory[e.Category] = append(byCategory[e.Category], e)
	}

	files := 0
	for _, cat := range types.Categories {
		entries := byCategory[cat]
		if len(entries) == 0 {
			continue
		}
		dir := filepath.Join(root, string(cat))
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return "", fmt.Errorf("creating export dir: %w", err)
		}
		for _, e := range entries {
			doc := renderMarkdown(e, x.targetName)
			path := filepath.Join(dir, markdownFilename(e))
			if err := os.WriteFile(path, []byte(doc), filePerm); err != nil {
				return "", fmt.Errorf("writing %s: %w", path, err)
			}
			files++
		}
	}

	x.log.Info("exported corpus to markdown", zap.String("dir", root), zap.Int("files", files))
	return root, nil
}

func (x *Exporter) targetName(id string) (string, bool) {
	e, ok := x.eng.Entry(id)
	if !ok {
		return "", false
	}
	return e.Name, true
}

// Dump is the whole-corpus snapshot written by the YAML and JSON exports.
type Dump struct {
	ExportedAt   time.Time                        `json:"exported_at" yaml:"exported_at"`
	TotalEntries int                              `json:"total_entries" yaml:"total_entries"`
	Counts       map[types.Category]int           `json:"counts" yaml:"counts"`
	Entries      map[types.Category][]types.Entry `json:"entries" yaml:"entries"`
}

func (x *Exporter) dump() Dump {
	d := Dump{
		ExportedAt: time.Now().UTC(),
		Counts:     make(map[types.Category]int),
		Entries:    make(map[types.Category][]types.Entry),
	}
	for _, e := range x.eng.Entries() {
		d.Entries[e.Category] = append(d.Entries[e.Category], e)
		d.Counts[e.Category]++
		d.TotalEntries++
	}
	return d
}

// YAML writes the corpus dump to <output>/lore.yaml.
func (x *Exporter) YAML() (string, error) {
	data, err := yaml.Marshal(x.dump())
	if err != nil {
		return "", fmt.Errorf("encoding corpus: %w", err)
	}
	return x.writeDump("lore.yaml", data)
}

// JSON writes the corpus dump to <output>/lore.json.
func (x *Exporter) JSON() (string, error) {
	data, err := json.MarshalIndent(x.dump(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding corpus: %w", err)
	}
	return x.writeDump("lore.json", append(data, '\n'))
}

func (x *Exporter) writeDump(name string, data []byte) (string, error) {
	if err := os.MkdirAll(x.cfg.OutputDir, dirPerm); err != nil {
		return "", fmt.Errorf("creating export dir: %w", err)
	}
	path := filepath.Join(x.cfg.OutputDir, name)
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	x.log.Info("exported corpus", zap.String("path", path))
	return path, nil
}
