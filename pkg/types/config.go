package types

import "time"

// EngineConfig holds settings for the index and query engine.
type EngineConfig struct {
	// FuzzyThreshold is the minimum normalized search score, between 0 and 1,
	// for a hit to be kept (default 0.6).
	FuzzyThreshold float64 `json:"fuzzy_threshold" yaml:"fuzzy_threshold" mapstructure:"fuzzy_threshold"`

	// MaxResults is the default cap on search results (default 10).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	// MaxDepth is the default traversal depth for relationship queries (default 1).
	MaxDepth int `json:"max_depth" yaml:"max_depth" mapstructure:"max_depth"`

	// MinSimilarity is the score a suggestion must exceed to be kept (default 0.3).
	MinSimilarity float64 `json:"min_similarity" yaml:"min_similarity" mapstructure:"min_similarity"`

	// IncludeRelationships controls whether search results carry the matched
	// entry's outgoing relationship edges.
	IncludeRelationships bool `json:"include_relationships" yaml:"include_relationships" mapstructure:"include_relationships"`
}

// StoreConfig holds settings for the file-backed entry store.
type StoreConfig struct {
	// DataDir is the directory holding one JSON file per category (default "lore").
	DataDir string `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`

	// BackupDir is the directory timestamped backups are written under
	// (default "backups").
	BackupDir string `json:"backup_dir" yaml:"backup_dir" mapstructure:"backup_dir"`

	// TemplatesDir optionally points at a directory of per-category entry
	// templates that override the built-in ones.
	TemplatesDir string `json:"templates_dir,omitempty" yaml:"templates_dir,omitempty" mapstructure:"templates_dir"`

	// LockTimeout bounds how long a writer waits for the corpus lock (default 5s).
	LockTimeout time.Duration `json:"lock_timeout" yaml:"lock_timeout" mapstructure:"lock_timeout"`

	// Author is recorded in entry metadata on create.
	Author string `json:"author,omitempty" yaml:"author,omitempty" mapstructure:"author"`
}

// CheckConfig toggles consistency rule groups. The zero value runs
// everything; reference and duplicate checks always run.
type CheckConfig struct {
	// SkipDates disables event ordering and lifespan checks.
	SkipDates bool `json:"skip_dates,omitempty" yaml:"skip_dates,omitempty" mapstructure:"skip_dates"`

	// SkipHierarchy disables location containment checks.
	SkipHierarchy bool `json:"skip_hierarchy,omitempty" yaml:"skip_hierarchy,omitempty" mapstructure:"skip_hierarchy"`

	// SkipRelationships disables mutual relationship contradiction checks.
	SkipRelationships bool `json:"skip_relationships,omitempty" yaml:"skip_relationships,omitempty" mapstructure:"skip_relationships"`
}

// ExportFormat identifies an export output format.
type ExportFormat string

const (
	ExportMarkdown ExportFormat = "markdown"
	ExportYAML     ExportFormat = "yaml"
	ExportJSON     ExportFormat = "json"
)

// ExportConfig holds settings for corpus export.
type ExportConfig struct {
	// OutputDir is the directory exports are written to (default "export").
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// Format selects the export format: markdown, yaml, or json.
	Format ExportFormat `json:"format" yaml:"format" mapstructure:"format"`
}

// ServerConfig holds settings for serve mode.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// Watch controls whether the data directory is watched for changes so the
	// index refreshes without restarting the server.
	Watch bool `json:"watch" yaml:"watch" mapstructure:"watch"`

	// ShutdownTimeout bounds graceful shutdown (default 10s).
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// Config groups all component configurations.
type Config struct {
	Engine EngineConfig `json:"engine" yaml:"engine" mapstructure:"engine"`
	Store  StoreConfig  `json:"store" yaml:"store" mapstructure:"store"`
	Check  CheckConfig  `json:"check" yaml:"check" mapstructure:"check"`
	Export ExportConfig `json:"export" yaml:"export" mapstructure:"export"`
	Server ServerConfig `json:"server" yaml:"server" mapstructure:"server"`
}
