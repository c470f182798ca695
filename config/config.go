// Package config loads biclust run configuration from YAML and the
// environment.
//
// Precedence, lowest to highest:
//  1. Defaults (Default)
//  2. YAML file (keys present in the file replace defaults)
//  3. Environment variables (BICLUST_*)
//
// The result is validated as a whole, including the options of both
// algorithms, before it is returned.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/tengben1989/biclustlib/cca"
	"github.com/tengben1989/biclustlib/las"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// CurrentVersion is the schema version written by WriteYAML.
const CurrentVersion = 1

// Environment variables recognized by Load.
const (
	EnvAlgorithm     = "BICLUST_ALGORITHM"
	EnvLogLevel      = "BICLUST_LOG_LEVEL"
	EnvSeed          = "BICLUST_SEED"
	EnvNumBiclusters = "BICLUST_NUM_BICLUSTERS"
	EnvMSRThreshold  = "BICLUST_MSR_THRESHOLD"
	EnvParallelism   = "BICLUST_PARALLELISM"
)

// Config is the complete run configuration.
type Config struct {
	Version     int         `yaml:"version" json:"version"`
	Algorithm   string      `yaml:"algorithm" json:"algorithm"`
	LogLevel    string      `yaml:"log_level" json:"log_level"`
	Parallelism int         `yaml:"parallelism" json:"parallelism"` // batch runs; 0 = GOMAXPROCS
	Input       InputConfig `yaml:"input" json:"input"`
	CCA         CCAConfig   `yaml:"cca" json:"cca"`
	LAS         LASConfig   `yaml:"las" json:"las"`
}

// InputConfig describes the delimited matrix file layout.
type InputConfig struct {
	Delimiter string `yaml:"delimiter" json:"delimiter"` // "auto", "tab" or "comma"
	Header    bool   `yaml:"header" json:"header"`       // first line holds column labels
	RowLabels bool   `yaml:"row_labels" json:"row_labels"`
}

// CCAConfig mirrors cca.Options.
type CCAConfig struct {
	NumBiclusters                 int        `yaml:"num_biclusters" json:"num_biclusters"`
	MSRThreshold                  float64    `yaml:"msr_threshold" json:"msr_threshold"`
	MultipleNodeDeletionThreshold float64    `yaml:"multiple_node_deletion_threshold" json:"multiple_node_deletion_threshold"`
	Seed                          int64      `yaml:"seed" json:"seed"`
	MinRows                       int        `yaml:"min_rows" json:"min_rows"`
	MinCols                       int        `yaml:"min_cols" json:"min_cols"`
	MultipleDeletionMinCols       int        `yaml:"multiple_deletion_min_cols" json:"multiple_deletion_min_cols"`
	InvertedRows                  bool       `yaml:"inverted_rows" json:"inverted_rows"`
	RejectDegenerate              bool       `yaml:"reject_degenerate" json:"reject_degenerate"`
	MaskRange                     *[]float64 `yaml:"mask_range,omitempty" json:"mask_range,omitempty"` // [lo, hi]
	MaxDeletionRounds             int        `yaml:"max_deletion_rounds" json:"max_deletion_rounds"`
	MaxAdditionRounds             int        `yaml:"max_addition_rounds" json:"max_addition_rounds"`
}

// LASConfig mirrors las.Options.
type LASConfig struct {
	NumBiclusters      int     `yaml:"num_biclusters" json:"num_biclusters"`
	ScoreThreshold     float64 `yaml:"score_threshold" json:"score_threshold"`
	RandomizedSearches int     `yaml:"randomized_searches" json:"randomized_searches"`
	Transform          bool    `yaml:"transform" json:"transform"`
	Seed               int64   `yaml:"seed" json:"seed"`
	MaxIterations      int     `yaml:"max_iterations" json:"max_iterations"`
}

// Default returns the configuration used when nothing is specified.
func Default() *Config {
	co, lo := cca.DefaultOptions(), las.DefaultOptions()

	return &Config{
		Version:   CurrentVersion,
		Algorithm: cca.Name,
		LogLevel:  "info",
		Input:     InputConfig{Delimiter: "auto"},
		CCA: CCAConfig{
			NumBiclusters:                 co.NumBiclusters,
			MSRThreshold:                  co.MSRThreshold,
			MultipleNodeDeletionThreshold: co.MultipleNodeDeletionThreshold,
			Seed:                          co.Seed,
			MinRows:                       co.MinRows,
			MinCols:                       co.MinCols,
			MultipleDeletionMinCols:       co.MultipleDeletionMinCols,
			InvertedRows:                  co.InvertedRows,
			RejectDegenerate:              co.RejectDegenerate,
			MaxDeletionRounds:             co.MaxDeletionRounds,
			MaxAdditionRounds:             co.MaxAdditionRounds,
		},
		LAS: LASConfig{
			NumBiclusters:      lo.NumBiclusters,
			ScoreThreshold:     lo.ScoreThreshold,
			RandomizedSearches: lo.RandomizedSearches,
			Transform:          lo.Transform,
			Seed:               lo.Seed,
			MaxIterations:      lo.MaxIterations,
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path
// (skipped when path is empty) and BICLUST_* variables, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadYAML(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadYAML overlays the keys present in the file onto c.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err = dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides applies BICLUST_* variables. Seed and num_biclusters
// apply to both algorithms; msr_threshold only to CCA.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv(EnvAlgorithm); v != "" {
		c.Algorithm = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %w", ErrInvalid, EnvSeed, v, err)
		}
		c.CCA.Seed, c.LAS.Seed = seed, seed
	}
	if v := os.Getenv(EnvNumBiclusters); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %w", ErrInvalid, EnvNumBiclusters, v, err)
		}
		c.CCA.NumBiclusters, c.LAS.NumBiclusters = n, n
	}
	if v := os.Getenv(EnvMSRThreshold); v != "" {
		t, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %w", ErrInvalid, EnvMSRThreshold, v, err)
		}
		c.CCA.MSRThreshold = t
	}
	if v := os.Getenv(EnvParallelism); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %w", ErrInvalid, EnvParallelism, v, err)
		}
		c.Parallelism = n
	}

	return nil
}

// Validate checks the top-level fields and both algorithm option sets.
func (c *Config) Validate() error {
	switch c.Algorithm {
	case cca.Name, las.Name:
	default:
		return fmt.Errorf("%w: algorithm must be %q or %q, got %q", ErrInvalid, cca.Name, las.Name, c.Algorithm)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("%w: log_level must be 'debug', 'info', 'warn', or 'error', got %q", ErrInvalid, c.LogLevel)
	}
	if c.Parallelism < 0 {
		return fmt.Errorf("%w: parallelism must be non-negative, got %d", ErrInvalid, c.Parallelism)
	}
	switch c.Input.Delimiter {
	case "auto", "tab", "comma":
	default:
		return fmt.Errorf("%w: input.delimiter must be 'auto', 'tab' or 'comma', got %q", ErrInvalid, c.Input.Delimiter)
	}
	if r := c.CCA.MaskRange; r != nil && len(*r) != 2 {
		return fmt.Errorf("%w: cca.mask_range must hold exactly [lo, hi], got %v", ErrInvalid, *r)
	}

	if err := c.CCAOptions(nil).Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := c.LASOptions(nil).Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return nil
}

// CCAOptions converts the cca section; logger may be nil.
func (c *Config) CCAOptions(logger *zap.Logger) cca.Options {
	o := cca.Options{
		NumBiclusters:                 c.CCA.NumBiclusters,
		MSRThreshold:                  c.CCA.MSRThreshold,
		MultipleNodeDeletionThreshold: c.CCA.MultipleNodeDeletionThreshold,
		Seed:                          c.CCA.Seed,
		MinRows:                       c.CCA.MinRows,
		MinCols:                       c.CCA.MinCols,
		MultipleDeletionMinCols:       c.CCA.MultipleDeletionMinCols,
		InvertedRows:                  c.CCA.InvertedRows,
		RejectDegenerate:              c.CCA.RejectDegenerate,
		MaxDeletionRounds:             c.CCA.MaxDeletionRounds,
		MaxAdditionRounds:             c.CCA.MaxAdditionRounds,
		Logger:                        logger,
	}
	if r := c.CCA.MaskRange; r != nil && len(*r) == 2 {
		o.MaskRange = &cca.Range{Lo: (*r)[0], Hi: (*r)[1]}
	}

	return o
}

// LASOptions converts the las section; logger may be nil.
func (c *Config) LASOptions(logger *zap.Logger) las.Options {
	return las.Options{
		NumBiclusters:      c.LAS.NumBiclusters,
		ScoreThreshold:     c.LAS.ScoreThreshold,
		RandomizedSearches: c.LAS.RandomizedSearches,
		Transform:          c.LAS.Transform,
		Seed:               c.LAS.Seed,
		MaxIterations:      c.LAS.MaxIterations,
		Logger:             logger,
	}
}

// SetSeed overrides the seed of both algorithms.
func (c *Config) SetSeed(seed int64) { c.CCA.Seed, c.LAS.Seed = seed, seed }

// SetNumBiclusters overrides the target count of both algorithms.
func (c *Config) SetNumBiclusters(n int) { c.CCA.NumBiclusters, c.LAS.NumBiclusters = n, n }

// WriteYAML writes the configuration to path.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err = os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
