// Package config holds the parameters of a mesh comparison run.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultSamples is the number of random surface samples added to each
// mesh's vertices when no value is given.
const DefaultSamples = 100000

// Config is the complete input of one comparison
type Config struct {
	// OriginalPath is the reference mesh.
	OriginalPath string
	// NewPath is the candidate mesh produced upstream.
	NewPath string
	// Samples is the number of surface samples drawn per mesh; 0 uses the
	// vertices alone.
	Samples int
	// StatFile is the JSON ledger to merge metrics into; empty skips it.
	StatFile string
	// Seed fixes the sampler; 0 draws a fresh seed per run.
	Seed uint64
	// Workers bounds the goroutines per distance direction; 0 uses GOMAXPROCS.
	Workers int
}

// FileConfig is the on-disk schema. Pointer fields distinguish "absent"
// from zero so partial files only override what they name.
type FileConfig struct {
	OriginalMesh *string `json:"original_mesh,omitempty"`
	NewMesh      *string `json:"new_mesh,omitempty"`
	Samples      *int    `json:"num_random_samples,omitempty"`
	StatFile     *string `json:"stat_file,omitempty"`
	Seed         *uint64 `json:"seed,omitempty"`
	Workers      *int    `json:"workers,omitempty"`
}

// Default returns a Config with the default sample count
func Default() Config {
	return Config{Samples: DefaultSamples}
}

// Load reads a JSON config file and applies it on top of Default.
func Load(path string) (Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return Config{}, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var fc FileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := Default()
	fc.Apply(&cfg)
	return cfg, nil
}

// Apply copies every field present in fc into cfg
func (fc FileConfig) Apply(cfg *Config) {
	if fc.OriginalMesh != nil {
		cfg.OriginalPath = *fc.OriginalMesh
	}
	if fc.NewMesh != nil {
		cfg.NewPath = *fc.NewMesh
	}
	if fc.Samples != nil {
		cfg.Samples = *fc.Samples
	}
	if fc.StatFile != nil {
		cfg.StatFile = *fc.StatFile
	}
	if fc.Seed != nil {
		cfg.Seed = *fc.Seed
	}
	if fc.Workers != nil {
		cfg.Workers = *fc.Workers
	}
}

// Validate checks that the config can drive a comparison
func (c Config) Validate() error {
	var errs []error
	if c.OriginalPath == "" {
		errs = append(errs, errors.New("original mesh path is required"))
	}
	if c.NewPath == "" {
		errs = append(errs, errors.New("new mesh path is required"))
	}
	if c.Samples < 0 {
		errs = append(errs, fmt.Errorf("sample count must be >= 0, got %d", c.Samples))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("worker count must be >= 0, got %d", c.Workers))
	}
	return errors.Join(errs...)
}
