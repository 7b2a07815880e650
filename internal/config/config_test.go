package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultSamples, cfg.Samples)
	assert.Zero(t, cfg.Seed)
	assert.Zero(t, cfg.Workers)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "run.json", `{"original_mesh": "data/bunny.obj", "seed": 9}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "data/bunny.obj", cfg.OriginalPath)
	assert.Equal(t, uint64(9), cfg.Seed)
	assert.Equal(t, DefaultSamples, cfg.Samples)
	assert.Empty(t, cfg.StatFile)
}

func TestLoadAllFields(t *testing.T) {
	path := writeConfig(t, "run.json", `{
		"original_mesh": "a.obj",
		"new_mesh": "b.stl",
		"num_random_samples": 0,
		"stat_file": "out.json",
		"seed": 3,
		"workers": 2
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	want := Config{
		OriginalPath: "a.obj",
		NewPath:      "b.stl",
		Samples:      0,
		StatFile:     "out.json",
		Seed:         3,
		Workers:      2,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Config mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyOnlyOverridesPresentFields(t *testing.T) {
	samples, path := 0, "override.obj"
	cfg := Config{OriginalPath: "a.obj", NewPath: "b.obj", Samples: 50, Seed: 4}

	FileConfig{Samples: &samples, NewMesh: &path}.Apply(&cfg)

	want := Config{OriginalPath: "a.obj", NewPath: "override.obj", Samples: 0, Seed: 4}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(writeConfig(t, "run.yaml", `{}`))
	assert.ErrorContains(t, err, ".json extension")

	_, err = Load(writeConfig(t, "run.json", `{"seed": "x"}`))
	assert.ErrorContains(t, err, "failed to parse")

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "failed to read")
}

func TestValidate(t *testing.T) {
	valid := Config{OriginalPath: "a.obj", NewPath: "b.obj", Samples: 10}
	assert.NoError(t, valid.Validate())

	err := Config{Samples: -1, Workers: -2}.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "original mesh path is required")
	assert.ErrorContains(t, err, "new mesh path is required")
	assert.ErrorContains(t, err, "sample count")
	assert.ErrorContains(t, err, "worker count")
}
