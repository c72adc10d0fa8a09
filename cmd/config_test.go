package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/b14-netsim/agentsampler/sampler"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sampler.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func noneChanged(string) bool { return false }

func TestLoadConfig_AllFields(t *testing.T) {
	path := writeConfig(t, `
n: 250
method: scott
seed: 7
include_last_row: true
parametric:
  mean: [0.1, 0.2, 0.3]
  cov:
    - [0.01, 0, 0]
    - [0, 0.02, 0]
    - [0, 0, 0.03]
`)
	fc, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 250, fc.N)
	assert.Equal(t, "scott", fc.Method)
	require.NotNil(t, fc.Seed)
	assert.Equal(t, int64(7), *fc.Seed)
	require.NotNil(t, fc.IncludeLastRow)
	assert.True(t, *fc.IncludeLastRow)

	params, err := fc.Parametric.Params()
	require.NoError(t, err)
	assert.Equal(t, sampler.Vector{0.1, 0.2, 0.3}, params.Mean)
	assert.Equal(t, 0.02, params.Cov[1][1])
}

func TestLoadConfig_UnknownKey_Rejected(t *testing.T) {
	// GIVEN a config with a typo in a key
	path := writeConfig(t, "n: 10\nmethd: scott\n")

	// WHEN loaded
	_, err := LoadConfig(path)

	// THEN strict parsing reports the typo
	require.Error(t, err)
	assert.Contains(t, err.Error(), "methd")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "none.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist), "got %v", err)
	assert.Contains(t, err.Error(), "reading config: ")
}

func TestParametricConfig_WrongShapes(t *testing.T) {
	tests := []struct {
		name string
		cfg  ParametricConfig
		msg  string
	}{
		{"short mean", ParametricConfig{Mean: []float64{0.1}, Cov: [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}}, "mean"},
		{"two cov rows", ParametricConfig{Mean: []float64{0.1, 0.2, 0.3}, Cov: [][]float64{{1, 0, 0}, {0, 1, 0}}}, "2 rows"},
		{"ragged cov", ParametricConfig{Mean: []float64{0.1, 0.2, 0.3}, Cov: [][]float64{{1, 0, 0}, {0, 1}, {0, 0, 1}}}, "row 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cfg.Params()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestApplyFileConfig_ExplicitFlagsWin(t *testing.T) {
	// GIVEN a config file setting n and seed
	seed := int64(99)
	fc := &FileConfig{N: 300, Method: "silverman", Seed: &seed}
	cfg := sampler.Config{N: 1000, Method: "normal_reference", Seed: 42}

	// WHEN only --n was passed explicitly
	changed := func(flag string) bool { return flag == "n" }
	require.NoError(t, applyFileConfig(&cfg, fc, changed))

	// THEN n keeps the flag value and the rest come from the file
	assert.Equal(t, 1000, cfg.N)
	assert.Equal(t, "silverman", cfg.Method)
	assert.Equal(t, int64(99), cfg.Seed)
	assert.Nil(t, cfg.Parametric)
}

func TestApplyFileConfig_EmptyFileKeepsFlagDefaults(t *testing.T) {
	cfg := sampler.Config{N: 1000, Method: "normal_reference", Seed: 42}
	require.NoError(t, applyFileConfig(&cfg, &FileConfig{}, noneChanged))
	assert.Equal(t, sampler.Config{N: 1000, Method: "normal_reference", Seed: 42}, cfg)
}

func TestApplyFileConfig_BadParametric(t *testing.T) {
	cfg := sampler.Config{N: 1}
	err := applyFileConfig(&cfg, &FileConfig{Parametric: &ParametricConfig{Mean: []float64{1}}}, noneChanged)
	assert.Error(t, err)
}
