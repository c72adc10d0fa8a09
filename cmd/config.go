package cmd

import (
	"bytes"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/b14-netsim/agentsampler/sampler"
)

// FileConfig represents a sampler.yaml file. Every field is optional;
// explicitly passed CLI flags take precedence.
// All keys must be listed to satisfy KnownFields(true) strict parsing.
type FileConfig struct {
	N              int               `yaml:"n"`
	Method         string            `yaml:"method"`
	Seed           *int64            `yaml:"seed,omitempty"`
	IncludeLastRow *bool             `yaml:"include_last_row,omitempty"`
	Parametric     *ParametricConfig `yaml:"parametric,omitempty"`
}

// ParametricConfig overrides the fallback multivariate normal.
type ParametricConfig struct {
	Mean []float64   `yaml:"mean"`
	Cov  [][]float64 `yaml:"cov"`
}

// Params converts the YAML lists into fixed-size sampler parameters.
func (p *ParametricConfig) Params() (sampler.ParametricParams, error) {
	var out sampler.ParametricParams
	if len(p.Mean) != sampler.NumTraits {
		return out, errors.Errorf("parametric.mean has %d entries, want %d", len(p.Mean), sampler.NumTraits)
	}
	if len(p.Cov) != sampler.NumTraits {
		return out, errors.Errorf("parametric.cov has %d rows, want %d", len(p.Cov), sampler.NumTraits)
	}
	copy(out.Mean[:], p.Mean)
	for i, row := range p.Cov {
		if len(row) != sampler.NumTraits {
			return out, errors.Errorf("parametric.cov row %d has %d entries, want %d", i, len(row), sampler.NumTraits)
		}
		copy(out.Cov[i][:], row)
	}
	return out, nil
}

// LoadConfig parses a sampler config file with strict field checking, so
// typos in keys are errors rather than silently ignored.
func LoadConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}
	var cfg FileConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}
	return &cfg, nil
}

// applyFileConfig copies file values into cfg for every setting whose flag
// was not explicitly changed on the command line.
func applyFileConfig(cfg *sampler.Config, fc *FileConfig, changed func(flag string) bool) error {
	if fc.N != 0 && !changed("n") {
		cfg.N = fc.N
	}
	if fc.Method != "" && !changed("method") {
		cfg.Method = fc.Method
	}
	if fc.Seed != nil && !changed("seed") {
		cfg.Seed = *fc.Seed
	}
	if fc.IncludeLastRow != nil && !changed("include-last-row") {
		cfg.IncludeLastRow = *fc.IncludeLastRow
	}
	if fc.Parametric != nil {
		params, err := fc.Parametric.Params()
		if err != nil {
			return err
		}
		cfg.Parametric = &params
	}
	return nil
}
