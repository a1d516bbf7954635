/*
Package study wires the whole pipeline together: a YAML study file
names the dataset, the outcome, the seed, the candidate
specifications and the resampling plan; Run executes
Load -> Split -> Compare -> Select -> Evaluate-Holdout exactly once.
*/
package study

import (
	"os"

	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"

	"crossval/model"
	"crossval/validate"
)

// SpecConfig names one candidate and its feature terms; "A:B"
// denotes an interaction of A and B.
type SpecConfig struct {
	Name     string   `yaml:"name"`
	Features []string `yaml:"features"`
}

// PlanConfig mirrors validate.Plan in the study file.
type PlanConfig struct {
	Folds   int `yaml:"folds"`
	Repeats int `yaml:"repeats"`
}

/*
Config is a study file. Zero fields take defaults: Split 0.8, Plan
10x3, Positive the outcome level coded 0 (the source analyses'
convention; see Result.Positive for the resolved value).
*/
type Config struct {
	Dataset  string       `yaml:"dataset"`
	Outcome  string       `yaml:"outcome"`
	Seed     int64        `yaml:"seed"`
	Split    float64      `yaml:"split"`
	Positive string       `yaml:"positive"`
	Plan     PlanConfig   `yaml:"plan"`
	Specs    []SpecConfig `yaml:"specs"`
}

// Load reads and validates a study file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.Errorf("read study file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, xerrors.Errorf("parse study file %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Split == 0 {
		c.Split = 0.8
	}
	if c.Plan.Folds == 0 {
		c.Plan.Folds = 10
	}
	if c.Plan.Repeats == 0 {
		c.Plan.Repeats = 3
	}
}

func (c *Config) validate() error {
	if c.Dataset == "" {
		return xerrors.New("study: dataset path is required")
	}
	if c.Outcome == "" {
		return xerrors.New("study: outcome column is required")
	}
	if len(c.Specs) == 0 {
		return xerrors.Errorf("study: %w", model.ErrNoCandidates)
	}
	for i, s := range c.Specs {
		if s.Name == "" {
			return xerrors.Errorf("study: spec %d has no name", i)
		}
		if len(s.Features) == 0 {
			return xerrors.Errorf("study: spec %s has no features", s.Name)
		}
	}
	return nil
}

// ModelSpecs converts the configured candidates to model specs.
func (c *Config) ModelSpecs() []model.Spec {
	specs := make([]model.Spec, len(c.Specs))
	for i, s := range c.Specs {
		specs[i] = model.NewSpec(s.Name, c.Outcome, s.Features...)
	}
	return specs
}

// ResamplingPlan converts the configured plan.
func (c *Config) ResamplingPlan() validate.Plan {
	return validate.Plan{Folds: c.Plan.Folds, Repeats: c.Plan.Repeats}
}
