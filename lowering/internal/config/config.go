package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries the tunable knobs of the lowering pipeline. Zero values are
// filled in from Default, so a partial YAML file is fine.
type Config struct {
	Analyzer Analyzer `yaml:"analyzer"`
	Staging  Staging  `yaml:"staging"`
}

// Analyzer configures the liveness pass.
type Analyzer struct {
	// MutatorMethods are the method names whose receiver is recorded as a
	// variadic-mutated container (the binding itself is untouched).
	MutatorMethods []string `yaml:"mutator_methods"`

	// WarnGlobalMutation controls the diagnostic emitted when a mutator
	// method is observed on a module-global name.
	WarnGlobalMutation bool `yaml:"warn_global_mutation"`
}

// Staging configures where generated source is staged before loading.
type Staging struct {
	// Dir overrides the per-process staging directory. Empty means a
	// directory under the user cache dir.
	Dir string `yaml:"dir"`

	// KeepFiles disables cleanup at shutdown (debugging aid).
	KeepFiles bool `yaml:"keep_files"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Analyzer: Analyzer{
			MutatorMethods:     []string{"append", "pop"},
			WarnGlobalMutation: true,
		},
	}
}

// Parse decodes YAML on top of the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	if len(cfg.Analyzer.MutatorMethods) == 0 {
		cfg.Analyzer.MutatorMethods = Default().Analyzer.MutatorMethods
	}
	return cfg, nil
}

// Load reads and decodes a YAML config file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}
