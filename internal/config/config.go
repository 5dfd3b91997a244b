// Package config holds the run configuration for rsorg.
//
// Configuration is deliberately small: the level-1 exclusion list and
// the worker count. Defaults cover the common case; a configuration
// file is only needed to override them. Two file formats are accepted,
// chosen by extension:
//
//   - .yaml / .yml  — parsed with gopkg.in/yaml.v3
//   - .json / .jsonc — comments and trailing commas are stripped with
//     github.com/tidwall/jsonc before parsing with encoding/json
//
// The exclusion list is injected into the tree mapper rather than
// living there as a hidden constant, so tests can swap it freely.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/mmr-tortoise/rsorg/internal/model"
)

// DefaultWorkers is the worker-pool size used when no override is given.
const DefaultWorkers = 4

// Config holds the tunable settings for a run.
type Config struct {
	// ExcludedFolders lists level-1 directory names that are never
	// mapped. These are build and tooling folders that live alongside
	// project directories in a Rust workspace.
	ExcludedFolders []string `yaml:"excludedFolders" json:"excludedFolders"`

	// Workers is the number of concurrent workers used for leaf file
	// copies and aggregation file writes.
	Workers int `yaml:"workers" json:"workers"`
}

// Default returns the built-in configuration: the .cargo, .idea and
// target folders are excluded and four workers are used.
func Default() *Config {
	return &Config{
		ExcludedFolders: []string{".cargo", ".idea", "target"},
		Workers:         DefaultWorkers,
	}
}

// Load reads a configuration file and merges it over the defaults.
// Fields absent from the file keep their default values.
//
// Returns a CLIError with ExitConfigInvalid when the file cannot be
// read, has an unsupported extension, or fails validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitConfigInvalid,
			fmt.Sprintf("failed to read config file %s", path), err)
	}

	// Start from defaults so a file that sets only workers keeps the
	// default exclusion list, and vice versa.
	cfg := Default()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, model.WrapCLIError(model.ExitConfigInvalid,
				fmt.Sprintf("failed to parse YAML config %s", path), err)
		}
	case ".json", ".jsonc":
		// Strip comments and trailing commas first; config files are
		// hand-written and commonly annotated.
		if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
			return nil, model.WrapCLIError(model.ExitConfigInvalid,
				fmt.Sprintf("failed to parse JSON config %s", path), err)
		}
	default:
		return nil, model.NewCLIError(model.ExitConfigInvalid,
			fmt.Sprintf("unsupported config file extension %q (expected .yaml, .yml, .json or .jsonc)", filepath.Ext(path)))
	}

	if err := cfg.Validate(); err != nil {
		return nil, model.WrapCLIError(model.ExitConfigInvalid,
			fmt.Sprintf("invalid config file %s", path), err)
	}
	return cfg, nil
}

// Validate checks the configuration for usable values.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	for i, name := range c.ExcludedFolders {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("excludedFolders[%d] is empty", i)
		}
	}
	return nil
}

// IsExcluded reports whether a level-1 directory name is in the
// exclusion list. Matching is exact; case sensitivity follows whatever
// the platform's filesystem reported for the name.
func (c *Config) IsExcluded(name string) bool {
	for _, excluded := range c.ExcludedFolders {
		if name == excluded {
			return true
		}
	}
	return false
}
