package config

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// FileName is the name of the config file looked up in the working directory.
const FileName = "typed.yaml"

const CurrentVersion = 1

type Config struct {
	Version    int         `yaml:"version"`
	Package    Package     `yaml:"package"`
	Schemas    *Schemas    `yaml:"schemas"`
	Types      []Type      `yaml:"types"`
	OpenApi    []OpenApi   `yaml:"openApi"`
	Migrations []Migration `yaml:"migrations"`

	// Strict makes type-strings that only parse leniently fail the run.
	Strict bool `yaml:"strict"`
}

type Package struct {
	Path string `yaml:"path"`
}

type Schemas struct {
	Path string `yaml:"path"`
}

// Type is a named type-string. When Table is set, the table must populate
// the type.
type Type struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
	Table       string `yaml:"table"`
}

// OpenApi points to OpenAPI files. Path may be a glob pattern.
type OpenApi struct {
	Path string `yaml:"path"`
}

// Migration points to SQL migration files. Path may be a glob pattern.
// Matched files are applied in lexical order.
type Migration struct {
	Path string `yaml:"path"`
}

func Read(configPath string) (*Config, error) {
	fileData, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf(`failed to read config file "%s": %w`, configPath, err)
	}

	var config Config
	if err := yaml.Unmarshal(fileData, &config); err != nil {
		return nil, fmt.Errorf(`failed to unmarshal config file "%s": %w`, configPath, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf(`invalid config file "%s": %w`, configPath, err)
	}

	return &config, nil
}

// Validate checks the parts of the config that can be checked without
// reading the files it points to. All problems are returned.
func (c *Config) Validate() error {
	var errs error

	if c.Version != CurrentVersion {
		errs = multierr.Append(errs, fmt.Errorf("unsupported version %d", c.Version))
	}

	if len(c.Package.Path) == 0 {
		errs = multierr.Append(errs, errors.New("package.path is required"))
	}

	names := make(map[string]bool, len(c.Types))
	for i, t := range c.Types {
		if len(t.Name) == 0 {
			errs = multierr.Append(errs, fmt.Errorf("types[%d]: name is required", i))
			continue
		}

		if names[t.Name] {
			errs = multierr.Append(errs, fmt.Errorf(`types[%d]: duplicate name "%s"`, i, t.Name))
		}

		names[t.Name] = true
	}

	return errs
}
