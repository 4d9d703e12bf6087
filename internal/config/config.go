// Package config loads VibeLang's small set of recognized options: the
// verifier's strictness level and oracle timeout, and the formatter's
// indent width, from an optional YAML file found by Discover in a given
// directory.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Config is the full set of recognized options.
type Config struct {
	Verification VerificationConfig `yaml:"verification"`
	Formatter    FormatterConfig    `yaml:"formatter"`
}

// VerificationConfig holds the verifier's configured strictness level
// and the SMT oracle's time budget in milliseconds.
type VerificationConfig struct {
	Level     string `yaml:"level"`
	TimeoutMS int    `yaml:"timeout_ms"`
}

// FormatterConfig holds the canonical formatter's indent width.
type FormatterConfig struct {
	IndentWidth int `yaml:"indent_width"`
}

// Default returns the default configuration: hybrid verification, no
// oracle timeout, 2-space indentation.
func Default() Config {
	return Config{
		Verification: VerificationConfig{Level: "hybrid", TimeoutMS: 0},
		Formatter:    FormatterConfig{IndentWidth: 2},
	}
}

// Load reads and parses a YAML config file at path, starting from
// Default() so any field the file omits keeps its default value. A
// missing file is an error (os.IsNotExist reports true for it); callers
// that want an optional `.vibelang.yaml`/`.vbl.yaml` should use
// LoadOptional.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOptional behaves like Load but returns Default() unmodified, with no
// error, when path does not exist — the common case of no project config
// file being present.
func LoadOptional(path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// candidateNames are the config file names Discover probes for in a
// directory, in order. The CLI subcommands do not call Discover or Load;
// they take their options from their own flags.
var candidateNames = []string{".vibelang.yaml", ".vbl.yaml"}

// Discover looks for the first of candidateNames present in dir, returning
// Default() if none is found.
func Discover(dir string) (Config, error) {
	for _, name := range candidateNames {
		path := dir + string(os.PathSeparator) + name
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return Default(), nil
}
