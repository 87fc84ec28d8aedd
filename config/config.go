// Package config loads on-disk defaults for the casreg CLI, so common
// invocations don't have to repeat --concurrency or the genesis seed on
// every run. CLI flags always take precedence over a loaded config.
package config

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Genesis is the chain's root (write_id, value) pair.
type Genesis struct {
	WriteID string `toml:"write_id"`
	Value   string `toml:"value"`
}

// Config is the on-disk shape of a casreg.toml file.
type Config struct {
	Concurrency int     `toml:"concurrency"`
	Genesis     Genesis `toml:"genesis"`
}

// Default returns the config used when no file is present.
func Default() Config {
	return Config{
		Concurrency: 1,
		Genesis:     Genesis{WriteID: "w0", Value: "v0"},
	}
}

// Load parses a TOML config file at path, starting from Default so that
// keys absent from the file keep their default values. It returns an error
// both for a file that cannot be read (including a missing file) and for
// malformed TOML.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "loading config %s", path)
	}
	return cfg, nil
}
