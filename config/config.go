// Package config handles ember.toml runtime configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultBlockSize is the number of object slots in a single memory block.
const DefaultBlockSize = 1024

// Config represents an ember.toml runtime configuration.
type Config struct {
	Memory Memory `toml:"memory"`

	// Dir is the directory containing the ember.toml file (set at load time).
	Dir string `toml:"-"`
}

// Memory configures the block allocator.
type Memory struct {
	// BlockSize is the number of object slots per block.
	BlockSize int `toml:"block-size"`

	// MaxBlocks caps the total number of blocks the global allocator will
	// hand out. Zero means unlimited.
	MaxBlocks int `toml:"max-blocks"`
}

// Default returns a configuration with all values at their defaults.
func Default() *Config {
	return &Config{
		Memory: Memory{
			BlockSize: DefaultBlockSize,
			MaxBlocks: 0,
		},
	}
}

// Load parses an ember.toml file from the given directory. A missing file is
// not an error; the defaults are returned instead.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, "ember.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var c Config
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	c.Dir = dir
	c.normalize()

	return &c, nil
}

// normalize fills in defaults for unset values and clamps nonsense.
func (c *Config) normalize() {
	if c.Memory.BlockSize <= 0 {
		c.Memory.BlockSize = DefaultBlockSize
	}
	if c.Memory.MaxBlocks < 0 {
		c.Memory.MaxBlocks = 0
	}
}
