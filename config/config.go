// Package config holds the toolchain-wide tunables that the reference
// source left inconsistent across revisions (memory and stack size).
// Defaults are compiled in; an optional TOML file can override them. The
// object format version the loader accepts is isa.CurrentVersion and is
// not configurable.
package config

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config bundles the VM's sizing constants.
type Config struct {
	// MemorySize is the size in bytes of the VM's linear memory.
	MemorySize int `toml:"memory_size"`
	// StackSize is the depth, in 64-bit slots, of the VM's value stack.
	StackSize int `toml:"stack_size"`
}

// Default returns the compiled-in configuration: 640,000 bytes of memory
// and a 1024-slot stack, a reasonable pairing for real programs.
func Default() Config {
	return Config{
		MemorySize: 640_000,
		StackSize:  1024,
	}
}

// Load reads a TOML file and overlays it onto Default(). Fields absent
// from the file keep their default value.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "loading config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ErrInvalidConfig is wrapped with the offending field by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Validate rejects sizes that can't hold even a minimal program.
func (c Config) Validate() error {
	if c.MemorySize <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "memory_size must be positive, got %d", c.MemorySize)
	}
	if c.StackSize <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "stack_size must be positive, got %d", c.StackSize)
	}
	return nil
}
