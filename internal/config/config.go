// Package config handles application configuration and setup
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// File is the content of a TOML config file. Zero values mean that the
// option is not set in the file.
//
// Example:
//
//	frontend = "terminal"
//	hz = 700
//	scale = 12
//
//	[keys]
//	1 = "1"
//	q = "4"
type File struct {
	Frontend string            `toml:"frontend"`
	Hz       int               `toml:"hz"`
	Scale    int               `toml:"scale"`
	Cycles   int               `toml:"cycles"`
	Seed     uint64            `toml:"seed"`
	Keys     map[string]string `toml:"keys"`
}

// LoadFile reads and parses a TOML config file.
func LoadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var file File
	meta, err := toml.Decode(string(data), &file)
	if err != nil {
		return File{}, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return File{}, fmt.Errorf("config file %s: unknown option '%s'", path, undecoded[0])
	}
	return file, nil
}

// Apply sets all options of the config file that are set in the file and
// were not explicitly set on the command line. The explicit map contains the
// names of the command line flags that were set.
func Apply(file File, opts *options.Program, explicit map[string]bool) {
	if file.Frontend != "" && !explicit["frontend"] {
		opts.Frontend = file.Frontend
	}
	if file.Hz != 0 && !explicit["hz"] {
		opts.Hz = file.Hz
	}
	if file.Scale != 0 && !explicit["scale"] {
		opts.Scale = file.Scale
	}
	if file.Cycles != 0 && !explicit["cycles"] {
		opts.Cycles = file.Cycles
	}
	if file.Seed != 0 && !explicit["seed"] {
		opts.Seed = file.Seed
	}
	if len(file.Keys) > 0 {
		opts.Keys = file.Keys
	}
}
