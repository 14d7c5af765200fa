// Package config handles jclass.toml settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/dhamidi/jclass/classfile"
)

// FileName is the name FindAndLoad looks for.
const FileName = "jclass.toml"

// Config represents a jclass.toml file.
type Config struct {
	Decode Decode `toml:"decode"`
	Output Output `toml:"output"`
	Log    Log    `toml:"log"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `toml:"-"`
}

// Decode configures how class files are decoded.
type Decode struct {
	Resolve  bool   `toml:"resolve"`
	MinMajor uint16 `toml:"min-major"`
	MaxMajor uint16 `toml:"max-major"`
}

// Output configures how decoded classes are printed.
type Output struct {
	Format string `toml:"format"`
}

// Log configures the commonlog backend.
type Log struct {
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"`
}

var formats = map[string]bool{"line": true, "json": true, "cbor": true}

// Default returns the configuration used when no jclass.toml exists.
func Default() *Config {
	return &Config{Output: Output{Format: "line"}}
}

// Load parses the jclass.toml file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	c := Default()
	md, err := toml.Decode(string(data), c)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	c.Path = path

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// FindAndLoad walks up from startDir to find a jclass.toml file and loads
// it. Without one it returns Default().
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), nil
		}
		dir = parent
	}
}

// Validate rejects settings no command can honor.
func (c *Config) Validate() error {
	if !formats[c.Output.Format] {
		return fmt.Errorf("unknown output format %q (expected line, json, or cbor)", c.Output.Format)
	}
	if c.Decode.MaxMajor != 0 && c.Decode.MinMajor > c.Decode.MaxMajor {
		return fmt.Errorf("min-major %d is greater than max-major %d", c.Decode.MinMajor, c.Decode.MaxMajor)
	}
	if c.Log.Verbosity < -4 {
		return fmt.Errorf("log verbosity %d is below -4", c.Log.Verbosity)
	}
	return nil
}

// DecodeOptions translates the [decode] table into classfile options.
// A zero max-major leaves the upper bound open.
func (c *Config) DecodeOptions() []classfile.Option {
	var opts []classfile.Option
	if c.Decode.Resolve {
		opts = append(opts, classfile.WithResolve())
	}
	if c.Decode.MinMajor != 0 || c.Decode.MaxMajor != 0 {
		max := c.Decode.MaxMajor
		if max == 0 {
			max = 0xFFFF
		}
		opts = append(opts, classfile.WithVersionRange(c.Decode.MinMajor, max))
	}
	return opts
}
