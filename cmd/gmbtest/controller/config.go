// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package controller

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the name of the optional configuration file in a
// module's root directory.
const ConfigFile = ".gmbtest.yaml"

var ErrConfig = errors.New("gmbtest: config: ")

// Color modes of the report.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config controls which test programs are run and how.  It is read
// from a module's ConfigFile; command line flags override its values.
type Config struct {

	// Programs are module relative directories of the test programs to
	// run.  If empty the module's test programs are discovered.
	Programs []string `yaml:"programs"`

	// Color is one of "auto", "always" or "never".  Auto colors the
	// report iff it is written to a terminal.
	Color string `yaml:"color"`

	// Go is the go command which builds a program.
	Go string `yaml:"go"`

	// Timeout limits the run of a single program; zero means no limit.
	Timeout time.Duration `yaml:"timeout"`
}

// DefaultConfig returns the configuration which is used for unset
// values.
func DefaultConfig() *Config {
	return &Config{Color: ColorAuto, Go: "go"}
}

// LoadConfig reads the configuration file at given path on top of the
// default configuration.  If required is false a missing file is not
// an error and the default configuration is returned.
func LoadConfig(path string, required bool) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("%w"+"%v", ErrConfig, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w"+"%s: %v",
			ErrConfig, filepath.Base(path), err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports an unknown color mode, an empty go command or a
// negative timeout as wrapped ErrConfig error.
func (c *Config) Validate() error {
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w"+"color: unknown mode %q", ErrConfig, c.Color)
	}
	if c.Go == "" {
		return fmt.Errorf("%w"+"go: command missing", ErrConfig)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w"+"timeout: negative", ErrConfig)
	}
	return nil
}
