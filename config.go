// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viterbi

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/akualab/viterbi/alphabet"
	"github.com/akualab/viterbi/model"
	"gopkg.in/yaml.v3"
)

// Config is the configuration of a decoding run.
type Config struct {
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	// Relative file names are resolved against DataDir.
	DataDir string `yaml:"data_dir,omitempty" json:"data_dir,omitempty"`

	Input Input `yaml:"input" json:"input"`

	Output Output `yaml:"output" json:"output"`

	Decoder Decoder `yaml:"decoder" json:"decoder"`

	Generator Generator `yaml:"generator" json:"generator"`
}

type Input struct {
	Transition   string `yaml:"transition" json:"transition"`
	Emission     string `yaml:"emission" json:"emission"`
	Initial      string `yaml:"initial" json:"initial"`
	Observations string `yaml:"observations" json:"observations"`
}

type Output struct {
	PathFile    string `yaml:"path_file,omitempty" json:"path_file,omitempty"`
	ResultsFile string `yaml:"results_file,omitempty" json:"results_file,omitempty"`
	MetricsFile string `yaml:"metrics_file,omitempty" json:"metrics_file,omitempty"`
	// Alignment adds the symbol alignment to the results file.
	Alignment bool `yaml:"alignment,omitempty" json:"alignment,omitempty"`
}

type Decoder struct {
	Alphabet          string  `yaml:"alphabet" json:"alphabet"`
	Truncate          int     `yaml:"truncate" json:"truncate"`
	Workers           int     `yaml:"workers" json:"workers"`
	Tolerance         float64 `yaml:"tolerance" json:"tolerance"`
	LegacyTermination bool    `yaml:"legacy_termination,omitempty" json:"legacy_termination,omitempty"`
}

type Generator struct {
	Seed       int64  `yaml:"seed" json:"seed"`
	Length     int    `yaml:"length" json:"length"`
	StatesFile string `yaml:"states_file,omitempty" json:"states_file,omitempty"`
}

// DefaultConfig returns the configuration used when no config file is given.
// File names match the ones used by the published data sets.
func DefaultConfig() *Config {
	return &Config{
		Input: Input{
			Transition:   "transitionMatrix.txt",
			Emission:     "emissionMatrix.txt",
			Initial:      "initialStateDistribution.txt",
			Observations: "observations.txt",
		},
		Output: Output{
			PathFile: "data.txt",
		},
		Decoder: Decoder{
			Alphabet:  alphabet.English,
			Truncate:  alphabet.DefaultTruncate,
			Workers:   1,
			Tolerance: model.DefaultTolerance,
		},
		Generator: Generator{
			Seed:       model.DefaultSeed,
			Length:     1000,
			StatesFile: "states.txt",
		},
	}
}

// ReadConfig reads a YAML config file. Fields missing in the
// file keep their default values.
func ReadConfig(fn string) (*Config, error) {

	b, err := os.ReadFile(fn)
	if err != nil {
		return nil, err
	}
	config := DefaultConfig()
	if err := yaml.Unmarshal(b, config); err != nil {
		return nil, fmt.Errorf("config file [%s]: %w", fn, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config file [%s]: %w", fn, err)
	}
	return config, nil
}

// Validate checks decoder and generator settings.
func (c *Config) Validate() error {
	switch {
	case c.Decoder.Truncate < 0:
		return fmt.Errorf("truncate is %d, must be non-negative", c.Decoder.Truncate)
	case c.Decoder.Workers < 1:
		return fmt.Errorf("workers is %d, must be at least 1", c.Decoder.Workers)
	case c.Decoder.Tolerance <= 0:
		return fmt.Errorf("tolerance is %g, must be positive", c.Decoder.Tolerance)
	case c.Generator.Length < 1:
		return fmt.Errorf("generator length is %d, must be at least 1", c.Generator.Length)
	}
	if _, err := alphabet.New(c.Decoder.Alphabet); err != nil {
		return err
	}
	return nil
}

// Path resolves fn against DataDir. Empty names stay empty.
func (c *Config) Path(fn string) string {
	if fn == "" || filepath.IsAbs(fn) || c.DataDir == "" {
		return fn
	}
	return filepath.Join(c.DataDir, fn)
}
