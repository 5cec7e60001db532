// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viterbi

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/akualab/viterbi/alphabet"
)

func TestConfig(t *testing.T) {

	fn := filepath.Join(t.TempDir(), "config.yaml")
	t.Logf("Config File: %s.", fn)
	err := os.WriteFile(fn, []byte(config), 0644)
	CheckError(t, err)

	// Read config.
	config, e := ReadConfig(fn)
	CheckError(t, e)
	t.Logf("Config: %+v", config)

	if config.Name != "secret" {
		t.Fatalf("Name is [%s]. Expected \"secret\".", config.Name)
	}
	if config.Input.Observations != "obs.txt" {
		t.Fatalf("Observations is [%s]. Expected \"obs.txt\".", config.Input.Observations)
	}
	if config.Path(config.Input.Observations) != filepath.Join("/data/hmm", "obs.txt") {
		t.Fatalf("Path is [%s].", config.Path(config.Input.Observations))
	}
	// Not in file, keeps default.
	if config.Input.Transition != "transitionMatrix.txt" {
		t.Fatalf("Transition is [%s]. Expected default.", config.Input.Transition)
	}
	if config.Decoder.Truncate != 0 {
		t.Fatalf("Truncate is [%d]. Expected 0.", config.Decoder.Truncate)
	}
	if config.Decoder.Workers != 4 {
		t.Fatalf("Workers is [%d]. Expected 4.", config.Decoder.Workers)
	}
	if config.Decoder.Alphabet != alphabet.English {
		t.Fatalf("Alphabet is [%q]. Expected default.", config.Decoder.Alphabet)
	}
	if config.Output.ResultsFile != "results.json" {
		t.Fatalf("ResultsFile is [%s].", config.Output.ResultsFile)
	}
}

func TestConfigInvalid(t *testing.T) {

	dir := t.TempDir()
	for i, s := range []string{
		"decoder: {truncate: -1}",
		"decoder: {workers: 0}",
		"decoder: {tolerance: 0}",
		"decoder: {alphabet: \"aa\"}",
		"generator: {length: 0}",
		"decoder: [",
	} {
		fn := filepath.Join(dir, "bad.yaml")
		CheckError(t, os.WriteFile(fn, []byte(s), 0644))
		if _, err := ReadConfig(fn); err == nil {
			t.Errorf("case %d: expected error for config %q", i, s)
		}
	}

	if _, err := ReadConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDefaultConfig(t *testing.T) {

	c := DefaultConfig()
	CheckError(t, c.Validate())
	if c.Decoder.Truncate != alphabet.DefaultTruncate {
		t.Fatalf("Truncate is [%d]. Expected %d.", c.Decoder.Truncate, alphabet.DefaultTruncate)
	}
	if c.Path("a.txt") != "a.txt" {
		t.Fatalf("Path is [%s].", c.Path("a.txt"))
	}
	if c.Path("") != "" {
		t.Fatal("empty path resolved")
	}
}

const config string = `
name: secret
data_dir: /data/hmm
input:
  observations: obs.txt
output:
  results_file: results.json
decoder:
  truncate: 0
  workers: 4
`
