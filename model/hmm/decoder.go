// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmm

import (
	"context"
	"time"

	"github.com/akualab/viterbi/model"
	"github.com/golang/glog"
)

// Stats describes one call to Decoder.Decode.
type Stats struct {
	States    int
	Symbols   int
	Timesteps int
	Forward   time.Duration
	Backtrack time.Duration
}

// Recorder is notified after every decode, successful or not.
type Recorder interface {
	Record(s Stats, err error)
}

// Decoder runs Viterbi decoding on models.
// A Decoder holds no per-decode state and is safe for concurrent use.
type Decoder struct {
	workers   int
	tolerance float64
	legacy    bool
	recorder  Recorder
}

// Option type is used to pass options to NewDecoder().
type Option func(*Decoder)

// NewDecoder creates a new decoder.
func NewDecoder(options ...Option) *Decoder {

	d := &Decoder{
		workers:   1,
		tolerance: model.DefaultTolerance,
	}

	// Set options.
	for _, option := range options {
		option(d)
	}
	if d.legacy {
		glog.Warning("decoder uses legacy termination, the final state is not chosen by score")
	}
	return d
}

// Workers sets the number of goroutines used to compute each time step.
func Workers(n int) Option {
	return func(d *Decoder) {
		if n < 1 {
			n = 1
		}
		d.workers = n
	}
}

// Tolerance sets the max deviation from one allowed in distribution sums.
func Tolerance(tol float64) Option {
	return func(d *Decoder) {
		d.tolerance = tol
	}
}

// LegacyTermination selects the final state the way older releases did.
// Only useful to reproduce historical output.
func LegacyTermination(b bool) Option {
	return func(d *Decoder) {
		d.legacy = b
	}
}

// WithRecorder sets a recorder for decode statistics.
func WithRecorder(r Recorder) Option {
	return func(d *Decoder) {
		d.recorder = r
	}
}

// Result is the output of a decode.
type Result struct {
	// Path is the most likely state sequence, one state per observation.
	Path []int
	// LogProb is the log probability of Path and the observations.
	LogProb float64
}

// Decode validates the model and returns its most likely state sequence.
func (d *Decoder) Decode(ctx context.Context, m *Model) (res *Result, err error) {

	stats := Stats{
		States:    m.NumStates(),
		Symbols:   m.NumSymbols(),
		Timesteps: m.Len(),
	}
	if d.recorder != nil {
		defer func() { d.recorder.Record(stats, err) }()
	}

	if err = m.Validate(d.tolerance); err != nil {
		return nil, err
	}

	start := time.Now()
	tr, err := ForwardPass(ctx, m, d.workers)
	if err != nil {
		return nil, err
	}
	stats.Forward = time.Since(start)

	start = time.Now()
	backtrack := Backtrack
	if d.legacy {
		backtrack = legacyBacktrack
	}
	path, logProb, err := backtrack(tr)
	if err != nil {
		return nil, err
	}
	stats.Backtrack = time.Since(start)

	glog.V(2).Infof("decoded model [%s] - T: %d, log prob: %g, forward: %v, backtrack: %v",
		m.Name, stats.Timesteps, logProb, stats.Forward, stats.Backtrack)
	return &Result{Path: path, LogProb: logProb}, nil
}
