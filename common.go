// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package viterbi decodes hidden messages from noisy observations
// using discrete hidden Markov models.
//
// This package reads run configurations and model data files and writes
// decoding results. The decoder is in package model/hmm and the mapping
// from states to text is in package alphabet.
package viterbi

import (
	"github.com/akualab/viterbi/model"
	"github.com/akualab/viterbi/model/hmm"
	"github.com/golang/glog"
	"github.com/google/uuid"
)

// Result is the summary of a decode written to the results file.
type Result struct {
	ID        string  `json:"id"`
	Name      string  `json:"name,omitempty"`
	Message   string  `json:"message"`
	LogProb   float64 `json:"log_prob"`
	States    int     `json:"states"`
	Symbols   int     `json:"symbols"`
	Timesteps int     `json:"timesteps"`

	// Alignment of the message symbols to time steps, if requested.
	Alignment model.Alignment `json:"alignment,omitempty"`
}

// NewResult creates a result with a new random ID.
func NewResult(m *hmm.Model, res *hmm.Result, message string) *Result {
	return &Result{
		ID:        uuid.New().String(),
		Name:      m.Name,
		Message:   message,
		LogProb:   res.LogProb,
		States:    m.NumStates(),
		Symbols:   m.NumSymbols(),
		Timesteps: m.Len(),
	}
}

// Fatal logs err and exits if err is not nil.
func Fatal(err error) {
	if err != nil {
		glog.Fatal(err)
	}
}
