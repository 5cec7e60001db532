// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package hmm decodes discrete hidden Markov models.

Given the parameters Φ = (A, B, π) of an HMM with N states and M output
symbols, and a sequence of T observations, the decoder finds the single most
likely hidden state sequence using the Viterbi algorithm in log scale.

	delta(j, 0) = π(j) + b(j, o(0))                              j in [0, N-1]
	delta(j, t) = max_k [ delta(k, t-1) + a(k, j) ] + b(j, o(t))  t in [1, T-1]
	index(j, t) = argmax_k [ delta(k, t-1) + a(k, j) ]

	z*(T-1) = argmax_j delta(j, T-1)
	z*(t)   = index(z*(t+1), t+1)                                t in [0, T-2]

Ties are broken in favor of the lowest state index.
*/
package hmm

import (
	"fmt"
	"math"

	"github.com/akualab/viterbi/model"
	"github.com/hashicorp/go-multierror"
)

// Max number of out of range observations listed in a validation error.
const maxReportedObs = 10

// Model is a discrete HMM together with the observation sequence to decode.
// The decoder reads it but never modifies it; callers must not modify it
// while a decode is running.
type Model struct {

	// Model name.
	Name string `json:"name"`

	// State-transition probabilities. [N x N]
	// a(i,j) = P[q(t+1) = j | q(t) = i]
	Transition [][]float64 `json:"transition"`

	// Output probabilities. [N x M]
	// b(i,k) = P[o(t) = k | q(t) = i]
	Emission [][]float64 `json:"emission"`

	// Initial state distribution. [N]
	// π(i) = P[q(0) = i]
	Initial []float64 `json:"initial"`

	// Observed symbols, each in [0, M). [T]
	Observations []int `json:"observations"`
}

// NumStates returns N.
func (m *Model) NumStates() int { return len(m.Initial) }

// NumSymbols returns M.
func (m *Model) NumSymbols() int {
	if len(m.Emission) == 0 {
		return 0
	}
	return len(m.Emission[0])
}

// Len returns T, the number of observations.
func (m *Model) Len() int { return len(m.Observations) }

// Validate checks the model. All problems found are returned together.
// Each one wraps ErrEmptyInput, ErrMalformedModel, ErrInvalidProbability
// or ErrObservationOutOfRange. Zero probabilities are valid.
// tol is the max distance from one allowed for the sum of each distribution.
func (m *Model) Validate(tol float64) error {

	if m.Len() == 0 {
		return fmt.Errorf("%w: no observations", ErrEmptyInput)
	}
	if err := m.validateParams(tol); err != nil {
		return err
	}
	return m.validateObservations()
}

// validateParams checks Φ, ignoring the observations.
func (m *Model) validateParams(tol float64) error {

	n := m.NumStates()
	if n == 0 {
		return fmt.Errorf("%w: no states", ErrEmptyInput)
	}
	if m.NumSymbols() == 0 {
		return fmt.Errorf("%w: no output symbols", ErrEmptyInput)
	}
	nsym := m.NumSymbols()

	var result *multierror.Error
	if len(m.Transition) != n {
		result = multierror.Append(result, fmt.Errorf("%w: transition matrix has %d rows, expected %d",
			ErrMalformedModel, len(m.Transition), n))
	}
	if len(m.Emission) != n {
		result = multierror.Append(result, fmt.Errorf("%w: emission matrix has %d rows, expected %d",
			ErrMalformedModel, len(m.Emission), n))
	}
	result = multierror.Append(result, checkDist("initial distribution", m.Initial, n, tol))
	for i, row := range m.Transition {
		result = multierror.Append(result, checkDist(fmt.Sprintf("transition row %d", i), row, n, tol))
	}
	for i, row := range m.Emission {
		result = multierror.Append(result, checkDist(fmt.Sprintf("emission row %d", i), row, nsym, tol))
	}
	return result.ErrorOrNil()
}

func (m *Model) validateObservations() error {

	nsym := m.NumSymbols()
	var result *multierror.Error
	var count int
	for t, o := range m.Observations {
		if o >= 0 && o < nsym {
			continue
		}
		count++
		if count <= maxReportedObs {
			result = multierror.Append(result, fmt.Errorf("%w: observation %d at t=%d, expected [0, %d)",
				ErrObservationOutOfRange, o, t, nsym))
		}
	}
	if count > maxReportedObs {
		result = multierror.Append(result, fmt.Errorf("%w: %d more observations out of range",
			ErrObservationOutOfRange, count-maxReportedObs))
	}
	return result.ErrorOrNil()
}

// checkDist checks that dist is a probability distribution of the expected size.
// Returns nil or a *multierror.Error.
func checkDist(name string, dist []float64, size int, tol float64) error {

	if len(dist) != size {
		return fmt.Errorf("%w: %s has length %d, expected %d", ErrMalformedModel, name, len(dist), size)
	}
	var result *multierror.Error
	valid := true
	for k, p := range dist {
		if math.IsNaN(p) || p < 0 || p > 1 {
			result = multierror.Append(result, fmt.Errorf("%w: %s, element %d is %v",
				ErrInvalidProbability, name, k, p))
			valid = false
		}
	}
	if valid && !model.SumsToOne(dist, tol) {
		result = multierror.Append(result, fmt.Errorf("%w: %s does not sum to one", ErrMalformedModel, name))
	}
	return result.ErrorOrNil()
}
