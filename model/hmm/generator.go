// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmm

import (
	"fmt"
	"math/rand"

	"github.com/akualab/viterbi/model"
)

// Generator generates random observations using an hmm model.
// Not safe to use with multiple goroutines.
type Generator struct {
	hmm *Model
	r   *rand.Rand
}

var _ model.Sampler = (*Generator)(nil)

// NewGenerator returns an hmm data generator. The observations in m are ignored.
func NewGenerator(m *Model, seed int64) (*Generator, error) {

	if err := m.validateParams(model.DefaultTolerance); err != nil {
		return nil, err
	}
	return &Generator{
		hmm: m,
		r:   rand.New(rand.NewSource(seed)),
	}, nil
}

// Next returns a random state sequence of length n and the observations emitted along it.
func (gen *Generator) Next(n int) (states, obs []int, err error) {

	if n <= 0 {
		return nil, nil, fmt.Errorf("%w: sequence length is %d", ErrEmptyInput, n)
	}
	states = make([]int, n)
	obs = make([]int, n)

	dist := gen.hmm.Initial
	for t := 0; t < n; t++ {
		s, e := model.RandIntFromDist(dist, gen.r)
		if e != nil {
			return nil, nil, fmt.Errorf("failed to draw state at t=%d: %w", t, e)
		}
		o, e := model.RandIntFromDist(gen.hmm.Emission[s], gen.r)
		if e != nil {
			return nil, nil, fmt.Errorf("failed to draw observation at t=%d: %w", t, e)
		}
		states[t] = s
		obs[t] = o
		dist = gen.hmm.Transition[s]
	}
	return states, obs, nil
}
