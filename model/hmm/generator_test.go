// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmm

import (
	"math/rand"
	"testing"

	"github.com/akualab/viterbi/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRand(seed int64) *rand.Rand { return rand.New(rand.NewSource(seed)) }

// randomDists returns n random distributions of size k with no zeros.
func randomDists(r *rand.Rand, n, k int) [][]float64 {
	d := make([][]float64, n)
	for i := range d {
		d[i] = make([]float64, k)
		var sum float64
		for j := range d[i] {
			d[i][j] = 0.05 + r.Float64()
			sum += d[i][j]
		}
		for j := range d[i] {
			d[i][j] /= sum
		}
	}
	return d
}

func TestGeneratorDeterministicModel(t *testing.T) {

	m := &Model{
		Transition: [][]float64{{0, 1, 0}, {0, 0, 1}, {1, 0, 0}},
		Emission:   [][]float64{{1, 0}, {0, 1}, {1, 0}},
		Initial:    []float64{0, 1, 0},
	}
	gen, err := NewGenerator(m, model.DefaultSeed)
	fatalIf(t, err)
	states, obs, err := gen.Next(6)
	fatalIf(t, err)
	assert.Equal(t, []int{1, 2, 0, 1, 2, 0}, states)
	assert.Equal(t, []int{1, 0, 0, 1, 0, 0}, obs)
}

func TestGeneratorSeed(t *testing.T) {

	m := toyModel()
	g1, err := NewGenerator(m, 5)
	fatalIf(t, err)
	g2, err := NewGenerator(m, 5)
	fatalIf(t, err)

	s1, o1, err := g1.Next(500)
	fatalIf(t, err)
	s2, o2, err := g2.Next(500)
	fatalIf(t, err)
	assert.Equal(t, s1, s2)
	assert.Equal(t, o1, o2)
}

func TestGeneratorErrors(t *testing.T) {

	m := toyModel()
	m.Initial = []float64{0.3, 0.3}
	_, err := NewGenerator(m, 1)
	assert.ErrorIs(t, err, ErrMalformedModel)

	gen, err := NewGenerator(toyModel(), 1)
	fatalIf(t, err)
	_, _, err = gen.Next(0)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

// Viterbi should recover most of the hidden states of a sticky model.
func TestDecodeGenerated(t *testing.T) {

	m := &Model{
		Transition: [][]float64{{0.95, 0.05}, {0.05, 0.95}},
		Emission:   [][]float64{{0.9, 0.1}, {0.2, 0.8}},
		Initial:    []float64{0.5, 0.5},
	}
	gen, err := NewGenerator(m, model.DefaultSeed)
	fatalIf(t, err)
	ref, obs, err := gen.Next(5000)
	fatalIf(t, err)
	m.Observations = obs

	res, err := NewDecoder().Decode(bgctx(), m)
	fatalIf(t, err)
	acc, err := Accuracy(ref, res.Path)
	fatalIf(t, err)
	t.Logf("accuracy: %.3f", acc)
	require.Greater(t, acc, 0.75)
}
