// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmm

import (
	"context"
	"errors"
	"fmt"

	"github.com/akualab/viterbi/floatx"
	"github.com/golang/glog"
	"golang.org/x/sync/errgroup"
)

// Trellis holds the tables computed by the forward pass. Indices are (state, time).
//
//	Scores = | delta(0,0),   delta(0,1)   ... delta(0,T-1)   |
//	         | delta(1,0),   delta(1,1)   ... delta(1,T-1)   |
//	         ...
//	         | delta(N-1,0), delta(N-1,1) ... delta(N-1,T-1) |
//
// Back has the same shape and holds index(j,t). Column 0 of Back is unused.
type Trellis struct {
	Scores [][]float64
	Back   [][]int
}

// Len returns the number of time steps in the trellis.
func (tr *Trellis) Len() int {
	if len(tr.Scores) == 0 {
		return 0
	}
	return len(tr.Scores[0])
}

// logParams are the model parameters in the log domain.
type logParams struct {
	// Transposed: transT[j][i] = log a(i,j), so that the scan over
	// predecessors of j walks a contiguous row.
	transT [][]float64
	emit   [][]float64
	init   []float64
}

func newLogParams(m *Model) (*logParams, error) {

	n := m.NumStates()
	if n == 0 || m.NumSymbols() == 0 {
		return nil, fmt.Errorf("%w: model has %d states and %d symbols", ErrEmptyInput, n, m.NumSymbols())
	}
	if len(m.Transition) != n || len(m.Emission) != n {
		return nil, fmt.Errorf("%w: expected %d rows in transition and emission matrices, got %d and %d",
			ErrMalformedModel, n, len(m.Transition), len(m.Emission))
	}
	for i := 0; i < n; i++ {
		if len(m.Transition[i]) != n {
			return nil, fmt.Errorf("%w: transition row %d has length %d, expected %d",
				ErrMalformedModel, i, len(m.Transition[i]), n)
		}
	}

	trans, err := floatx.Apply2D(floatx.LogFunc, m.Transition)
	if err != nil {
		return nil, paramError("transition matrix", err)
	}
	emit, err := floatx.Apply2D(floatx.LogFunc, m.Emission)
	if err != nil {
		return nil, paramError("emission matrix", err)
	}
	init, err := floatx.Apply(floatx.LogFunc, m.Initial, make([]float64, n))
	if err != nil {
		return nil, paramError("initial distribution", err)
	}

	transT := floatx.MakeFloat2D(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			transT[j][i] = trans[i][j]
		}
	}
	return &logParams{transT: transT, emit: emit, init: init}, nil
}

func paramError(name string, err error) error {
	if errors.Is(err, floatx.ErrProbability) {
		return fmt.Errorf("%w: %s: %v", ErrInvalidProbability, name, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrMalformedModel, name, err)
}

// bestPredecessor returns max_i [ prev(i) + a(i,j) ] and the i that attains it.
// The first i is the seed; later values replace it only when strictly greater.
func bestPredecessor(prev, logTransToJ []float64) (best float64, arg int) {

	best = prev[0] + logTransToJ[0]
	for i := 1; i < len(prev); i++ {
		if v := prev[i] + logTransToJ[i]; v > best {
			best = v
			arg = i
		}
	}
	return
}

type forwardPass struct {
	lp    *logParams
	tr    *Trellis
	prev  []float64 // column t-1 of the score table
	cur   []float64 // column t, copied into the trellis after the barrier
	nproc int
}

// fill computes column t for target states [lo, hi).
func (fp *forwardPass) fill(t, o, lo, hi int) {
	for j := lo; j < hi; j++ {
		best, arg := bestPredecessor(fp.prev, fp.lp.transT[j])
		fp.cur[j] = best + fp.lp.emit[j][o]
		fp.tr.Back[j][t] = arg
	}
}

func (fp *forwardPass) column(t, o int) {

	n := len(fp.cur)
	if fp.nproc <= 1 {
		fp.fill(t, o, 0, n)
	} else {
		var g errgroup.Group
		chunk := (n + fp.nproc - 1) / fp.nproc
		for lo := 0; lo < n; lo += chunk {
			lo, hi := lo, min(lo+chunk, n)
			g.Go(func() error {
				fp.fill(t, o, lo, hi)
				return nil
			})
		}
		// Column t must be complete before column t+1 starts.
		_ = g.Wait()
	}
	for j, v := range fp.cur {
		fp.tr.Scores[j][t] = v
	}
	fp.prev, fp.cur = fp.cur, fp.prev
}

// ForwardPass computes the score and backpointer tables for the model.
// Zero probabilities yield -Inf scores, never errors. Model parameters
// outside [0,1] or observations outside [0,M) are reported as errors.
// workers > 1 splits the states of each time step across goroutines;
// the result does not depend on workers. ctx is checked once per time step.
func ForwardPass(ctx context.Context, m *Model, workers int) (*Trellis, error) {

	N := m.NumStates()
	T := m.Len()
	if T == 0 {
		return nil, fmt.Errorf("%w: no observations", ErrEmptyInput)
	}
	lp, err := newLogParams(m)
	if err != nil {
		return nil, err
	}
	M := len(lp.emit[0])
	if glog.V(2) {
		glog.Infof("forward pass - N: %d, M: %d, T: %d, workers: %d", N, M, T, workers)
	}

	tr := &Trellis{
		Scores: floatx.MakeFloat2D(N, T),
		Back:   floatx.MakeInt2D(N, T),
	}
	fp := &forwardPass{
		lp:    lp,
		tr:    tr,
		prev:  make([]float64, N),
		cur:   make([]float64, N),
		nproc: min(workers, N),
	}

	// Initialization.
	o := m.Observations[0]
	if o < 0 || o >= M {
		return nil, fmt.Errorf("%w: observation %d at t=0, expected [0, %d)", ErrObservationOutOfRange, o, M)
	}
	for i := 0; i < N; i++ {
		v := lp.init[i] + lp.emit[i][o]
		tr.Scores[i][0] = v
		fp.prev[i] = v
	}

	// Recursion.
	for t := 1; t < T; t++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		o = m.Observations[t]
		if o < 0 || o >= M {
			return nil, fmt.Errorf("%w: observation %d at t=%d, expected [0, %d)", ErrObservationOutOfRange, o, t, M)
		}
		fp.column(t, o)
		if glog.V(4) {
			glog.Infof("t: %6d | o: %d | delta: %v", t, o, fp.prev)
		}
	}
	return tr, nil
}

// Backtrack recovers the optimal state sequence from a trellis and returns
// it together with its log probability.
func Backtrack(tr *Trellis) (bt []int, logProb float64, err error) {

	T := tr.Len()
	if T == 0 {
		return nil, 0, fmt.Errorf("%w: empty trellis", ErrEmptyInput)
	}
	N := len(tr.Scores)
	last := make([]float64, N)
	for i := 0; i < N; i++ {
		last[i] = tr.Scores[i][T-1]
	}
	max, argmax := floatx.ArgMax(last)
	return trace(tr, argmax), max, nil
}

// legacyBacktrack ends the path where older releases did: the running max is
// seeded at zero and taken over the last backpointer column, not the scores.
// This picks state 0 unless some state's best predecessor is greater than 0,
// which has nothing to do with the path probability.
func legacyBacktrack(tr *Trellis) (bt []int, logProb float64, err error) {

	T := tr.Len()
	if T == 0 {
		return nil, 0, fmt.Errorf("%w: empty trellis", ErrEmptyInput)
	}
	var argmax int
	for i := range tr.Back {
		if v := tr.Back[i][T-1]; v > argmax {
			argmax = v
		}
	}
	return trace(tr, argmax), tr.Scores[argmax][T-1], nil
}

// trace follows the backpointers from state s at time T-1.
func trace(tr *Trellis, s int) []int {

	T := tr.Len()
	bt := make([]int, T)
	bt[T-1] = s
	for t := T - 2; t >= 0; t-- {
		bt[t] = tr.Back[bt[t+1]][t+1]
	}
	return bt
}
