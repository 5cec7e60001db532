// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package floatx provides numeric helpers for working with
// probabilities in the log domain.
package floatx

import (
	"fmt"
	"math"
)

type Error string

func (err Error) Error() string { return string(err) }

const (
	ErrIndexOutOfRange = Error("floatx: index out of range")
	ErrZeroLength      = Error("floatx: zero length in slice definition")
	ErrLength          = Error("floatx: length mismatch")
	ErrProbability     = Error("floatx: value is not a probability")
)

// NegInf is the log of a zero probability.
var NegInf = math.Inf(-1)

// Log returns the natural log of probability p. A zero probability
// maps to NegInf. Values outside [0,1] and NaN return ErrProbability.
func Log(p float64) (float64, error) {
	switch {
	case math.IsNaN(p) || p < 0 || p > 1:
		return 0, fmt.Errorf("%w: %v", ErrProbability, p)
	case p == 0:
		return NegInf, nil
	}
	return math.Log(p), nil
}

type ApplyFunc func(n int, v float64) (float64, error)

// LogFunc applies Log elementwise.
var LogFunc = func(r int, v float64) (float64, error) { return Log(v) }

// MakeFloat2D allocates an n1 x n2 slice backed by a single array.
func MakeFloat2D(n1, n2 int) [][]float64 {

	buf := make([]float64, n1*n2)
	s := make([][]float64, n1)
	for i := 0; i < n1; i++ {
		s[i] = buf[i*n2 : (i+1)*n2 : (i+1)*n2]
	}
	return s
}

// MakeInt2D allocates an n1 x n2 int slice backed by a single array.
func MakeInt2D(n1, n2 int) [][]int {

	buf := make([]int, n1*n2)
	s := make([][]int, n1)
	for i := 0; i < n1; i++ {
		s[i] = buf[i*n2 : (i+1)*n2 : (i+1)*n2]
	}
	return s
}

// Check2D returns the shape of a rectangular 2D slice.
func Check2D(s [][]float64) (n1, n2 int, err error) {

	n1 = len(s)
	if n1 == 0 {
		return 0, 0, ErrZeroLength
	}
	n2 = len(s[0])
	if n2 == 0 {
		return 0, 0, ErrZeroLength
	}
	for i, row := range s {
		if len(row) != n2 {
			return 0, 0, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrLength, i, len(row), n2)
		}
	}
	return n1, n2, nil
}

// Apply function to 1D slice. If out slice is empty, the function is applied in place.
// Stops at the first error.
func Apply(fn ApplyFunc, in, out []float64) ([]float64, error) {

	n := len(in)
	if n == 0 {
		return nil, ErrZeroLength
	}
	if len(out) == 0 {
		out = in
	}
	if len(out) != n {
		return nil, ErrLength
	}
	for i := 0; i < n; i++ {
		v, err := fn(i, in[i])
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// Apply2D applies fn to every row of in. A new slice is allocated for the result.
func Apply2D(fn ApplyFunc, in [][]float64) ([][]float64, error) {

	n1, n2, err := Check2D(in)
	if err != nil {
		return nil, err
	}
	out := MakeFloat2D(n1, n2)
	for i := 0; i < n1; i++ {
		if _, err := Apply(fn, in[i], out[i]); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}
	return out, nil
}

// ArgMax returns the largest value in s and its index.
// The running max is seeded with s[0] and replaced only when a later value
// is strictly greater, so ties go to the lowest index. NegInf is a valid
// value; if every entry is NegInf the result is (NegInf, 0).
func ArgMax(s []float64) (max float64, idx int) {

	if len(s) == 0 {
		panic(ErrZeroLength)
	}
	max = s[0]
	for i := 1; i < len(s); i++ {
		if s[i] > max {
			max = s[i]
			idx = i
		}
	}
	return
}
