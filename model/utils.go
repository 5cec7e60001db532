// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// Comparef64 returns true if |f1-f2| <= tol.
func Comparef64(f1, f2, tol float64) bool {
	return math.Abs(f2-f1) <= tol
}

// SumsToOne returns true if the values in dist add up to one within tol.
func SumsToOne(dist []float64, tol float64) bool {
	return Comparef64(floats.Sum(dist), 1.0, tol)
}

// RandIntFromDist draws an index given a discrete prob distribution.
func RandIntFromDist(dist []float64, r *rand.Rand) (int, error) {
	N := len(dist)
	if N == 0 {
		return -1, fmt.Errorf("prob distribution has len 0")
	}
	ran := r.Float64()
	cum := 0.0
	for i := 0; i < N; i++ {
		cum += dist[i]
		if ran < cum {
			return i, nil
		}
	}
	if !Comparef64(cum, 1.0, DefaultTolerance) {
		return -1, fmt.Errorf("distribution sums to %f, not 1", cum)
	}
	// Rounding left ran just above cum; use the last state with mass.
	for i := N - 1; i >= 0; i-- {
		if dist[i] > 0 {
			return i, nil
		}
	}
	return N - 1, nil
}
