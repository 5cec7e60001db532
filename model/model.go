// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package model has helpers shared by the discrete models in this module.
package model

const (
	// DefaultSeed provided for model implementation.
	DefaultSeed = 33

	// DefaultTolerance is the max distance from one allowed
	// when checking that a distribution sums to one.
	DefaultTolerance = 0.001
)

// The Sampler type generates random data using the model.
type Sampler interface {
	// Next returns a hidden state sequence of length n and the
	// observations emitted along it.
	Next(n int) (states, obs []int, err error)
}
