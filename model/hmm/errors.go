// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmm

// Error is the type of the sentinel errors returned by this package.
// Use errors.Is to test for them; returned errors wrap them with detail.
type Error string

func (err Error) Error() string { return string(err) }

const (
	// ErrMalformedModel reports inconsistent dimensions or rows that don't sum to one.
	ErrMalformedModel = Error("hmm: malformed model")
	// ErrInvalidProbability reports a probability that is negative, greater than one, or NaN.
	ErrInvalidProbability = Error("hmm: invalid probability")
	// ErrObservationOutOfRange reports an observation symbol outside [0, m).
	ErrObservationOutOfRange = Error("hmm: observation out of range")
	// ErrEmptyInput reports zero states, zero symbols, or zero observations.
	ErrEmptyInput = Error("hmm: empty input")
)
