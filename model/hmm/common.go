// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmm

import "fmt"

// Accuracy returns the fraction of positions where the hypothesis
// state sequence matches the reference.
func Accuracy(ref, hyp []int) (float64, error) {

	if len(ref) == 0 {
		return 0, fmt.Errorf("%w: empty reference", ErrEmptyInput)
	}
	if len(ref) != len(hyp) {
		return 0, fmt.Errorf("length of ref [%d] and length of hyp [%d] don't match", len(ref), len(hyp))
	}
	var n int
	for i, s := range ref {
		if hyp[i] == s {
			n++
		}
	}
	return float64(n) / float64(len(ref)), nil
}
