// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Segment is an interval of a state sequence where the state does not change.
type Segment struct {
	// Start index (inclusive)
	Start int `json:"s"`
	// End index (exclusive)
	End int `json:"e"`
	// State shared by all positions in the interval.
	State int `json:"state"`
	// Name of unit being aligned, empty if unknown.
	Name string `json:"n,omitempty"`
}

// Len returns the number of positions covered by the segment.
func (s *Segment) Len() int { return s.End - s.Start }

// Alignment is a sequence of contiguous segments.
type Alignment []*Segment

// Segments converts a state sequence to an Alignment.
// Consecutive elements with the same state are merged into a Segment.
func Segments(path []int) Alignment {

	if len(path) == 0 {
		return Alignment{}
	}
	seg := &Segment{Start: 0, State: path[0]}
	segs := Alignment{}
	for idx, v := range path {
		if v != seg.State {
			seg.End = idx
			segs = append(segs, seg)
			seg = &Segment{Start: idx, State: v}
		}
	}
	seg.End = len(path)
	return append(segs, seg)
}

// Check returns an error if the segments do not cover [0, n) exactly, in
// order, with no empty segment and no two neighbors sharing a state.
func (a Alignment) Check(n int) error {

	last := 0
	for i, s := range a {
		if s.Start != last {
			return fmt.Errorf("segment %d starts at %d, expected %d", i, s.Start, last)
		}
		if s.End <= s.Start {
			return fmt.Errorf("segment %d is empty: [%d, %d)", i, s.Start, s.End)
		}
		if i > 0 && a[i-1].State == s.State {
			return fmt.Errorf("segments %d and %d have the same state %d", i-1, i, s.State)
		}
		last = s.End
	}
	if last != n {
		return fmt.Errorf("segments end at %d, expected %d", last, n)
	}
	return nil
}

// String prints the alignment as JSON.
func (a Alignment) String() string {
	var b bytes.Buffer
	if err := json.NewEncoder(&b).Encode(a); err != nil {
		panic(err)
	}
	return b.String()
}
