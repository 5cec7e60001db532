// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package alphabet

import (
	"testing"

	"github.com/akualab/viterbi/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {

	a := Default()
	require.Equal(t, 27, a.Len())

	r, err := a.Symbol(0)
	require.NoError(t, err)
	assert.Equal(t, 'a', r)

	r, err = a.Symbol(25)
	require.NoError(t, err)
	assert.Equal(t, 'z', r)

	r, err = a.Symbol(26)
	require.NoError(t, err)
	assert.Equal(t, ' ', r)

	_, err = a.Symbol(27)
	assert.Error(t, err)
	_, err = a.Symbol(-1)
	assert.Error(t, err)
}

func TestNew(t *testing.T) {

	a, err := New("xyz")
	require.NoError(t, err)
	assert.Equal(t, 3, a.Len())
	assert.Equal(t, "xyz", a.String())

	_, err = New("")
	assert.Error(t, err)

	_, err = New("abca")
	assert.Error(t, err)

	_, err = New("a\xffb")
	assert.Error(t, err)
}

func TestCollapse(t *testing.T) {

	a := Default()
	cases := []struct {
		path     []int
		truncate int
		expected string
	}{
		{[]int{0, 0, 1, 1}, 0, "ab"},
		{[]int{7, 7, 4, 11, 11, 11, 11, 14, 26, 26}, 0, "helo "},
		{[]int{7, 7, 4, 11, 11, 11, 11, 14, 26, 26}, 2, "helo"},
		// Repeats separated by another state are kept.
		{[]int{0, 1, 0}, 0, "aba"},
		{[]int{3, 3, 3, 3}, 0, "d"},
		{[]int{1, 2, 3}, 3, ""},
		{[]int{1, 2, 3}, 5, ""},
		{[]int{1, 2, 3}, -1, "bcd"},
		{nil, 0, ""},
	}
	for _, c := range cases {
		msg, err := a.Collapse(c.path, c.truncate)
		require.NoError(t, err)
		assert.Equal(t, c.expected, msg, "path: %v, truncate: %d", c.path, c.truncate)
	}
}

func TestCollapseDefaultTruncate(t *testing.T) {

	path := make([]int, 30)
	for i := range path {
		path[i] = i % 27
	}
	msg, err := Default().Collapse(path, DefaultTruncate)
	require.NoError(t, err)
	// No adjacent repeats: one symbol per kept state.
	assert.Len(t, msg, 20)
	assert.Equal(t, "abcdefghijklmnopqrst", msg)
}

func TestCollapseUnknownState(t *testing.T) {

	a, err := New("ab")
	require.NoError(t, err)
	_, err = a.Collapse([]int{0, 1, 2}, 0)
	assert.Error(t, err)

	// Dropped states are not looked up.
	msg, err := a.Collapse([]int{0, 1, 2}, 1)
	require.NoError(t, err)
	assert.Equal(t, "ab", msg)
}

func TestAlign(t *testing.T) {

	a, err := New("ab ")
	require.NoError(t, err)
	path := []int{0, 0, 2, 1, 1, 1, 0, 0}
	segs, err := a.Align(path, 2)
	require.NoError(t, err)
	require.Len(t, segs, 3)
	assert.NoError(t, segs.Check(len(path)-2))
	assert.Equal(t, model.Segment{Start: 0, End: 2, State: 0, Name: "a"}, *segs[0])
	assert.Equal(t, model.Segment{Start: 2, End: 3, State: 2, Name: " "}, *segs[1])
	assert.Equal(t, model.Segment{Start: 3, End: 6, State: 1, Name: "b"}, *segs[2])

	segs, err = a.Align(path, len(path))
	require.NoError(t, err)
	assert.Empty(t, segs)

	_, err = a.Align([]int{0, 3}, 0)
	assert.Error(t, err)
}
