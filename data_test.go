// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viterbi

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akualab/viterbi/alphabet"
	"github.com/akualab/viterbi/model/hmm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadMatrix(t *testing.T) {

	in := "0.9 0.1\n\n  0.2\t0.8 \n"
	m, err := ReadMatrix(strings.NewReader(in))
	CheckError(t, err)
	require.Len(t, m, 2)
	CompareSliceFloat(t, []float64{0.9, 0.1}, m[0], "row 0", 1e-12)
	CompareSliceFloat(t, []float64{0.2, 0.8}, m[1], "row 1", 1e-12)

	_, err = ReadMatrix(strings.NewReader("0.1 0.9\n0.5 x\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestReadFloatsAndInts(t *testing.T) {

	v, err := ReadFloats(strings.NewReader("0.6\n0.4\n"))
	CheckError(t, err)
	CompareSliceFloat(t, []float64{0.6, 0.4}, v, "floats", 1e-12)

	// Observations may be on one line or many.
	obs, err := ReadInts(strings.NewReader("0 0 1\n1\n"))
	CheckError(t, err)
	CompareSliceInt(t, []int{0, 0, 1, 1}, obs, "ints")

	_, err = ReadInts(strings.NewReader("0 1.5"))
	assert.Error(t, err)
}

func TestReadIntsLongLine(t *testing.T) {

	// Larger than the default bufio.Scanner token size.
	n := 200000
	var sb strings.Builder
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			sb.WriteString("0 ")
		} else {
			sb.WriteString("1 ")
		}
	}
	obs, err := ReadInts(strings.NewReader(sb.String()))
	CheckError(t, err)
	assert.Len(t, obs, n)
	assert.Equal(t, 1, obs[n-1])
}

func TestWriteInts(t *testing.T) {

	path := []int{0, 26, 3, 3}
	var buf bytes.Buffer
	CheckError(t, WriteInts(&buf, path))
	assert.Equal(t, "0\n26\n3\n3\n", buf.String())

	fn := filepath.Join(t.TempDir(), "data.txt")
	CheckError(t, WriteIntsFile(fn, path))
	back, err := ReadIntsFile(fn)
	CheckError(t, err)
	CompareSliceInt(t, path, back, "read back")
}

func TestResults(t *testing.T) {

	m := &hmm.Model{
		Name:         "toy",
		Transition:   [][]float64{{0.9, 0.1}, {0.1, 0.9}},
		Emission:     [][]float64{{0.9, 0.1}, {0.2, 0.8}},
		Initial:      []float64{0.6, 0.4},
		Observations: []int{0, 0, 1, 1},
	}
	res := &hmm.Result{Path: []int{0, 0, 1, 1}, LogProb: -3.68}
	r1 := NewResult(m, res, "ab")
	r2 := NewResult(m, res, "ab")
	assert.NotEqual(t, r1.ID, r2.ID)
	assert.Equal(t, 4, r1.Timesteps)

	var buf bytes.Buffer
	CheckError(t, WriteResult(&buf, r1))
	CheckError(t, WriteResult(&buf, r2))
	results, err := ReadResults(&buf)
	CheckError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, *r1, *results[0])
	assert.Equal(t, "ab", results[1].Message)
}

func writeFile(t *testing.T, dir, name, content string) {
	CheckError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

// Reads the toy model from files and decodes it end to end.
func TestReadModelAndDecode(t *testing.T) {

	dir := t.TempDir()
	writeFile(t, dir, "transitionMatrix.txt", "0.9 0.1\n0.1 0.9\n")
	writeFile(t, dir, "emissionMatrix.txt", "0.9 0.1\n0.2 0.8\n")
	writeFile(t, dir, "initialStateDistribution.txt", "0.6\n0.4\n")
	writeFile(t, dir, "observations.txt", "0 0 1 1\n")

	config := DefaultConfig()
	config.DataDir = dir
	m, err := ReadModel(config)
	CheckError(t, err)

	res, err := hmm.NewDecoder().Decode(context.Background(), m)
	CheckError(t, err)
	CompareSliceInt(t, []int{0, 0, 1, 1}, res.Path, "path")
	expected := math.Log(0.6*0.9) + math.Log(0.9*0.9) + math.Log(0.1*0.8) + math.Log(0.9*0.8)
	if !Comparef64(expected, res.LogProb, 1e-9) {
		t.Fatalf("log prob is %f, expected %f", res.LogProb, expected)
	}

	ab, err := alphabet.New("ab")
	CheckError(t, err)
	msg, err := ab.Collapse(res.Path, 0)
	CheckError(t, err)
	assert.Equal(t, "ab", msg)

	config.Input.Emission = "missing.txt"
	_, err = ReadModel(config)
	assert.Error(t, err)
}
