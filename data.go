// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viterbi

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/akualab/viterbi/model/hmm"
	"github.com/golang/glog"
)

// Observation files may hold the whole sequence in a single line.
const maxLineSize = 64 * 1024 * 1024

// ReadParams reads the model parameters named in the config, without observations.
func ReadParams(config *Config) (*hmm.Model, error) {

	m := &hmm.Model{Name: config.Name}
	var err error

	if m.Transition, err = ReadMatrixFile(config.Path(config.Input.Transition)); err != nil {
		return nil, err
	}
	if m.Emission, err = ReadMatrixFile(config.Path(config.Input.Emission)); err != nil {
		return nil, err
	}
	if m.Initial, err = ReadFloatsFile(config.Path(config.Input.Initial)); err != nil {
		return nil, err
	}
	return m, nil
}

// ReadModel reads the model parameters and observations named in the config.
func ReadModel(config *Config) (*hmm.Model, error) {

	m, err := ReadParams(config)
	if err != nil {
		return nil, err
	}
	if m.Observations, err = ReadIntsFile(config.Path(config.Input.Observations)); err != nil {
		return nil, err
	}
	glog.Infof("read model - num states: %d, num symbols: %d, num observations: %d",
		m.NumStates(), m.NumSymbols(), m.Len())
	return m, nil
}

// scanLines calls fn with the fields of each non-blank line.
func scanLines(r io.Reader, fn func(line int, fields []string) error) error {

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	var line int
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if err := fn(line, fields); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func parseFloats(line int, fields []string) ([]float64, error) {
	row := make([]float64, len(fields))
	for k, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		row[k] = v
	}
	return row, nil
}

// ReadMatrix reads a matrix with one row per line and
// whitespace-separated values. Blank lines are skipped.
func ReadMatrix(r io.Reader) ([][]float64, error) {

	var rows [][]float64
	err := scanLines(r, func(line int, fields []string) error {
		row, err := parseFloats(line, fields)
		if err != nil {
			return err
		}
		rows = append(rows, row)
		return nil
	})
	return rows, err
}

// ReadFloats reads whitespace-separated values regardless of line layout.
func ReadFloats(r io.Reader) ([]float64, error) {

	var values []float64
	err := scanLines(r, func(line int, fields []string) error {
		row, err := parseFloats(line, fields)
		if err != nil {
			return err
		}
		values = append(values, row...)
		return nil
	})
	return values, err
}

// ReadInts reads whitespace-separated integers regardless of line layout.
func ReadInts(r io.Reader) ([]int, error) {

	var values []int
	err := scanLines(r, func(line int, fields []string) error {
		for _, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return fmt.Errorf("line %d: %w", line, err)
			}
			values = append(values, v)
		}
		return nil
	})
	return values, err
}

// WriteInts writes one integer per line.
func WriteInts(w io.Writer, values []int) error {

	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 24)
	for _, v := range values {
		buf = strconv.AppendInt(buf[:0], int64(v), 10)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteResult appends r to w as a single line of JSON.
func WriteResult(w io.Writer, r *Result) error {
	return json.NewEncoder(w).Encode(r)
}

// ReadResults reads a stream of JSON results.
func ReadResults(r io.Reader) ([]*Result, error) {

	var results []*Result
	dec := json.NewDecoder(r)
	for {
		res := new(Result)
		err := dec.Decode(res)
		if err == io.EOF {
			return results, nil
		}
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
}

// ReadMatrixFile reads a matrix from file. See ReadMatrix().
func ReadMatrixFile(fn string) ([][]float64, error) {
	var m [][]float64
	err := readFile(fn, func(r io.Reader) (err error) {
		m, err = ReadMatrix(r)
		return
	})
	return m, err
}

// ReadFloatsFile reads values from file. See ReadFloats().
func ReadFloatsFile(fn string) ([]float64, error) {
	var v []float64
	err := readFile(fn, func(r io.Reader) (err error) {
		v, err = ReadFloats(r)
		return
	})
	return v, err
}

// ReadIntsFile reads integers from file. See ReadInts().
func ReadIntsFile(fn string) ([]int, error) {
	var v []int
	err := readFile(fn, func(r io.Reader) (err error) {
		v, err = ReadInts(r)
		return
	})
	return v, err
}

// WriteIntsFile writes integers to file, one per line.
func WriteIntsFile(fn string, values []int) error {

	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	if err := WriteInts(f, values); err != nil {
		f.Close()
		return fmt.Errorf("file [%s]: %w", fn, err)
	}
	return f.Close()
}

func readFile(fn string, read func(io.Reader) error) error {

	f, err := os.Open(fn)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := read(f); err != nil {
		return fmt.Errorf("file [%s]: %w", fn, err)
	}
	glog.V(2).Infof("read file [%s]", fn)
	return nil
}
