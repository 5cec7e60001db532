// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package alphabet maps hidden state indices to symbols and turns
// state sequences into text.
package alphabet

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/akualab/viterbi/model"
)

const (
	// English maps states 0..25 to 'a'..'z' and state 26 to a space.
	English = "abcdefghijklmnopqrstuvwxyz "

	// DefaultTruncate is the number of trailing states dropped by Collapse
	// in the default configuration.
	DefaultTruncate = 10
)

// Alphabet is an immutable table from state index to symbol.
type Alphabet struct {
	symbols []rune
}

// New creates an alphabet where state i maps to the i-th rune of symbols.
// Symbols must be unique.
func New(symbols string) (*Alphabet, error) {

	if !utf8.ValidString(symbols) {
		return nil, fmt.Errorf("alphabet is not valid utf-8")
	}
	runes := []rune(symbols)
	if len(runes) == 0 {
		return nil, fmt.Errorf("alphabet is empty")
	}
	seen := make(map[rune]int, len(runes))
	for i, r := range runes {
		if j, ok := seen[r]; ok {
			return nil, fmt.Errorf("symbol %q is used by states %d and %d", r, j, i)
		}
		seen[r] = i
	}
	return &Alphabet{symbols: runes}, nil
}

// Default returns the English alphabet.
func Default() *Alphabet {
	return &Alphabet{symbols: []rune(English)}
}

// Len returns the number of states covered by the alphabet.
func (a *Alphabet) Len() int { return len(a.symbols) }

// Symbol returns the symbol for state i.
func (a *Alphabet) Symbol(i int) (rune, error) {
	if i < 0 || i >= len(a.symbols) {
		return 0, fmt.Errorf("state %d has no symbol, alphabet has %d", i, len(a.symbols))
	}
	return a.symbols[i], nil
}

// String returns the symbols in state order.
func (a *Alphabet) String() string { return string(a.symbols) }

// Align drops the last truncate states and names each run of identical
// consecutive states with its symbol. Negative truncate is treated as 0.
func (a *Alphabet) Align(path []int, truncate int) (model.Alignment, error) {

	if truncate < 0 {
		truncate = 0
	}
	if len(path) <= truncate {
		return model.Alignment{}, nil
	}
	segs := model.Segments(path[:len(path)-truncate])
	for _, seg := range segs {
		r, err := a.Symbol(seg.State)
		if err != nil {
			return nil, fmt.Errorf("t=%d: %w", seg.Start, err)
		}
		seg.Name = string(r)
	}
	return segs, nil
}

// Collapse converts a state sequence to text. The last truncate states are
// dropped, then each run of identical consecutive states emits its symbol
// once. The result is empty when len(path) <= truncate.
func (a *Alphabet) Collapse(path []int, truncate int) (string, error) {

	segs, err := a.Align(path, truncate)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, seg := range segs {
		sb.WriteString(seg.Name)
	}
	return sb.String(), nil
}
