// Package vim implements a deterministic, headless emulation of Vi/Vim
// modal editing: given an initial buffer and a keystroke stream, it
// reproduces the final buffer state a real Vim process would produce.
//
// This file provides grapheme cluster helpers for Unicode-aware text
// operations.
//
// Unit Model:
//
// This module distinguishes between two units of text measurement:
//
//  1. Bytes: the underlying storage unit in Go strings (len() returns bytes).
//     A single grapheme can be 1-25+ bytes (e.g. a flag emoji).
//
//  2. Graphemes: the logical unit of text a user perceives as a "character".
//     A grapheme cluster may consist of multiple code points (e.g. "e" plus a
//     combining accent = 1 grapheme). This is what cursor columns track.
//
// All cursor positions represent grapheme indices, not byte offsets. Use the
// conversion functions in this file to translate between units when needed.
package vim

import (
	"unicode"

	"github.com/rivo/uniseg"
)

// Character type constants for word boundary detection.
const (
	graphemeWhitespace = iota
	graphemeWord
	graphemePunctuation
)

// GraphemeCount returns the number of grapheme clusters in a string.
func GraphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// NthGrapheme returns the nth grapheme cluster (0-indexed) and its byte offset.
// Returns ("", -1) if n is out of bounds or negative.
func NthGrapheme(s string, n int) (cluster string, byteOffset int) {
	if n < 0 {
		return "", -1
	}

	idx := 0
	offset := 0
	state := -1
	original := s
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.StepString(s, state)
		if idx == n {
			return cluster, offset
		}
		idx++
		offset = len(original) - len(rest)
		s = rest
		state = newState
	}
	return "", -1
}

// GraphemeToByteOffset converts a grapheme index to a byte offset.
// Returns len(s) if graphemeIdx >= grapheme count, 0 if graphemeIdx <= 0.
func GraphemeToByteOffset(s string, graphemeIdx int) int {
	if graphemeIdx <= 0 {
		return 0
	}

	idx := 0
	state := -1
	original := s
	for len(s) > 0 {
		_, rest, _, newState := uniseg.StepString(s, state)
		idx++
		if idx == graphemeIdx {
			return len(original) - len(rest)
		}
		s = rest
		state = newState
	}
	return len(original)
}

// ByteToGraphemeOffset converts a byte offset to a grapheme index.
func ByteToGraphemeOffset(s string, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset >= len(s) {
		return GraphemeCount(s)
	}

	idx := 0
	currentPos := 0
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.StepString(s, state)
		nextPos := currentPos + len(cluster)
		if byteOffset < nextPos {
			return idx
		}
		idx++
		currentPos = nextPos
		s = rest
		state = newState
	}
	return idx
}

// SliceByGraphemes returns the substring from grapheme index start to end
// (exclusive), grapheme-aware. Returns "" for invalid ranges.
func SliceByGraphemes(s string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end < start {
		return ""
	}

	startByte := GraphemeToByteOffset(s, start)
	endByte := GraphemeToByteOffset(s, end)

	if startByte >= len(s) {
		return ""
	}
	if endByte > len(s) {
		endByte = len(s)
	}

	return s[startByte:endByte]
}

// graphemeType classifies a grapheme cluster for word boundary detection.
//
//   - Whitespace: space, tab, newline, carriage return
//   - Word: alphanumeric, underscore, or non-ASCII letters/numbers
//   - Punctuation: everything else
func graphemeType(cluster string) int {
	if cluster == "" {
		return graphemeWhitespace
	}

	for _, r := range cluster {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			return graphemeWhitespace
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_':
			return graphemeWord
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			return graphemeWord
		default:
			return graphemePunctuation
		}
	}
	return graphemePunctuation
}

// GraphemeIterator provides forward iteration over grapheme clusters.
type GraphemeIterator struct {
	original string
	rest     string
	state    int
	cluster  string
	bytePos  int
	index    int
	started  bool
}

// NewGraphemeIterator creates a new iterator over grapheme clusters in s.
func NewGraphemeIterator(s string) *GraphemeIterator {
	return &GraphemeIterator{original: s, rest: s, state: -1, index: -1}
}

// Next advances the iterator. Returns false when exhausted.
func (g *GraphemeIterator) Next() bool {
	if len(g.rest) == 0 {
		return false
	}

	if g.started {
		g.bytePos = len(g.original) - len(g.rest)
		g.index++
	} else {
		g.bytePos = 0
		g.index = 0
		g.started = true
	}

	cluster, rest, _, newState := uniseg.StepString(g.rest, g.state)
	g.cluster = cluster
	g.rest = rest
	g.state = newState

	return true
}

// Cluster returns the current grapheme cluster.
func (g *GraphemeIterator) Cluster() string { return g.cluster }

// BytePos returns the byte offset of the current cluster.
func (g *GraphemeIterator) BytePos() int { return g.bytePos }

// Index returns the grapheme index of the current cluster.
func (g *GraphemeIterator) Index() int { return g.index }

// ReverseGraphemeIterator iterates backward over grapheme clusters, used by
// backward word motions (b, ge, ...).
type ReverseGraphemeIterator struct {
	clusters   []graphemeInfo
	currentIdx int
	started    bool
}

type graphemeInfo struct {
	cluster string
	bytePos int
}

// NewReverseGraphemeIterator creates a reverse iterator over s.
func NewReverseGraphemeIterator(s string) *ReverseGraphemeIterator {
	var clusters []graphemeInfo
	iter := NewGraphemeIterator(s)
	for iter.Next() {
		clusters = append(clusters, graphemeInfo{cluster: iter.Cluster(), bytePos: iter.BytePos()})
	}

	return &ReverseGraphemeIterator{clusters: clusters, currentIdx: len(clusters)}
}

// Next advances backward. Returns false when exhausted.
func (r *ReverseGraphemeIterator) Next() bool {
	if !r.started {
		r.started = true
		r.currentIdx = len(r.clusters) - 1
	} else {
		r.currentIdx--
	}
	return r.currentIdx >= 0
}

// Cluster returns the current grapheme cluster.
func (r *ReverseGraphemeIterator) Cluster() string {
	if r.currentIdx < 0 || r.currentIdx >= len(r.clusters) {
		return ""
	}
	return r.clusters[r.currentIdx].cluster
}

// BytePos returns the byte offset of the current cluster.
func (r *ReverseGraphemeIterator) BytePos() int {
	if r.currentIdx < 0 || r.currentIdx >= len(r.clusters) {
		return 0
	}
	return r.clusters[r.currentIdx].bytePos
}

// InsertAtGrapheme inserts text at the given grapheme index.
func InsertAtGrapheme(s string, graphemeIdx int, insert string) string {
	byteOffset := GraphemeToByteOffset(s, graphemeIdx)
	return s[:byteOffset] + insert + s[byteOffset:]
}

// DeleteGraphemeRange deletes grapheme clusters from start to end (exclusive).
func DeleteGraphemeRange(s string, start, end int) string {
	startByte := GraphemeToByteOffset(s, start)
	endByte := GraphemeToByteOffset(s, end)
	return s[:startByte] + s[endByte:]
}
