// seehuhn.de/go/sfnt - a library for reading and writing font files
// Copyright (C) 2022  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package gtabtest builds small, in-memory GSUB tables for tests: each
// glyph is named by a single letter, so a Case's In/Out fields read like
// the text they represent, the way the original implementation's
// harfbuzz/MacOS comparison fixtures do, without needing a real font or
// a textual lookup-description parser.
package gtabtest

import (
	"sort"
	"strings"

	"github.com/textlayout/gsub/glyph"
	"github.com/textlayout/gsub/gtab"
	"github.com/textlayout/gsub/otf"
	"github.com/textlayout/gsub/otf/coverage"
)

// Alphabet maps single-letter glyph names to glyph IDs in the order
// they appear: 'A' -> 1, 'B' -> 2, and so on, leaving 0 for .notdef.
// This matches the naming convention of the comparison fixtures this
// package's cases are modeled on.
func Alphabet(letters string) map[byte]glyph.ID {
	m := make(map[byte]glyph.ID, len(letters))
	for i := 0; i < len(letters); i++ {
		m[letters[i]] = glyph.ID(i + 1)
	}
	return m
}

// ToSequence converts a string of Alphabet letters to a glyph sequence.
func ToSequence(alphabet map[byte]glyph.ID, s string) *glyph.Sequence {
	ids := make([]glyph.ID, len(s))
	for i := 0; i < len(s); i++ {
		ids[i] = alphabet[s[i]]
	}
	return glyph.New(ids)
}

// ToString converts a glyph sequence back to its Alphabet spelling,
// using rev (the inverse of the Alphabet map that produced the
// sequence). A glyph ID with no entry in rev renders as '?'.
func ToString(rev map[glyph.ID]byte, seq *glyph.Sequence) string {
	var sb strings.Builder
	for i := 0; i < seq.Len(); i++ {
		if b, ok := rev[seq.At(i)]; ok {
			sb.WriteByte(b)
		} else {
			sb.WriteByte('?')
		}
	}
	return sb.String()
}

// Reverse builds the glyph-ID-to-letter map inverse to an Alphabet.
func Reverse(alphabet map[byte]glyph.ID) map[glyph.ID]byte {
	rev := make(map[glyph.ID]byte, len(alphabet))
	for b, gid := range alphabet {
		rev[gid] = b
	}
	return rev
}

// coverageOf builds a coverage.Table assigning strictly increasing
// indices to gids in ascending glyph-ID order, the way a real font's
// format-1 Coverage table would.
func coverageOf(gids []glyph.ID) coverage.Table {
	sorted := append([]glyph.ID(nil), gids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	cov := make(coverage.Table, len(sorted))
	for i, g := range sorted {
		cov[g] = i
	}
	return cov
}

// SingleLookup wraps one already-built Subtable in a one-lookup,
// one-feature, latn/DFLT GSUB table: the shape every builder in this
// package needs to exercise a single lookup type in isolation.
func SingleLookup(lookupType gtab.LookupType, subtables ...gtab.Subtable) *gtab.Table {
	latn := otf.ParseTag("latn")
	test := otf.ParseTag("test")
	return &gtab.Table{
		ScriptList: gtab.ScriptList{
			latn: &gtab.Script{
				DefaultLangSys: &gtab.LangSys{Features: []gtab.FeatureIndex{0}},
			},
		},
		FeatureList: gtab.FeatureList{
			{Tag: test, Lookups: []gtab.LookupIndex{0}},
		},
		LookupList: gtab.LookupList{
			{Type: lookupType, Subtables: subtables},
		},
	}
}

// SingleSubstitution builds a Gsub1_2-backed table mapping each byte of
// from to the glyph named by the corresponding byte of to (same length
// required): the letter-substitution fixtures the original comparison
// suite calls "GSUB1".
func SingleSubstitution(alphabet map[byte]glyph.ID, from, to string) *gtab.Table {
	if len(from) != len(to) {
		panic("gtabtest: SingleSubstitution requires len(from) == len(to)")
	}
	gids := make([]glyph.ID, len(from))
	for i := range from {
		gids[i] = alphabet[from[i]]
	}
	cov := coverageOf(gids)
	subs := make([]glyph.ID, len(cov))
	for i := range from {
		subs[cov[alphabet[from[i]]]] = alphabet[to[i]]
	}
	return SingleLookup(gtab.LookupSingle, &gtab.Gsub1_2{Cov: cov, SubstituteGlyphIDs: subs})
}

// Ligature builds a Gsub4_1-backed table collapsing each in string
// (two or more letters) to the single out letter at the same index:
// the "GSUB4" fixtures of the original comparison suite.
func Ligature(alphabet map[byte]glyph.ID, in []string, out string) *gtab.Table {
	if len(in) != len(out) {
		panic("gtabtest: Ligature requires one output letter per input string")
	}
	byFirst := make(map[glyph.ID][]gtab.Ligature)
	var firstGIDs []glyph.ID
	for i, seq := range in {
		first := alphabet[seq[0]]
		if _, ok := byFirst[first]; !ok {
			firstGIDs = append(firstGIDs, first)
		}
		rest := make([]glyph.ID, len(seq)-1)
		for j := 1; j < len(seq); j++ {
			rest[j-1] = alphabet[seq[j]]
		}
		byFirst[first] = append(byFirst[first], gtab.Ligature{In: rest, Out: alphabet[out[i]]})
	}
	cov := coverageOf(firstGIDs)
	repl := make([][]gtab.Ligature, len(cov))
	for gid, idx := range cov {
		repl[idx] = byFirst[gid]
	}
	return SingleLookup(gtab.LookupLigature, &gtab.Gsub4_1{Cov: cov, Repl: repl})
}
