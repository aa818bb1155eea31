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

package gtabtest

import (
	"testing"

	"github.com/textlayout/gsub/gtab"
	"github.com/textlayout/gsub/otf"
)

// run builds alphabet from letters, applies table's chain (resolved for
// script "latn", feature "test") to in, and checks the result spells out.
// Modeled on the original implementation's harfbuzz/MacOS comparison
// suite (each case states its In and Out strings directly).
func run(t *testing.T, letters string, table *gtab.Table, in, out string) {
	t.Helper()
	alphabet := Alphabet(letters)
	rev := Reverse(alphabet)

	c, err := gtab.NewChainBuilder(table).Build(gtab.BuildOptions{
		Script:   otf.ParseTag("latn"),
		Features: []otf.Tag{otf.ParseTag("test")},
	})
	if err != nil {
		t.Fatal(err)
	}

	seq := ToSequence(alphabet, in)
	c.Apply(seq)

	got := ToString(rev, seq)
	if got != out {
		t.Errorf("%q -> %q, want %q", in, got, out)
	}
}

func TestSingleSubstitution(t *testing.T) {
	table := SingleSubstitution(Alphabet("ABCXZ"), "AC", "XZ")
	run(t, "ABCXZ", table, "ABC", "XBZ")
}

func TestSingleSubstitutionSwap(t *testing.T) {
	table := SingleSubstitution(Alphabet("ABC"), "AB", "BA")
	run(t, "ABC", table, "ABC", "BAC")
}

func TestLigature(t *testing.T) {
	// "ffl" must win over "ff" when both start with the same glyph.
	table := Ligature(Alphabet("FLABC12"), []string{"FFL", "FF"}, "12")
	run(t, "FLABC12", table, "FFLA", "1A")
}

func TestLigatureNoMatch(t *testing.T) {
	table := Ligature(Alphabet("FLABC"), []string{"FL"}, "1")
	run(t, "FLABC1", table, "FAB", "FAB")
}
