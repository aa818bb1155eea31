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

package gtab

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/textlayout/gsub/otf"
)

func mustTag(s string) otf.Tag {
	return otf.ParseTag(s)
}

func testTable() *Table {
	latn := mustTag("latn")
	deu := mustTag("DEU ")
	liga := mustTag("liga")
	calt := mustTag("calt")

	return &Table{
		ScriptList: ScriptList{
			latn: &Script{
				DefaultLangSys: &LangSys{RequiredFeature: noFeature, Features: []FeatureIndex{0}},
				LangSyses: map[otf.Tag]*LangSys{
					deu: {RequiredFeature: 1, Features: []FeatureIndex{0}},
				},
			},
		},
		FeatureList: FeatureList{
			{Tag: liga, Lookups: []LookupIndex{0}},
			{Tag: calt, Lookups: []LookupIndex{1}},
		},
		LookupList: LookupList{
			{Type: LookupLigature, Subtables: nil},
			{Type: LookupContext, Subtables: nil},
		},
	}
}

func TestChainBuilderBuildDefaultLangSys(t *testing.T) {
	b := NewChainBuilder(testTable())
	c, err := b.Build(BuildOptions{
		Script:   mustTag("latn"),
		Features: []otf.Tag{mustTag("liga")},
	})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]LookupIndex{0}, c.LookupIndices()); diff != "" {
		t.Error(diff)
	}
}

func TestChainBuilderBuildRequiredFeature(t *testing.T) {
	b := NewChainBuilder(testTable())
	c, err := b.Build(BuildOptions{
		Script:   mustTag("latn"),
		Language: mustTag("DEU "),
		Features: []otf.Tag{otf.TagRequired, mustTag("liga")},
	})
	if err != nil {
		t.Fatal(err)
	}
	// Required feature (index 1, "calt" -> lookup 1) plus "liga" -> lookup 0,
	// deduplicated and returned in ascending lookup-index order.
	if diff := cmp.Diff([]LookupIndex{0, 1}, c.LookupIndices()); diff != "" {
		t.Error(diff)
	}
}

func TestChainBuilderNoScriptFallsBackToLatin(t *testing.T) {
	b := NewChainBuilder(testTable())
	c, err := b.Build(BuildOptions{
		Features: []otf.Tag{mustTag("liga")},
	})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]LookupIndex{0}, c.LookupIndices()); diff != "" {
		t.Error(diff)
	}
}

func TestChainBuilderUnknownScriptNoFallback(t *testing.T) {
	b := NewChainBuilder(testTable())
	_, err := b.Build(BuildOptions{Script: mustTag("cyrl")})
	if err != ErrScriptNotFound {
		t.Fatalf("err = %v, want ErrScriptNotFound", err)
	}
}

// TestChainBuilderExplicitScriptDoesNotFallBackToDFLT guards against
// resolveScript treating the DFLT/dflt/latn chain as an unconditional
// fallback: a caller that explicitly names a script gets
// ErrScriptNotFound on a miss, even when the table carries a "DFLT"
// entry that an unconditional fallback would silently pick instead.
func TestChainBuilderExplicitScriptDoesNotFallBackToDFLT(t *testing.T) {
	table := testTable()
	table.ScriptList[otf.TagDefaultUpper] = &Script{
		DefaultLangSys: &LangSys{RequiredFeature: noFeature, Features: []FeatureIndex{1}},
	}

	b := NewChainBuilder(table)
	_, err := b.Build(BuildOptions{Script: mustTag("cyrl")})
	if err != ErrScriptNotFound {
		t.Fatalf("err = %v, want ErrScriptNotFound (explicit script must not fall back to DFLT)", err)
	}
}

func TestRequiredFeature(t *testing.T) {
	table := testTable()
	tag, ok, err := RequiredFeature(table, mustTag("latn"), mustTag("DEU "))
	if err != nil {
		t.Fatal(err)
	}
	if !ok || tag != mustTag("calt") {
		t.Fatalf("tag = %v, ok = %v", tag, ok)
	}

	_, ok, err = RequiredFeature(table, mustTag("latn"), otf.Tag{})
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("default LangSys has no required feature, but ok = true")
	}
}
