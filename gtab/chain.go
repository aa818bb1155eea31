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
	"fmt"

	"github.com/textlayout/gsub/bloom"
	"github.com/textlayout/gsub/otf"
)

// defaultMaxNestingDepth bounds how many levels deep a context/chained
// lookup's nested lookup records may recurse into further context
// lookups. The OpenType spec imposes no limit -- depth is small in
// practice -- but a malformed or adversarial font could otherwise recurse
// forever.
const defaultMaxNestingDepth = 16

// BuildOptions configures ChainBuilder.Build. The zero Tag value means
// "caller passed none" for Script and Language, matching the fallback
// rules of the Script/LangSys resolution algorithm.
type BuildOptions struct {
	Script   otf.Tag
	Language otf.Tag

	// Features lists feature tags in caller-preference order. It may
	// include otf.TagRequired as a sentinel marking where the script's
	// required feature (if any) should be inserted.
	Features []otf.Tag

	// Sink receives recoverable diagnostics (falls back to a
	// tracing-backed default if nil).
	Sink DiagnosticSink

	// MaxNestingDepth caps nested-lookup recursion (defaultMaxNestingDepth
	// if zero).
	MaxNestingDepth int
}

// ChainBuilder resolves script/language/feature selections against a
// decoded GSUB Table into prepared Chains.
type ChainBuilder struct {
	Table *Table
}

// NewChainBuilder returns a ChainBuilder for t.
func NewChainBuilder(t *Table) *ChainBuilder {
	return &ChainBuilder{Table: t}
}

// lookupBloomEntry is the per-lookup memoization record: the union of
// its sub-tables' start Blooms, plus the individual per-sub-table
// digests in sub-table order.
type lookupBloomEntry struct {
	aggregate bloom.Digest
	subtables []bloom.Digest
}

// Chain is a prepared, ordered, duplicate-free list of lookups selected
// for one (script, language, feature list) combination, together with
// the Bloom memoization tables the Substitution Engine consults while
// walking it. Order follows LookupList index order, not the caller's
// feature order: OpenType requires lookups to apply in storage order.
//
// A Chain's Bloom digests are computed once, eagerly, when the chain is
// built (see precomputeBlooms) rather than lazily on first use: this
// keeps Apply safe to call from multiple goroutines against independent
// Sequences, at the cost of doing the work even for lookups a given
// input never reaches.
type Chain struct {
	table *Table
	order []LookupIndex
	lookups []*LookupTable

	subtableBloom *addrTable[bloom.Digest]
	lookupBloom   *addrTable[lookupBloomEntry]

	sink            *warnOnce
	maxNestingDepth int
}

// LookupIndices returns the chain's resolved lookups, in application
// order.
func (c *Chain) LookupIndices() []LookupIndex {
	return append([]LookupIndex(nil), c.order...)
}

// SubtableBloom returns the memoized start Bloom of st, recomputing and
// memoizing it if st was not reached by this chain's lookup selection
// (for example a sub-table only visible through a nested lookup record).
func (c *Chain) SubtableBloom(st Subtable) bloom.Digest {
	addr := addrOf(st)
	if d, ok := c.subtableBloom.get(addr); ok {
		return d
	}
	d := st.startBloom()
	c.subtableBloom.set(addr, d)
	return d
}

func (c *Chain) lookupBlooms(lt *LookupTable) lookupBloomEntry {
	entry, ok := c.lookupBloom.get(addrOf(lt))
	if !ok {
		// Every chain lookup is precomputed in Build, and nested lookup
		// records go through applyLookupAt without consulting this table
		// (see apply.go); a lookup not in the table gets a Universal
		// aggregate, which disables Bloom skipping for it.
		return lookupBloomEntry{aggregate: bloom.Universal}
	}
	return entry
}

func (c *Chain) precomputeBlooms() {
	for _, lt := range c.lookups {
		subtables := make([]bloom.Digest, len(lt.Subtables))
		var aggregate bloom.Digest
		for i, st := range lt.Subtables {
			switch st := st.(type) {
			case *unknownFormatSubtable:
				c.sink.warn(fmt.Sprintf("skip-%x", addrOf(st)), "gtab: skipping %s", st)
			case *Gsub3_1:
				c.sink.warn(fmt.Sprintf("skip-%x", addrOf(st)), "gtab: skipping unsupported alternate substitution subtable")
			}
			d := st.startBloom()
			c.subtableBloom.set(addrOf(st), d)
			subtables[i] = d
			aggregate = aggregate.Union(d)
		}
		c.lookupBloom.set(addrOf(lt), lookupBloomEntry{aggregate: aggregate, subtables: subtables})
	}
}

// Build resolves opts against the builder's Table, producing a Chain.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#script-list-table-and-script-record
func (b *ChainBuilder) Build(opts BuildOptions) (*Chain, error) {
	sc, err := resolveScript(b.Table.ScriptList, opts.Script)
	if err != nil {
		return nil, err
	}
	ls, err := resolveLangSys(sc, opts.Language)
	if err != nil {
		return nil, err
	}

	order := collectLookups(b.Table.FeatureList, ls, opts.Features, len(b.Table.LookupList))

	maxDepth := opts.MaxNestingDepth
	if maxDepth <= 0 {
		maxDepth = defaultMaxNestingDepth
	}

	c := &Chain{
		table:           b.Table,
		order:           order,
		lookups:         make([]*LookupTable, len(order)),
		subtableBloom:   newAddrTable[bloom.Digest](),
		lookupBloom:     newAddrTable[lookupBloomEntry](),
		sink:            newWarnOnce(opts.Sink),
		maxNestingDepth: maxDepth,
	}
	for i, idx := range order {
		c.lookups[i] = b.Table.LookupList[idx]
	}
	c.precomputeBlooms()
	return c, nil
}

// resolveScript picks the ScriptTable for scriptTag. The "DFLT"/"dflt"
// and "latn" fallbacks only apply when the caller named no script at
// all; an explicit, non-matching scriptTag fails immediately rather
// than falling through to them.
func resolveScript(list ScriptList, scriptTag otf.Tag) (*Script, error) {
	if scriptTag != (otf.Tag{}) {
		if sc, ok := list[scriptTag]; ok {
			return sc, nil
		}
		return nil, ErrScriptNotFound
	}
	if sc, ok := list[otf.TagDefaultUpper]; ok {
		return sc, nil
	}
	if sc, ok := list[otf.TagDefaultLower]; ok {
		return sc, nil
	}
	if sc, ok := list[otf.TagLatin]; ok {
		return sc, nil
	}
	return nil, ErrScriptNotFound
}

// resolveLangSys picks the LangSys for langTag within sc. A zero or
// "DFLT"/"dflt" langTag selects the script's default language-system;
// any other tag is looked up among the script's LangSys records. If that
// fails, a LangSys literally tagged "dflt"/"DFLT" is tried (some fonts
// misuse the tag as a language rather than only as a script marker). An
// explicit langTag that matches no record does not fall back to the
// script's default language-system.
func resolveLangSys(sc *Script, langTag otf.Tag) (*LangSys, error) {
	if langTag == (otf.Tag{}) || langTag.IsDefault() {
		if sc.DefaultLangSys != nil {
			return sc.DefaultLangSys, nil
		}
	} else if ls, ok := sc.LangSyses[langTag]; ok {
		return ls, nil
	}
	if ls, ok := sc.LangSyses[otf.TagDefaultLower]; ok {
		return ls, nil
	}
	if ls, ok := sc.LangSyses[otf.TagDefaultUpper]; ok {
		return ls, nil
	}
	return nil, ErrLanguageNotFound
}

// collectLookups builds the deduplicated, ascending-lookup-index list of
// lookups named by featureTags (in the LangSys ls), substituting the
// script's required feature wherever otf.TagRequired appears.
func collectLookups(fl FeatureList, ls *LangSys, featureTags []otf.Tag, lookupCount int) []LookupIndex {
	present := make([]bool, lookupCount)

	mark := func(fi FeatureIndex) {
		if int(fi) >= len(fl) {
			return
		}
		for _, li := range fl[fi].Lookups {
			if int(li) < lookupCount {
				present[li] = true
			}
		}
	}

	for _, tag := range featureTags {
		if tag == otf.TagRequired {
			if ls.RequiredFeature != noFeature {
				mark(ls.RequiredFeature)
			}
			continue
		}
		for _, fi := range ls.Features {
			if int(fi) < len(fl) && fl[fi].Tag == tag {
				mark(fi)
				break
			}
		}
	}

	order := make([]LookupIndex, 0, lookupCount)
	for i, p := range present {
		if p {
			order = append(order, LookupIndex(i))
		}
	}
	return order
}

// RequiredFeature reports the tag of the required feature for the
// resolved (script, language), if the LangSys names one.
func RequiredFeature(t *Table, scriptTag, langTag otf.Tag) (tag otf.Tag, ok bool, err error) {
	sc, err := resolveScript(t.ScriptList, scriptTag)
	if err != nil {
		return otf.Tag{}, false, err
	}
	ls, err := resolveLangSys(sc, langTag)
	if err != nil {
		return otf.Tag{}, false, err
	}
	if ls.RequiredFeature == noFeature || int(ls.RequiredFeature) >= len(t.FeatureList) {
		return otf.Tag{}, false, nil
	}
	return t.FeatureList[ls.RequiredFeature].Tag, true, nil
}
