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

// Command gsubtool is an interactive REPL over a raw GSUB table blob: it
// lets a user pick a script/language/feature selection, feed in a glyph-ID
// sequence, and watch the resolved chain's lookups apply to it. It never
// reads a font file itself -- a font loader is expected to have already
// extracted the "GSUB" table's raw bytes.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"

	"github.com/textlayout/gsub/glyph"
	"github.com/textlayout/gsub/gtab"
	"github.com/textlayout/gsub/otf"
)

func tracer() tracing.Trace {
	return tracing.Select("gsub.gsubtool")
}

func main() {
	initDisplay()

	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":     "go",
		"trace.gsub.gsubtool": "Info",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Println("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	tracer().SetTraceLevel(tracing.LevelError)

	gsubPath := flag.String("gsub", "", "path to a raw GSUB table blob")
	flag.Parse()
	if *gsubPath == "" {
		pterm.Error.Println("usage: gsubtool -gsub <path to raw GSUB bytes>")
		os.Exit(2)
	}

	data, err := os.ReadFile(*gsubPath)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(3)
	}
	table, err := gtab.Read(data)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(4)
	}

	repl, err := readline.New("gsub > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(5)
	}
	defer repl.Close()

	intp := &interp{
		table:   table,
		builder: gtab.NewChainBuilder(table),
		seq:     glyph.New(nil),
	}

	pterm.Info.Println("Welcome to gsubtool")
	pterm.Info.Println("Quit with <ctrl>D, or type 'help'")
	intp.loop(repl)
}

func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// interp holds the REPL's current selection state: which script,
// language, and features to resolve into a chain, and the glyph sequence
// the chain is applied to.
type interp struct {
	table   *gtab.Table
	builder *gtab.ChainBuilder

	script   otf.Tag
	language otf.Tag
	features []otf.Tag

	seq *glyph.Sequence
}

func (intp *interp) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "(script=%q lang=%q features=%v seq=%v)",
		intp.script.String(), intp.language.String(), intp.features, intp.seq.IDs())
	return sb.String()
}

func (intp *interp) loop(repl *readline.Instance) {
	for {
		pterm.Println(intp.String())
		line, err := repl.Readline()
		if err != nil { // io.EOF on ctrl-D
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if quit := intp.dispatch(line); quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

func (intp *interp) dispatch(line string) (quit bool) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]
	switch strings.ToLower(cmd) {
	case "quit", "exit":
		return true
	case "help":
		intp.help()
	case "script":
		intp.setScript(args)
	case "lang":
		intp.setLang(args)
	case "features":
		intp.setFeatures(args)
	case "seq":
		intp.setSeq(args)
	case "apply":
		intp.apply()
	case "lookups":
		intp.lookups()
	case "required":
		intp.required()
	default:
		pterm.Error.Printf("unknown command %q; type 'help'\n", cmd)
	}
	return false
}

func (intp *interp) help() {
	pterm.Println(`commands:
  script <tag>        set the script tag (e.g. latn)
  lang <tag>          set the language tag (e.g. DEU)
  features <tag,...>  set the ordered feature list (use RQD for the required feature slot)
  seq <gid,...>       set the glyph-ID sequence to apply lookups to
  apply               build a chain for the current selection and apply it to seq
  lookups             print the lookup indices the current selection resolves to
  required            print the required feature tag for the current script/language
  quit                exit`)
}

func (intp *interp) setScript(args []string) {
	if len(args) != 1 {
		pterm.Error.Println("usage: script <tag>")
		return
	}
	intp.script = otf.ParseTag(args[0])
}

func (intp *interp) setLang(args []string) {
	if len(args) != 1 {
		pterm.Error.Println("usage: lang <tag>")
		return
	}
	intp.language = otf.ParseTag(args[0])
}

func (intp *interp) setFeatures(args []string) {
	if len(args) != 1 {
		pterm.Error.Println("usage: features <tag,tag,...>")
		return
	}
	parts := strings.Split(args[0], ",")
	tags := make([]otf.Tag, len(parts))
	for i, p := range parts {
		if strings.EqualFold(p, "RQD") {
			tags[i] = otf.TagRequired
			continue
		}
		tags[i] = otf.ParseTag(p)
	}
	intp.features = tags
}

func (intp *interp) setSeq(args []string) {
	if len(args) != 1 {
		pterm.Error.Println("usage: seq <gid,gid,...>")
		return
	}
	parts := strings.Split(args[0], ",")
	ids := make([]glyph.ID, len(parts))
	for i, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 16)
		if err != nil {
			pterm.Error.Printf("invalid glyph id %q: %s\n", p, err)
			return
		}
		ids[i] = glyph.ID(n)
	}
	intp.seq = glyph.New(ids)
}

func (intp *interp) buildChain() (*gtab.Chain, error) {
	return intp.builder.Build(gtab.BuildOptions{
		Script:   intp.script,
		Language: intp.language,
		Features: intp.features,
	})
}

func (intp *interp) apply() {
	chain, err := intp.buildChain()
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	before := append([]glyph.ID(nil), intp.seq.IDs()...)
	chain.Apply(intp.seq)
	pterm.Success.Printf("%v -> %v\n", before, intp.seq.IDs())
}

func (intp *interp) lookups() {
	chain, err := intp.buildChain()
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	pterm.Println(fmt.Sprintf("resolved lookups: %v", chain.LookupIndices()))
}

func (intp *interp) required() {
	tag, ok, err := gtab.RequiredFeature(intp.table, intp.script, intp.language)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	if !ok {
		pterm.Println("no required feature for this script/language")
		return
	}
	pterm.Println(fmt.Sprintf("required feature: %q", tag.String()))
}
