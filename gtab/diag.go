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
	"sync"

	"github.com/npillmayer/schuko/tracing"
)

// DiagnosticSink receives the handful of recoverable warnings the chain
// builder and engine can emit: unknown sub-table formats and unsupported
// alternate-substitution sub-tables it skips, and nested lookups cut off
// at the recursion depth cap. Callers that don't care may leave this nil; a default
// sink backed by the schuko tracing package is used in that case.
type DiagnosticSink interface {
	Warnf(format string, args ...any)
}

func tracer() tracing.Trace {
	return tracing.Select("gsub.gtab")
}

type traceSink struct{}

func (traceSink) Warnf(format string, args ...any) {
	tracer().Errorf(format, args...)
}

var defaultSink DiagnosticSink = traceSink{}

// warnOnce reports a diagnostic at most once per distinct key within a
// chain's lifetime, so a malformed font with one bad sub-table doesn't
// flood the sink once per glyph run through apply_chain.
type warnOnce struct {
	mu   sync.Mutex
	seen map[string]bool
	sink DiagnosticSink
}

func newWarnOnce(sink DiagnosticSink) *warnOnce {
	if sink == nil {
		sink = defaultSink
	}
	return &warnOnce{sink: sink, seen: make(map[string]bool)}
}

func (w *warnOnce) warn(key, format string, args ...any) {
	w.mu.Lock()
	already := w.seen[key]
	w.seen[key] = true
	w.mu.Unlock()
	if already {
		return
	}
	w.sink.Warnf(format, args...)
}
