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
	"errors"
	"fmt"

	"github.com/textlayout/gsub/otf"
)

func malformed(reason string) error {
	return &otf.MalformedTableError{SubSystem: "gsub/gtab", Reason: reason}
}

// NotSupportedError reports a well-formed but deliberately unimplemented
// wire feature, such as GSUB feature variations.
type NotSupportedError struct {
	SubSystem string
	Feature   string
}

func (e *NotSupportedError) Error() string {
	return fmt.Sprintf("%s: not supported: %s", e.SubSystem, e.Feature)
}

func notSupported(feature string) error {
	return &NotSupportedError{SubSystem: "gsub/gtab", Feature: feature}
}

// ErrScriptNotFound is returned by ChainBuilder.Build when the requested
// script is absent or, when no script was requested, none of "DFLT",
// "dflt" and "latn" is present (spec §4.4 step 1, §7 ScriptNotFound).
var ErrScriptNotFound = errors.New("gtab: script not found")

// ErrLanguageNotFound is returned by ChainBuilder.Build when the
// requested language does not resolve for the chosen script, and neither
// "dflt" nor "DFLT" resolves either (spec §4.4 step 2, §7
// LanguageNotFound).
var ErrLanguageNotFound = errors.New("gtab: language not found")
