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

	"golang.org/x/text/language"

	"github.com/textlayout/gsub/otf"
)

func TestResolveScriptLangExplicitSubtags(t *testing.T) {
	tag := language.MustParse("de-Latn-DE")
	script, lang := ResolveScriptLang(tag)
	if script != mustTag("latn") {
		t.Errorf("script = %q, want latn", script)
	}
	if lang != mustTag("DEU ") {
		t.Errorf("lang = %q, want DEU ", lang)
	}
}

func TestResolveScriptLangScriptException(t *testing.T) {
	tag := language.MustParse("und-Hira")
	script, _ := ResolveScriptLang(tag)
	if script != mustTag("kana") {
		t.Errorf("script = %q, want kana (Hiragana shares the kana OpenType script)", script)
	}
}

func TestOtScriptTagRejectsShortCode(t *testing.T) {
	if got := otScriptTag("Lat"); got != (otf.Tag{}) {
		t.Errorf("otScriptTag on a malformed code = %q, want the zero tag", got)
	}
}

func TestOtLanguageTagUnknownTwoLetterCode(t *testing.T) {
	if got := otLanguageTag("zz"); got != (otf.Tag{}) {
		t.Errorf("otLanguageTag(%q) = %q, want the zero tag", "zz", got)
	}
}
