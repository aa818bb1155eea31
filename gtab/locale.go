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
	"strings"

	"golang.org/x/text/language"

	"github.com/textlayout/gsub/otf"
)

// scriptTagExceptions lists ISO 15924 script codes whose OpenType script
// tag is not simply the lower-cased ISO code.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/scripttags
var scriptTagExceptions = map[string]string{
	"Hira": "kana", // Hiragana and Katakana share a single OpenType script
	"Kana": "kana",
	"Laoo": "lao ",
	"Yiii": "yi  ",
	"Nkoo": "nko ",
	"Vaii": "vai ",
	"Zmth": "math",
}

// languageTagTable maps common ISO 639-1/639-3 primary language subtags
// to their OpenType language-system tags, for the cases where OpenType
// does not simply upper-case a three-letter ISO 639-3 code.
//
// https://docs.microsoft.com/en-us/typography/opentype/spec/languagetags
var languageTagTable = map[string]string{
	"en": "ENG ",
	"de": "DEU ",
	"fr": "FRA ",
	"es": "ESP ",
	"it": "ITA ",
	"pt": "PTG ",
	"nl": "NLD ",
	"sv": "SVE ",
	"da": "DAN ",
	"nb": "NOR ",
	"nn": "NYN ",
	"fi": "FIN ",
	"pl": "PLK ",
	"ru": "RUS ",
	"cs": "CSY ",
	"el": "ELL ",
	"tr": "TRK ",
	"ja": "JAN ",
	"ko": "KOR ",
	"zh": "ZHS ",
	"ar": "ARA ",
	"he": "IWR ",
	"hi": "HIN ",
}

// ResolveScriptLang maps a BCP-47 language tag (as parsed by
// golang.org/x/text/language) to the OpenType script and language tags a
// caller would pass as BuildOptions.Script and BuildOptions.Language.
// When tag carries no explicit script or base language subtag, the value
// golang.org/x/text/language infers for it is used. Either return value
// is the zero Tag only when that inference has no confidence or yields
// no usable code, which ChainBuilder.Build's fallback rules treat as
// "caller passed none".
func ResolveScriptLang(tag language.Tag) (script, lang otf.Tag) {
	if scr, conf := tag.Script(); conf != language.No {
		script = otScriptTag(scr.String())
	}

	base, conf := tag.Base()
	if conf != language.No {
		lang = otLanguageTag(base.String())
	}

	return script, lang
}

func otScriptTag(iso15924 string) otf.Tag {
	if len(iso15924) != 4 {
		return otf.Tag{}
	}
	if exc, ok := scriptTagExceptions[iso15924]; ok {
		return otf.ParseTag(exc)
	}
	return otf.ParseTag(strings.ToLower(iso15924))
}

func otLanguageTag(base string) otf.Tag {
	base = strings.ToLower(base)
	if wire, ok := languageTagTable[base]; ok {
		return otf.ParseTag(wire)
	}
	if len(base) == 3 {
		return otf.ParseTag(strings.ToUpper(base) + " ")
	}
	return otf.Tag{}
}
