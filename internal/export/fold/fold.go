// Package fold maps extended Latin text onto ASCII letters so it renders with
// the core PDF fonts. Exactly one rune is emitted for every input rune.
package fold

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var groups = []struct {
	to   rune
	from string
}{
	{'A', "ÀÁÂÃÄÅĀĂĄÆ"},
	{'a', "àáâãäåāăąæ"},
	{'C', "ÇĆĈĊČ"},
	{'c', "çćĉċč"},
	{'D', "ĎĐÐ"},
	{'d', "ďđð"},
	{'E', "ÈÉÊËĒĔĖĘĚ"},
	{'e', "èéêëēĕėęě"},
	{'G', "ĜĞĠĢ"},
	{'g', "ĝğġģ"},
	{'H', "ĤĦ"},
	{'h', "ĥħ"},
	{'I', "ÌÍÎÏĨĪĬĮİ"},
	{'i', "ìíîïĩīĭįı"},
	{'J', "Ĵ"},
	{'j', "ĵ"},
	{'K', "Ķ"},
	{'k', "ķĸ"},
	{'L', "ĹĻĽĿŁ"},
	{'l', "ĺļľŀł"},
	{'N', "ÑŃŅŇŊ"},
	{'n', "ñńņňŉŋ"},
	{'O', "ÒÓÔÕÖØŌŎŐŒ"},
	{'o', "òóôõöøōŏőœ"},
	{'R', "ŔŖŘ"},
	{'r', "ŕŗř"},
	{'S', "ŚŜŞŠ"},
	{'s', "śŝşšßſ"},
	{'T', "ŢŤŦÞ"},
	{'t', "ţťŧþ"},
	{'U', "ÙÚÛÜŨŪŬŮŰŲ"},
	{'u', "ùúûüũūŭůűų"},
	{'W', "Ŵ"},
	{'w', "ŵ"},
	{'Y', "ÝŶŸ"},
	{'y', "ýÿŷ"},
	{'Z', "ŹŻŽ"},
	{'z', "źżž"},
}

var table = buildTable()

func buildTable() map[rune]rune {
	t := make(map[rune]rune, 256)
	for _, g := range groups {
		for _, r := range g.from {
			t[r] = g.to
		}
	}
	return t
}

// Fold replaces table letters with their ASCII base. Other runes that
// canonically decompose into one ASCII letter plus combining marks fold to
// that letter; everything else passes through.
func Fold(s string) string {
	return strings.Map(foldRune, s)
}

func foldRune(r rune) rune {
	if r < utf8.RuneSelf {
		return r
	}
	if to, ok := table[r]; ok {
		return to
	}
	return decomposedBase(r)
}

func decomposedBase(r rune) rune {
	decomposed := norm.NFD.String(string(r))
	base, size := utf8.DecodeRuneInString(decomposed)
	if base >= utf8.RuneSelf || !unicode.IsLetter(base) || size == len(decomposed) {
		return r
	}
	for _, mark := range decomposed[size:] {
		if !unicode.Is(unicode.Mn, mark) {
			return r
		}
	}
	return base
}
