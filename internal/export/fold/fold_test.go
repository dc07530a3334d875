package fold

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

var samples = []string{
	"",
	"plain ascii 123",
	"Crème brûlée à la carte",
	"Łódź, Øresund, Đakovo",
	"Straße Æther Œuvre",
	"Ḁḉ ẞ ǅ",
	"日本語 テキスト",
	"emoji 🎉 mixed é",
	"\xff broken",
}

func TestFoldKnownLetters(t *testing.T) {
	assert.Equal(t, "Creme brulee a la carte", Fold("Crème brûlée à la carte"))
	assert.Equal(t, "Lodz, Oresund, Dakovo", Fold("Łódź, Øresund, Đakovo"))
	assert.Equal(t, "Strase Ather Ouvre", Fold("Straße Æther Œuvre"))
	assert.Equal(t, "", Fold(""))
}

func TestFoldDecomposableOutsideTable(t *testing.T) {
	assert.Equal(t, "Ac", Fold("Ḁḉ"))
}

func TestFoldPassesThroughOtherScripts(t *testing.T) {
	assert.Equal(t, "日本語 テキスト", Fold("日本語 テキスト"))
}

func TestFoldIsIdempotent(t *testing.T) {
	for _, s := range samples {
		once := Fold(s)
		assert.Equal(t, once, Fold(once), s)
	}
}

func TestFoldLeavesNoTableRunes(t *testing.T) {
	for _, s := range samples {
		for _, r := range Fold(s) {
			_, inTable := table[r]
			assert.False(t, inTable, "rune %q survived in %q", r, s)
		}
	}
}

func TestFoldPreservesRuneCount(t *testing.T) {
	for _, s := range samples {
		assert.Equal(t, utf8.RuneCountInString(s), utf8.RuneCountInString(Fold(s)), s)
	}
}

func TestTableMapsToASCII(t *testing.T) {
	for from, to := range table {
		assert.Less(t, to, rune(utf8.RuneSelf), "%q", from)
	}
}
