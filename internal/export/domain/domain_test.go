package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{
		"workbook": FormatWorkbook,
		"XLSX":     FormatWorkbook,
		" pdf ":    FormatDocument,
		"archive":  FormatArchive,
		"zip":      FormatArchive,
	}
	for in, want := range cases {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("csv")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestFormatMetadata(t *testing.T) {
	assert.Equal(t, "xlsx", FormatWorkbook.Ext())
	assert.Equal(t, "pdf", FormatDocument.Ext())
	assert.Equal(t, "zip", FormatArchive.Ext())
	assert.Equal(t, "application/pdf", FormatDocument.ContentType())
	assert.Equal(t, "application/octet-stream", Format("BOGUS").ContentType())
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("Top-Stores")
	require.NoError(t, err)
	assert.Equal(t, CategoryTopStores, c)
	assert.Equal(t, "Top Stores", c.Label())

	_, err = ParseCategory("customers")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestNormalizeSelection(t *testing.T) {
	got := NormalizeSelection([]Category{CategoryDateSeries, CategoryOverview, CategoryDateSeries})
	assert.Equal(t, []Category{CategoryOverview, CategoryDateSeries}, got)
	assert.Empty(t, NormalizeSelection(nil))
}
