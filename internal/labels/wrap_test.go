package labels

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFonts(t *testing.T) *fontSet {
	t.Helper()
	fonts, err := loadFonts()
	require.NoError(t, err)
	return fonts
}

func TestWrapTextFitsWidth(t *testing.T) {
	fonts := testFonts(t)
	const maxWidth = 354 // 384px label minus side padding

	lines := wrapText(fonts.large, "Organic Whole Wheat Sourdough Bread", maxWidth)
	require.NotEmpty(t, lines)
	assert.Greater(t, len(lines), 1)

	for _, ln := range lines {
		// every line is a run of whole words within the width
		assert.LessOrEqual(t, textWidth(fonts.large, ln), maxWidth, "line %q", ln)
	}
	assert.Equal(t, "Organic Whole Wheat Sourdough Bread", strings.Join(lines, " "))
}

func TestWrapTextIdempotent(t *testing.T) {
	fonts := testFonts(t)
	const maxWidth = 354

	lines := wrapText(fonts.small, "a note about the jar on the second shelf behind the pickles", maxWidth)
	require.NotEmpty(t, lines)

	// re-wrapping already-fitting lines returns them unchanged
	for _, ln := range lines {
		assert.Equal(t, []string{ln}, wrapText(fonts.small, ln, maxWidth))
	}
}

func TestWrapTextOverwideWordStandsAlone(t *testing.T) {
	fonts := testFonts(t)

	lines := wrapText(fonts.large, "x Supercalifragilisticexpialidocious y", 100)
	require.Len(t, lines, 3)
	assert.Equal(t, "x", lines[0])
	assert.Equal(t, "Supercalifragilisticexpialidocious", lines[1])
	assert.Equal(t, "y", lines[2])
}

func TestWrapTextEmpty(t *testing.T) {
	fonts := testFonts(t)
	assert.Nil(t, wrapText(fonts.large, "", 354))
	assert.Nil(t, wrapText(fonts.large, "   ", 354))
}
