package labels

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
)

// The original deployment shipped Roboto Bold at 48/32px; Go Bold is the
// embedded equivalent so the binary needs no font files on disk.
const (
	fontSizeLarge = 48
	fontSizeSmall = 32
	fontDPI       = 72
)

type fontSet struct {
	large font.Face
	small font.Face
}

func loadFonts() (*fontSet, error) {
	parsed, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing label font: %w", err)
	}

	newFace := func(size float64) (font.Face, error) {
		return opentype.NewFace(parsed, &opentype.FaceOptions{
			Size:    size,
			DPI:     fontDPI,
			Hinting: font.HintingFull,
		})
	}

	large, err := newFace(fontSizeLarge)
	if err != nil {
		return nil, fmt.Errorf("building large face: %w", err)
	}
	small, err := newFace(fontSizeSmall)
	if err != nil {
		return nil, fmt.Errorf("building small face: %w", err)
	}
	return &fontSet{large: large, small: small}, nil
}

func (f *fontSet) face(id FontID) font.Face {
	if id == FontLarge {
		return f.large
	}
	return f.small
}

// maxGlyphHeight is the taller ascent-to-descent span of the two faces,
// used as bottom padding so descenders on the last line never clip.
func (f *fontSet) maxGlyphHeight() int {
	h := 0
	for _, face := range []font.Face{f.large, f.small} {
		m := face.Metrics()
		if v := (m.Ascent + m.Descent).Ceil(); v > h {
			h = v
		}
	}
	return h
}
