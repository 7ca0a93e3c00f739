package labels

import (
	"strings"

	"golang.org/x/image/font"
)

// wrapText greedily packs words into lines whose rendered width stays within
// maxWidth for the given face. A single word wider than maxWidth is emitted
// alone rather than split. Pure: same inputs, same lines.
func wrapText(face font.Face, text string, maxWidth int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	cur := words[0]
	for _, w := range words[1:] {
		cand := cur + " " + w
		if textWidth(face, cand) <= maxWidth {
			cur = cand
			continue
		}
		lines = append(lines, cur)
		cur = w
	}
	return append(lines, cur)
}

func textWidth(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}
