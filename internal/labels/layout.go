package labels

import (
	"time"

	"grocy-label-server/internal/platform/config"
)

// Layout constants, in pixels. The canvas width comes from configuration.
const (
	lineHeight   = 35
	padding      = 15
	qrSize       = 240
	nameLineGap  = 10 // extra spacing between wrapped title lines
	nameBlockGap = 20 // extra spacing after the last title line
)

// Dates this far ahead are a sentinel for "does not expire" and are left
// off the label.
const farFutureDays = 5 * 365

const isoDateLayout = "2006-01-02"

// isFarFuture reports whether dateStr parses as an ISO date more than five
// years past now. Unparseable strings are not far-future: when in doubt the
// date is shown.
func isFarFuture(dateStr string, now time.Time) bool {
	t, err := time.Parse(isoDateLayout, dateStr)
	if err != nil {
		return false
	}
	return t.After(now.AddDate(0, 0, farFutureDays))
}

// Layouter turns LabelData into a LayoutPlan. Read-only after construction,
// safe to share across requests.
type Layouter struct {
	width     int
	dateStyle string
	lang      string
	fonts     *fontSet
	now       func() time.Time
}

func newLayouter(cfg config.LabelConfig, fonts *fontSet) *Layouter {
	style := cfg.DateStyle
	if style != config.DateStyleSeparate {
		style = config.DateStyleCombined
	}
	return &Layouter{
		width:     cfg.WidthPx,
		dateStyle: style,
		lang:      normalizeLang(cfg.Language),
		fonts:     fonts,
		now:       time.Now,
	}
}

type styledLine struct {
	text     string
	font     FontID
	nameLine bool
}

// Layout builds the draw program: wrapped title, amount line, date line(s)
// per the configured style, wrapped note, each centered, below an optional
// QR block. Deterministic for a given LabelData and configuration.
func (l *Layouter) Layout(data LabelData) LayoutPlan {
	wrapLimit := l.width - 2*padding

	var lines []styledLine
	if data.Name != "" {
		for _, t := range wrapText(l.fonts.large, data.Name, wrapLimit) {
			lines = append(lines, styledLine{text: t, font: FontLarge, nameLine: true})
		}
	}
	if data.Amount != "" && data.UnitName != "" {
		lines = append(lines, styledLine{text: data.Amount + " " + data.UnitName, font: FontSmall})
	}
	for _, t := range l.dateLines(data) {
		lines = append(lines, styledLine{text: t, font: FontSmall})
	}
	if data.Note != "" {
		for _, t := range wrapText(l.fonts.small, data.Note, wrapLimit) {
			lines = append(lines, styledLine{text: t, font: FontSmall})
		}
	}

	plan := LayoutPlan{Width: l.width}
	y := padding

	if data.Barcode != "" {
		plan.QR = &QRBox{
			Content: data.Barcode,
			X:       (l.width - qrSize) / 2,
			Y:       y,
			Size:    qrSize,
		}
		y += qrSize + padding
	}

	lastName := -1
	for i, ln := range lines {
		if ln.nameLine {
			lastName = i
		}
	}
	for i, ln := range lines {
		w := textWidth(l.fonts.face(ln.font), ln.text)
		plan.Lines = append(plan.Lines, TextLine{
			Text: ln.text,
			Font: ln.font,
			X:    (l.width - w) / 2,
			Y:    y,
		})
		y += lineHeight
		if ln.nameLine {
			if i == lastName {
				y += nameBlockGap
			} else {
				y += nameLineGap
			}
		}
	}

	if plan.QR == nil && len(lines) == 0 {
		// Nothing to draw: minimal canvas, callers decide whether that is
		// worth sending to paper.
		plan.Height = padding
		return plan
	}

	plan.Height = y + padding
	if len(lines) > 0 {
		plan.Height += l.fonts.maxGlyphHeight()
	}
	return plan
}

// dateLines renders the date portion under the active style.
//
// separate: the legacy behavior, one unconditional line per present date.
// combined: a purchased-to-expiry range when both are present, otherwise a
// single localized line; best-before dates flagged far-future count as
// absent here though they remain in LabelData.
func (l *Layouter) dateLines(data LabelData) []string {
	if l.dateStyle == config.DateStyleSeparate {
		var out []string
		if data.BestBeforeDate != "" {
			out = append(out, "Best: "+data.BestBeforeDate)
		}
		if data.PurchasedDate != "" {
			out = append(out, "Purchased: "+data.PurchasedDate)
		}
		return out
	}

	bestBefore := data.BestBeforeDate
	if bestBefore != "" && isFarFuture(bestBefore, l.now()) {
		bestBefore = ""
	}

	switch {
	case bestBefore != "" && data.PurchasedDate != "":
		return []string{data.PurchasedDate + " - " + bestBefore}
	case bestBefore != "":
		return []string{tr(l.lang, "expires") + ": " + bestBefore}
	case data.PurchasedDate != "":
		return []string{tr(l.lang, "purchased") + ": " + data.PurchasedDate}
	default:
		return nil
	}
}
