package labels

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grocy-label-server/internal/platform/config"
)

var layoutNow = time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)

func testLayouter(t *testing.T, dateStyle, lang string) *Layouter {
	t.Helper()
	l := newLayouter(config.LabelConfig{WidthPx: 384, Language: lang, DateStyle: dateStyle}, testFonts(t))
	l.now = func() time.Time { return layoutNow }
	return l
}

func lineTexts(plan LayoutPlan) []string {
	out := make([]string, 0, len(plan.Lines))
	for _, ln := range plan.Lines {
		out = append(out, ln.Text)
	}
	return out
}

func TestLayoutDeterministic(t *testing.T) {
	l := testLayouter(t, config.DateStyleCombined, "en")
	data := LabelData{
		Name: "Test Product", Barcode: "12345",
		BestBeforeDate: "2024-12-31", PurchasedDate: "2024-10-05",
		Amount: "2", UnitName: "pieces", Note: "second shelf",
	}
	assert.Equal(t, l.Layout(data), l.Layout(data))
}

func TestLayoutCanvasGeometry(t *testing.T) {
	l := testLayouter(t, config.DateStyleCombined, "en")

	plan := l.Layout(LabelData{Name: "Milk"})
	assert.Equal(t, 384, plan.Width)
	assert.GreaterOrEqual(t, plan.Height, padding)
	assert.Nil(t, plan.QR)

	// height strictly grows as optional content is added
	withBarcode := l.Layout(LabelData{Name: "Milk", Barcode: "123"})
	assert.Greater(t, withBarcode.Height, plan.Height)

	withNote := l.Layout(LabelData{Name: "Milk", Barcode: "123", Note: "half empty"})
	assert.Greater(t, withNote.Height, withBarcode.Height)
}

func TestLayoutDegenerate(t *testing.T) {
	l := testLayouter(t, config.DateStyleCombined, "en")
	plan := l.Layout(LabelData{})
	assert.Equal(t, padding, plan.Height)
	assert.Nil(t, plan.QR)
	assert.Empty(t, plan.Lines)
}

func TestLayoutQRPlacement(t *testing.T) {
	l := testLayouter(t, config.DateStyleCombined, "en")
	plan := l.Layout(LabelData{Barcode: "grcy:p:42"})

	require.NotNil(t, plan.QR)
	assert.Equal(t, "grcy:p:42", plan.QR.Content)
	assert.Equal(t, qrSize, plan.QR.Size)
	assert.Equal(t, (384-qrSize)/2, plan.QR.X)
	assert.Equal(t, padding, plan.QR.Y)
	// QR-only label: no text, no glyph bottom pad
	assert.Equal(t, qrSize+3*padding, plan.Height)
}

func TestLayoutLinesCentered(t *testing.T) {
	l := testLayouter(t, config.DateStyleCombined, "en")
	fonts := l.fonts
	plan := l.Layout(LabelData{Name: "Oat Milk", Amount: "2", UnitName: "cartons"})

	require.NotEmpty(t, plan.Lines)
	for _, ln := range plan.Lines {
		w := textWidth(fonts.face(ln.Font), ln.Text)
		assert.Equal(t, (384-w)/2, ln.X, "line %q", ln.Text)
	}
	// title face on the first line, detail face on the rest
	assert.Equal(t, FontLarge, plan.Lines[0].Font)
	assert.Equal(t, FontSmall, plan.Lines[len(plan.Lines)-1].Font)
}

func TestLayoutAmountLineNeedsBoth(t *testing.T) {
	l := testLayouter(t, config.DateStyleCombined, "en")

	assert.Contains(t, lineTexts(l.Layout(LabelData{Name: "Eggs", Amount: "2", UnitName: "boxes"})), "2 boxes")
	assert.NotContains(t, lineTexts(l.Layout(LabelData{Name: "Eggs", Amount: "2"})), "2 ")
	assert.Len(t, l.Layout(LabelData{Name: "Eggs", UnitName: "boxes"}).Lines, 1)
}

// The two date policies intentionally diverge: "separate" reproduces the
// legacy unconditional lines, "combined" the localized range behavior.
func TestLayoutDateStyleSeparate(t *testing.T) {
	l := testLayouter(t, config.DateStyleSeparate, "en")
	texts := lineTexts(l.Layout(LabelData{
		Name: "Yogurt", BestBeforeDate: "2024-12-31", PurchasedDate: "2024-10-05",
	}))

	assert.Contains(t, texts, "Best: 2024-12-31")
	assert.Contains(t, texts, "Purchased: 2024-10-05")

	// legacy style shows even a sentinel far-future date
	texts = lineTexts(l.Layout(LabelData{Name: "Salt", BestBeforeDate: "2999-12-31"}))
	assert.Contains(t, texts, "Best: 2999-12-31")
}

func TestLayoutDateStyleCombined(t *testing.T) {
	l := testLayouter(t, config.DateStyleCombined, "en")

	texts := lineTexts(l.Layout(LabelData{
		Name: "Yogurt", BestBeforeDate: "2024-12-31", PurchasedDate: "2024-10-05",
	}))
	assert.Contains(t, texts, "2024-10-05 - 2024-12-31")

	texts = lineTexts(l.Layout(LabelData{Name: "Yogurt", BestBeforeDate: "2024-12-31"}))
	assert.Contains(t, texts, "Expires: 2024-12-31")

	texts = lineTexts(l.Layout(LabelData{Name: "Yogurt", PurchasedDate: "2024-10-05"}))
	assert.Contains(t, texts, "Purchased: 2024-10-05")

	// no dates, no date line
	assert.Len(t, l.Layout(LabelData{Name: "Yogurt"}).Lines, 1)
}

func TestLayoutCombinedLocalized(t *testing.T) {
	l := testLayouter(t, config.DateStyleCombined, "es")
	texts := lineTexts(l.Layout(LabelData{Name: "Leche", BestBeforeDate: "2024-12-31"}))
	assert.Contains(t, texts, "Caduca: 2024-12-31")

	l = testLayouter(t, config.DateStyleCombined, "de")
	texts = lineTexts(l.Layout(LabelData{Name: "Milch", PurchasedDate: "2024-10-05"}))
	assert.Contains(t, texts, "Gekauft: 2024-10-05")
}

func TestLayoutFarFutureSuppression(t *testing.T) {
	l := testLayouter(t, config.DateStyleCombined, "en")

	sentinel := layoutNow.AddDate(0, 0, farFutureDays+1).Format(isoDateLayout)
	texts := lineTexts(l.Layout(LabelData{
		Name: "Salt", BestBeforeDate: sentinel, PurchasedDate: "2024-10-05",
	}))
	// sentinel expiry drops out, purchased date stands alone
	assert.Contains(t, texts, "Purchased: 2024-10-05")
	assert.NotContains(t, texts, "2024-10-05 - "+sentinel)

	// sentinel only: no date line at all
	assert.Len(t, l.Layout(LabelData{Name: "Salt", BestBeforeDate: sentinel}).Lines, 1)
}

func TestIsFarFuture(t *testing.T) {
	now := layoutNow

	assert.False(t, isFarFuture(now.AddDate(0, 0, farFutureDays).Format(isoDateLayout), now))
	assert.True(t, isFarFuture(now.AddDate(0, 0, farFutureDays+1).Format(isoDateLayout), now))
	assert.False(t, isFarFuture("2024-12-31", now))
	// unparseable dates are conservatively shown
	assert.False(t, isFarFuture("soon", now))
	assert.False(t, isFarFuture("", now))
	assert.False(t, isFarFuture("31.12.2999", now))
}

func TestLayoutWrappedNameSpacing(t *testing.T) {
	l := testLayouter(t, config.DateStyleCombined, "en")
	plan := l.Layout(LabelData{
		Name:   "Organic Whole Wheat Sourdough Bread",
		Amount: "1", UnitName: "loaf",
	})

	var nameLines []TextLine
	for _, ln := range plan.Lines {
		if ln.Font == FontLarge {
			nameLines = append(nameLines, ln)
		}
	}
	require.Greater(t, len(nameLines), 1)

	// +10 between wrapped title lines, +20 after the block
	assert.Equal(t, lineHeight+nameLineGap, nameLines[1].Y-nameLines[0].Y)
	amountLine := plan.Lines[len(nameLines)]
	assert.Equal(t, lineHeight+nameBlockGap, amountLine.Y-nameLines[len(nameLines)-1].Y)
}
