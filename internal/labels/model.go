package labels

// RawRequest is whatever the caller posted. Grocy webhooks send loosely
// structured JSON (nested maps, missing keys, mixed types); form posts and
// query strings arrive as flat string maps. No schema is assumed.
type RawRequest map[string]any

// LabelData is the canonical label content after extraction. All fields are
// plain strings; empty means absent. Immutable once built.
type LabelData struct {
	Name           string
	Barcode        string
	BestBeforeDate string
	PurchasedDate  string
	Amount         string
	UnitName       string
	Note           string
}

// FontID selects one of the two label faces.
type FontID int

const (
	FontLarge FontID = iota // title face
	FontSmall               // detail face
)

// QRBox places the QR symbol on the canvas.
type QRBox struct {
	Content string
	X, Y    int
	Size    int
}

// TextLine places one rendered text line. Y is the top of the line box;
// the renderer adds the face ascent to find the baseline.
type TextLine struct {
	Text string
	Font FontID
	X, Y int
}

// LayoutPlan is the ordered draw program for one label: an optional QR box
// followed by text lines, plus the computed canvas size. Built fresh per
// request and never mutated afterwards.
type LayoutPlan struct {
	Width  int
	Height int
	QR     *QRBox
	Lines  []TextLine
}
