package labels

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/fogleman/gg"
	qrcode "github.com/skip2/go-qrcode"
)

// Renderer executes a LayoutPlan onto a raster canvas: white background,
// black ink, QR first, then text lines at their precomputed positions.
type Renderer struct {
	fonts *fontSet
}

func newRenderer(fonts *fontSet) *Renderer { return &Renderer{fonts: fonts} }

func (r *Renderer) Render(plan LayoutPlan) (image.Image, error) {
	dc := gg.NewContext(plan.Width, plan.Height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetRGB(0, 0, 0)

	if plan.QR != nil {
		qr, err := qrcode.New(plan.QR.Content, qrcode.Low)
		if err != nil {
			return nil, fmt.Errorf("encoding QR code: %w", err)
		}
		dc.DrawImage(qr.Image(plan.QR.Size), plan.QR.X, plan.QR.Y)
	}

	for _, ln := range plan.Lines {
		face := r.fonts.face(ln.Font)
		dc.SetFontFace(face)
		// plan Y is the top of the line box; DrawString wants the baseline
		baseline := ln.Y + face.Metrics().Ascent.Ceil()
		dc.DrawString(ln.Text, float64(ln.X), float64(baseline))
	}

	return dc.Image(), nil
}

func (r *Renderer) RenderPNG(plan LayoutPlan) ([]byte, error) {
	img, err := r.Render(plan)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding PNG: %w", err)
	}
	return buf.Bytes(), nil
}
