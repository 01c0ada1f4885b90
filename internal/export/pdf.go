package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/jung-kurt/gofpdf"
)

const pdfMargin = 10.0 // mm

// PDF writes img centred on a single landscape A4 page, scaled to fit inside the margins.
func PDF(w io.Writer, img image.Image, title string) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	p := gofpdf.New("L", "mm", "A4", "")
	p.SetTitle(title, true)
	p.SetCreator("DoodleBoard", true)
	p.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	p.RegisterImageOptionsReader("doodle", opts, &buf)

	pageW, pageH := p.GetPageSize()
	x, y, dw, dh := fit(img.Bounds(), pageW-2*pdfMargin, pageH-2*pdfMargin)
	p.ImageOptions("doodle", pdfMargin+x, pdfMargin+y, dw, dh, false, opts, 0, "")

	if err := p.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

// fit scales b to the largest size inside maxW x maxH keeping its aspect ratio,
// returning the offset that centres it.
func fit(b image.Rectangle, maxW, maxH float64) (x, y, w, h float64) {
	iw, ih := float64(b.Dx()), float64(b.Dy())
	if iw <= 0 || ih <= 0 {
		return 0, 0, maxW, maxH
	}
	scale := maxW / iw
	if ih*scale > maxH {
		scale = maxH / ih
	}
	w, h = iw*scale, ih*scale
	return (maxW - w) / 2, (maxH - h) / 2, w, h
}
