package export

import (
	"bytes"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth  = 210.0
	pageHeight = 297.0
	pageMargin = 5.0

	topMarginBackground    = 70.0
	topMarginPlain         = 10.0
	bottomMarginBackground = 15.0
	bottomMarginPlain      = 10.0
)

// Placement is where the content raster lands on the page, in mm.
type Placement struct {
	X, Y, W, H float64
}

// Layout fits a pxW x pxH capture taken at scale onto the page. Pixels are
// converted at 96 dpi times the capture scale; the smaller of the width and
// height fit factors wins and the result is centered horizontally.
func Layout(pxW, pxH, scale int, background bool) Placement {
	pxToMM := 25.4 / float64(96*scale)
	wMM := float64(pxW) * pxToMM
	hMM := float64(pxH) * pxToMM

	top, bottom := topMarginPlain, bottomMarginPlain
	if background {
		top, bottom = topMarginBackground, bottomMarginBackground
	}
	maxW := pageWidth - 2*pageMargin
	maxH := pageHeight - top - bottom - pageMargin

	fit := math.Min(maxW/wMM, maxH/hMM)
	w, h := wMM*fit, hMM*fit
	return Placement{X: (pageWidth - w) / 2, Y: pageMargin + top, W: w, H: h}
}

// Assemble builds a single page PDF. content and background are PNG data;
// background may be nil. The background is stretched over the full page
// before the content is placed on top.
func Assemble(title string, content []byte, pxW, pxH, scale int, background []byte) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(false)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(title, true)
	pdf.AddPage()

	opts := fpdf.ImageOptions{ImageType: "png"}
	if background != nil {
		pdf.RegisterImageOptionsReader("background", opts, bytes.NewReader(background))
		pdf.ImageOptions("background", 0, 0, pageWidth, pageHeight, false, opts, 0, "")
	}

	pl := Layout(pxW, pxH, scale, background != nil)
	pdf.RegisterImageOptionsReader("content", opts, bytes.NewReader(content))
	pdf.ImageOptions("content", pl.X, pl.Y, pl.W, pl.H, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("assemble pdf: %w", err)
	}
	return buf.Bytes(), nil
}
