package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strconv"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/Nixie-Tech-LLC/imsakiye/internal/fontsettings"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/model"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/render"
)

// Capture geometry in CSS pixels.
const (
	LayoutWidth  = 1400
	CaptureScale = 2
	HeaderMargin = 450

	containerPadding = 40
	titleHeight      = 70
	festivalHeight   = 90
)

// ErrTainted is returned when a capture holding cross-origin pixels is
// read back.
var ErrTainted = errors.New("capture is tainted by cross-origin content")

// Decoration is an image drawn into the reserved header area.
type Decoration struct {
	Name        string
	Image       image.Image
	CrossOrigin bool
}

type CaptureOptions struct {
	Width        int
	Scale        int
	HeaderMargin int
	// AllowTaint lets cross-origin decorations into the capture, at the
	// cost of a capture that cannot be read back.
	AllowTaint  bool
	Decorations []Decoration
}

// DefaultCaptureOptions returns the fixed desktop capture geometry.
func DefaultCaptureOptions() CaptureOptions {
	return CaptureOptions{Width: LayoutWidth, Scale: CaptureScale, HeaderMargin: HeaderMargin, AllowTaint: true}
}

// Capture is a rasterized calendar container.
type Capture struct {
	Image   *image.NRGBA
	Tainted bool
}

// PNG encodes the capture. A tainted capture cannot be encoded.
func (c *Capture) PNG() ([]byte, error) {
	if c.Tainted {
		return nil, ErrTainted
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, c.Image); err != nil {
		return nil, fmt.Errorf("encode capture: %w", err)
	}
	return buf.Bytes(), nil
}

// Capturer rasterizes a rendered table.
type Capturer interface {
	Capture(ctx context.Context, t render.Table, s fontsettings.Settings, opts CaptureOptions) (*Capture, error)
}

// Rasterizer draws the table with the Go font family.
type Rasterizer struct {
	regular *opentype.Font
	bold    *opentype.Font
}

func NewRasterizer() (*Rasterizer, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	return &Rasterizer{regular: regular, bold: bold}, nil
}

type faceKey struct {
	bold bool
	size int
}

// canvas scales CSS pixels to device pixels and caches faces.
type canvas struct {
	img   *image.NRGBA
	scale int
	r     *Rasterizer
	faces map[faceKey]font.Face
}

func (c *canvas) face(bold bool, cssSize int) (font.Face, error) {
	key := faceKey{bold: bold, size: cssSize * c.scale}
	if f, ok := c.faces[key]; ok {
		return f, nil
	}
	src := c.r.regular
	if bold {
		src = c.r.bold
	}
	f, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    float64(key.size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face at %dpx: %w", key.size, err)
	}
	c.faces[key] = f
	return f, nil
}

func (c *canvas) close() {
	for _, f := range c.faces {
		f.Close()
	}
}

func (c *canvas) rect(x, y, w, h int, col color.Color) {
	r := image.Rect(x*c.scale, y*c.scale, (x+w)*c.scale, (y+h)*c.scale)
	draw.Draw(c.img, r, image.NewUniform(col), image.Point{}, draw.Over)
}

// text draws s centered in the box (x, y, w, h).
func (c *canvas) text(s string, spec fontsettings.StyleSpec, x, y, w, h int) error {
	face, err := c.face(isBold(spec.FontWeight), spec.FontSize)
	if err != nil {
		return err
	}
	m := face.Metrics()
	width := font.MeasureString(face, s).Round()
	px := x*c.scale + (w*c.scale-width)/2
	baseline := y*c.scale + (h*c.scale+m.Ascent.Round()-m.Descent.Round())/2
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(parseColor(spec.Color)),
		Face: face,
		Dot:  fixed.P(px, baseline),
	}
	d.DrawString(s)
	return nil
}

var (
	headerFill        = color.NRGBA{R: 0x1a, G: 0x5f, B: 0x3f, A: 0xff}
	rowFill           = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	stripeFill        = color.NRGBA{R: 0xf4, G: 0xf8, B: 0xf6, A: 0xff}
	commemorativeFill = color.NRGBA{R: 0xff, G: 0xf3, B: 0xcd, A: 0xff}
)

func rowHeight(size int) int {
	return size*2 + 8
}

// Capture renders t with s applied. The result is tainted when a
// cross-origin decoration was drawn.
func (r *Rasterizer) Capture(ctx context.Context, t render.Table, s fontsettings.Settings, opts CaptureOptions) (*Capture, error) {
	if opts.Width <= 0 || opts.Scale <= 0 {
		return nil, fmt.Errorf("invalid capture geometry %dx%d", opts.Width, opts.Scale)
	}

	rh := rowHeight(s.Global.FontSize)
	height := opts.HeaderMargin + titleHeight + rh*(len(t.Rows)+1) + festivalHeight + containerPadding
	c := &canvas{
		img:   image.NewNRGBA(image.Rect(0, 0, opts.Width*opts.Scale, height*opts.Scale)),
		scale: opts.Scale,
		r:     r,
		faces: map[faceKey]font.Face{},
	}
	defer c.close()

	tainted := false
	for _, d := range opts.Decorations {
		if d.CrossOrigin && !opts.AllowTaint {
			continue
		}
		drawDecoration(c, d.Image, opts)
		tainted = tainted || d.CrossOrigin
	}

	y := opts.HeaderMargin
	inner := opts.Width - 2*containerPadding
	title := s.Global
	title.FontSize += 10
	title.FontWeight = "bold"
	title.Color = "#1a5f3f"
	if err := c.text(t.Title, title, containerPadding, y, inner, titleHeight); err != nil {
		return nil, err
	}
	y += titleHeight

	colW := inner / model.ColumnCount
	header := fontsettings.StyleSpec{FontSize: s.Global.FontSize, FontWeight: "bold", Color: "#ffffff"}
	if s.Header.Enabled {
		header = s.Header.StyleSpec
	}
	c.rect(containerPadding, y, colW*model.ColumnCount, rh, headerFill)
	for i, h := range t.Headers {
		if err := c.text(h, header, containerPadding+i*colW, y, colW, rh); err != nil {
			return nil, err
		}
	}
	y += rh

	for n, row := range t.Rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if row.Commemorative {
			c.rect(containerPadding, y, colW*model.ColumnCount, rh, commemorativeFill)
			spec := s.Global
			spec.FontWeight = "bold"
			if err := c.text(render.CommemorativeText, spec, containerPadding, y, colW*model.ColumnCount, rh); err != nil {
				return nil, err
			}
			y += rh
			continue
		}
		fill := rowFill
		if n%2 == 1 {
			fill = stripeFill
		}
		c.rect(containerPadding, y, colW*model.ColumnCount, rh, fill)
		for i, cell := range row.Cells {
			if err := c.text(cell.Plain(), cellStyle(s, i, cell.Bold), containerPadding+i*colW, y, colW, rh); err != nil {
				return nil, err
			}
		}
		y += rh
	}

	festival := s.Global
	festival.FontWeight = "bold"
	if err := c.text(t.Festival.Date, festival, containerPadding, y+10, inner, festivalHeight/2); err != nil {
		return nil, err
	}
	if t.Festival.PrayerVisible {
		line := "Bayram Namazı: " + t.Festival.PrayerTime
		if err := c.text(line, festival, containerPadding, y+10+festivalHeight/2, inner, festivalHeight/2); err != nil {
			return nil, err
		}
	}

	return &Capture{Image: c.img, Tainted: tainted}, nil
}

// cellStyle resolves the effective style of a data cell the way the
// generated stylesheet cascades: the column rule beats the global rule.
func cellStyle(s fontsettings.Settings, col int, emphasized bool) fontsettings.StyleSpec {
	if s.Columns[col].Enabled {
		return s.Columns[col].StyleSpec
	}
	spec := s.Global
	if emphasized {
		spec.FontWeight = model.Columns[col].DefaultWeight
		spec.Color = model.Columns[col].DefaultColor
	}
	return spec
}

func drawDecoration(c *canvas, img image.Image, opts CaptureOptions) {
	if img == nil {
		return
	}
	b := img.Bounds()
	area := opts.HeaderMargin * opts.Scale
	x := (opts.Width*opts.Scale - b.Dx()) / 2
	y := (area - b.Dy()) / 2
	r := image.Rect(x, y, x+b.Dx(), y+b.Dy())
	draw.Draw(c.img, r, img, b.Min, draw.Over)
}

func isBold(weight string) bool {
	switch weight {
	case "bold", "bolder":
		return true
	}
	n, err := strconv.Atoi(weight)
	return err == nil && n >= 600
}

// parseColor reads #rgb or #rrggbb. Anything else is black.
func parseColor(hex string) color.NRGBA {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || len(hex) != 6 {
		return color.NRGBA{A: 0xff}
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
