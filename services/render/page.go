package render

import (
	"bytes"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
)

// canvas size in pixels: A4 width at 150 dpi, tall enough for a padded kardex
const (
	pageWidth    = 1240
	canvasHeight = 4200
	margin       = 80.0
	cellPadding  = 6.0
	lineSpacing  = 1.35

	sizeTitle   = 34
	sizeHeading = 22
	sizeBody    = 18
	sizeSmall   = 14
)

type align int

const (
	alignLeft align = iota
	alignCenter
	alignRight
)

var (
	colorInk    = color.RGBA{R: 0x1f, G: 0x29, B: 0x37, A: 0xff}
	colorMuted  = color.RGBA{R: 0x6b, G: 0x72, B: 0x80, A: 0xff}
	colorAccent = color.RGBA{R: 0x1e, G: 0x3a, B: 0x8a, A: 0xff}
	colorRule   = color.RGBA{R: 0xd1, G: 0xd5, B: 0xdb, A: 0xff}
	colorBand   = color.RGBA{R: 0xf3, G: 0xf4, B: 0xf6, A: 0xff}
)

// page is a vertical cursor over a white canvas.
type page struct {
	dc    *gg.Context
	fonts *fontSet
	y     float64
}

func newPage(regular, bold *truetype.Font) *page {
	dc := gg.NewContext(pageWidth, canvasHeight)
	dc.SetColor(color.White)
	dc.Clear()
	fonts := &fontSet{regular: regular, bold: bold, faces: make(map[faceKey]font.Face)}
	return &page{dc: dc, fonts: fonts, y: margin}
}

func (p *page) contentWidth() float64 {
	return pageWidth - 2*margin
}

func (p *page) setFont(size float64, bold bool) font.Face {
	face := p.fonts.face(size, bold)
	p.dc.SetFontFace(face)
	return face
}

func (p *page) lineHeight() float64 {
	return p.dc.FontHeight() * lineSpacing
}

func (p *page) gap(h float64) {
	p.y += h
}

// text wraps s over the content width at the cursor and moves below it.
func (p *page) text(s string, size float64, bold bool, a align, c color.Color) {
	p.textAt(s, margin, p.contentWidth(), size, bold, a, c)
}

func (p *page) textAt(s string, x, width, size float64, bold bool, a align, c color.Color) {
	p.setFont(size, bold)
	p.dc.SetColor(c)
	lh := p.lineHeight()
	for _, line := range p.dc.WordWrap(s, width) {
		p.drawLine(line, x, p.y, width, a)
		p.y += lh
	}
}

// drawLine draws one line with its top at y.
func (p *page) drawLine(line string, x, y, width float64, a align) {
	baseline := y + p.dc.FontHeight()
	switch a {
	case alignCenter:
		p.dc.DrawStringAnchored(line, x+width/2, baseline, .5, 0)
	case alignRight:
		p.dc.DrawStringAnchored(line, x+width, baseline, 1, 0)
	default:
		p.dc.DrawString(line, x, baseline)
	}
}

func (p *page) rule() {
	p.dc.SetColor(colorRule)
	p.dc.SetLineWidth(2)
	p.dc.DrawLine(margin, p.y, pageWidth-margin, p.y)
	p.dc.Stroke()
	p.y += 12
}

// table draws rows under a shaded header. Column widths are proportional to weights.
func (p *page) table(header []string, weights []float64, rows [][]string, size float64) {
	widths := columnWidths(weights, p.contentWidth())
	p.row(header, widths, size, true, colorBand)
	for _, r := range rows {
		p.row(r, widths, size, false, nil)
	}
}

func (p *page) row(cells []string, widths []float64, size float64, bold bool, band color.Color) {
	p.setFont(size, bold)
	lh := p.lineHeight()

	wrapped := make([][]string, len(widths))
	lines := 1
	for i, w := range widths {
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		wrapped[i] = p.dc.WordWrap(cell, w-2*cellPadding)
		if len(wrapped[i]) > lines {
			lines = len(wrapped[i])
		}
	}
	height := float64(lines)*lh + 2*cellPadding

	x := margin
	for i, w := range widths {
		p.dc.DrawRectangle(x, p.y, w, height)
		if band != nil {
			p.dc.SetColor(band)
			p.dc.FillPreserve()
		}
		p.dc.SetColor(colorRule)
		p.dc.SetLineWidth(1)
		p.dc.Stroke()

		p.dc.SetColor(colorInk)
		for j, line := range wrapped[i] {
			p.drawLine(line, x+cellPadding, p.y+cellPadding+float64(j)*lh, w-2*cellPadding, alignLeft)
		}
		x += w
	}
	p.y += height
}

func columnWidths(weights []float64, total float64) []float64 {
	var sum float64
	for _, w := range weights {
		sum += w
	}
	out := make([]float64, len(weights))
	for i, w := range weights {
		out[i] = total * w / sum
	}
	return out
}

// box strokes a rectangle from top to the cursor.
func (p *page) box(top float64) {
	p.dc.SetColor(colorRule)
	p.dc.SetLineWidth(2)
	p.dc.DrawRoundedRectangle(margin, top, p.contentWidth(), p.y-top, 8)
	p.dc.Stroke()
}

// picture decodes data and draws it scaled into a maxW x maxH box centered at cx, top at y.
// It returns the drawn height.
func (p *page) picture(data []byte, cx, y, maxW, maxH float64) (float64, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return 0, errors.Wrap(err, "decoding image")
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return 0, nil
	}
	scale := math.Min(maxW/float64(b.Dx()), maxH/float64(b.Dy()))
	w := int(math.Max(1, math.Round(float64(b.Dx())*scale)))
	h := int(math.Max(1, math.Round(float64(b.Dy())*scale)))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	p.dc.DrawImage(dst, int(cx)-w/2, int(y))
	return float64(h), nil
}

// image crops the canvas below the cursor.
func (p *page) image() image.Image {
	h := int(math.Ceil(math.Min(p.y+margin, canvasHeight)))
	img := p.dc.Image()
	if sub, ok := img.(interface {
		SubImage(image.Rectangle) image.Image
	}); ok {
		return sub.SubImage(image.Rect(0, 0, pageWidth, h))
	}
	return img
}

// fontSet caches faces for one page; faces are not safe for concurrent use.
type fontSet struct {
	regular *truetype.Font
	bold    *truetype.Font
	faces   map[faceKey]font.Face
}

type faceKey struct {
	size float64
	bold bool
}

func (fs *fontSet) face(size float64, bold bool) font.Face {
	k := faceKey{size: size, bold: bold}
	if f, ok := fs.faces[k]; ok {
		return f
	}
	f := fs.regular
	if bold {
		f = fs.bold
	}
	face := truetype.NewFace(f, &truetype.Options{Size: size})
	fs.faces[k] = face
	return face
}
