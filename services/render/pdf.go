package render

import (
	"bytes"
	"image"
	"image/png"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"

	"github.com/cumaze/registro-consorcio/core/academic"
	"github.com/cumaze/registro-consorcio/core/branding"
)

// A4 portrait, millimetres
const (
	a4Width  = 210.0
	a4Height = 297.0

	pageImageName = "page"
)

// Placement is where a page image lands on the PDF page, in millimetres.
type Placement struct {
	X, Y, W, H float64
}

// Fit scales an image of w x h pixels to the page width, then down to the page height when
// still too tall, and centers it.
func Fit(w, h int) Placement {
	if w <= 0 || h <= 0 {
		return Placement{}
	}
	pw := a4Width
	ph := float64(h) * a4Width / float64(w)
	if ph > a4Height {
		ph = a4Height
		pw = float64(w) * a4Height / float64(h)
	}
	return Placement{X: (a4Width - pw) / 2, Y: (a4Height - ph) / 2, W: pw, H: ph}
}

// PDF places img on a single A4 page.
func PDF(img image.Image, title string) ([]byte, error) {
	var raw bytes.Buffer
	if err := png.Encode(&raw, img); err != nil {
		return nil, errors.Wrap(err, "encoding page image")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetCreator("registro-consorcio", true)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(pageImageName, opts, &raw)
	b := img.Bounds()
	at := Fit(b.Dx(), b.Dy())
	pdf.ImageOptions(pageImageName, at.X, at.Y, at.W, at.H, false, opts, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, errors.Wrap(err, "writing pdf")
	}
	return out.Bytes(), nil
}

// Exporter turns documents into PDF files.
type Exporter struct {
	renderer *Renderer
}

func NewExporter(r *Renderer) *Exporter {
	return &Exporter{renderer: r}
}

// Export rasterizes doc and wraps it in a PDF. The file name comes from the document.
func (e *Exporter) Export(doc academic.Document, assets branding.Assets) (string, []byte, error) {
	img, err := e.renderer.Rasterize(doc, assets)
	if err != nil {
		return "", nil, errors.Wrapf(err, "rasterizing %s", doc.Kind)
	}
	data, err := PDF(img, doc.Title)
	if err != nil {
		return "", nil, err
	}
	return doc.FileName, data, nil
}
