package render

import (
	"image"
	"strconv"

	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/cumaze/registro-consorcio/core/academic"
	"github.com/cumaze/registro-consorcio/core/branding"
)

const (
	logoMaxWidth       = 220
	logoMaxHeight      = 110
	signatureMaxWidth  = 220
	signatureMaxHeight = 90
)

// kardex column weights, by column title
var columnWeights = map[string]float64{
	"No":                   .5,
	"Fecha administrativa": 1.3,
	"Metodología":          1.1,
	"Nombre del curso":     3.6,
	"Horas promedio":       .9,
	"Nota Alfabética":      .9,
	"Sistema E":            1.2,
	"Nota Numérica":        .9,
	"Créditos":             .8,
}

// Renderer rasterizes documents. It is safe for concurrent use.
type Renderer struct {
	regular *truetype.Font
	bold    *truetype.Font
}

func NewRenderer() (*Renderer, error) {
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, errors.Wrap(err, "parsing regular font")
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, errors.Wrap(err, "parsing bold font")
	}
	return &Renderer{regular: regular, bold: bold}, nil
}

// Rasterize draws doc on a page-wide canvas cropped to its content.
// Signature images are drawn only for slots marked as signed.
func (r *Renderer) Rasterize(doc academic.Document, assets branding.Assets) (image.Image, error) {
	p := newPage(r.regular, r.bold)

	if err := p.header(doc, assets); err != nil {
		return nil, err
	}
	if doc.InfoCards != nil {
		p.infoCards(doc.InfoCards)
	}
	switch {
	case doc.Kardex != nil:
		p.kardex(doc.Kardex)
	case doc.Homologacion != nil:
		p.homologacion(doc.Homologacion)
	case doc.Tesis != nil:
		p.tesis(doc.Tesis)
	case doc.Cierre != nil:
		p.cierre(doc.Cierre)
	}
	if len(doc.Signatures) > 0 {
		if err := p.signatures(doc.Signatures, assets); err != nil {
			return nil, err
		}
	}
	return p.image(), nil
}

func (p *page) header(doc academic.Document, assets branding.Assets) error {
	if logo, ok := assets.Images[branding.RoleLogo]; ok {
		h, err := p.picture(logo.Data, pageWidth/2, p.y, logoMaxWidth, logoMaxHeight)
		if err != nil {
			return errors.Wrap(err, "drawing logo")
		}
		p.gap(h + 16)
	}
	p.text(doc.Institution, sizeHeading, true, alignCenter, colorAccent)
	p.gap(6)
	p.text(doc.Title, sizeTitle, true, alignCenter, colorInk)
	p.gap(10)
	p.rule()
	p.gap(10)
	return nil
}

func (p *page) infoCards(cards *academic.InfoCards) {
	credits := append([]academic.InfoItem{}, cards.Credits...)
	credits = append(credits,
		academic.InfoItem{Label: "Total de créditos", Value: strconv.Itoa(cards.TotalCredits)},
		academic.InfoItem{Label: "Horas lectivas", Value: cards.LectiveHours},
	)
	if cards.Career != "" {
		credits = append(credits, academic.InfoItem{Label: "Carrera", Value: cards.Career})
	}
	columns := [][]academic.InfoItem{credits, cards.Identity, cards.Summary}

	top := p.y
	width := p.contentWidth() / float64(len(columns))
	bottom := top
	for i, items := range columns {
		p.y = top + 14
		x := margin + float64(i)*width + 14
		for _, it := range items {
			p.textAt(it.Label, x, width-28, sizeSmall, false, alignLeft, colorMuted)
			p.textAt(it.Value, x, width-28, sizeBody, true, alignLeft, colorInk)
			p.gap(6)
		}
		if p.y > bottom {
			bottom = p.y
		}
	}
	p.y = bottom + 8
	p.box(top)
	p.gap(24)
}

func (p *page) kardex(k *academic.Kardex) {
	weights := make([]float64, len(k.Columns))
	for i, c := range k.Columns {
		if w, ok := columnWeights[c]; ok {
			weights[i] = w
		} else {
			weights[i] = 1
		}
	}
	widths := columnWidths(weights, p.contentWidth())

	p.row(k.Columns, widths, sizeSmall, true, colorBand)
	for _, g := range k.Groups {
		p.row([]string{g.Title}, []float64{p.contentWidth()}, sizeSmall, true, colorBand)
		for _, r := range g.Rows {
			p.row(kardexCells(k.Columns, r), widths, sizeSmall, false, nil)
		}
	}
	if k.Thesis != nil {
		p.row(kardexCells(k.Columns, *k.Thesis), widths, sizeSmall, false, nil)
	}
	for _, r := range k.Padding {
		p.row(kardexCells(k.Columns, r), widths, sizeSmall, false, nil)
	}
	p.gap(16)
	p.text("Promedio: "+strconv.Itoa(k.Average), sizeBody, true, alignRight, colorInk)
	p.gap(10)
	p.text("Observaciones:", sizeBody, true, alignLeft, colorInk)
	if k.Observations != "" {
		p.text(k.Observations, sizeBody, false, alignLeft, colorInk)
	}
	p.gap(24)
}

// kardexCells lays a row out under the given column titles.
func kardexCells(columns []string, r academic.KardexRow) []string {
	cells := make([]string, len(columns))
	for i, c := range columns {
		switch c {
		case "No":
			cells[i] = strconv.Itoa(r.No)
		case "Fecha administrativa":
			cells[i] = r.Date
		case "Metodología":
			cells[i] = r.Methodology
		case "Nombre del curso":
			cells[i] = r.CourseName
		case "Horas promedio":
			cells[i] = r.AverageHours
		case "Nota Alfabética":
			if r.Grade != nil {
				cells[i] = r.Grade.Letter
			}
		case "Sistema E":
			if r.Grade != nil {
				cells[i] = r.Grade.Scale
			}
		case "Nota Numérica":
			if r.Grade != nil {
				cells[i] = strconv.Itoa(r.Grade.Numeric)
			}
		case "Créditos":
			cells[i] = r.Credits
		}
	}
	return cells
}

func (p *page) homologacion(h *academic.Homologacion) {
	fields := [][2]string{
		{"PARA:", h.To},
		{"DE:", h.From},
		{"ASUNTO:", h.Subject},
		{"FECHA:", h.Date},
	}
	if h.Career != "" {
		fields = append(fields, [2]string{"CARRERA:", h.Career})
	}
	for _, f := range fields {
		top := p.y
		p.textAt(f[0], margin, 160, sizeBody, true, alignLeft, colorInk)
		p.y = top
		p.textAt(f[1], margin+170, p.contentWidth()-170, sizeBody, false, alignLeft, colorInk)
		p.gap(4)
	}
	p.gap(8)
	p.rule()
	p.gap(8)
	p.text(h.Intro, sizeBody, false, alignLeft, colorInk)
	p.gap(16)

	rows := make([][]string, len(h.Rows))
	for i, r := range h.Rows {
		rows[i] = []string{r.Home, r.Origin}
	}
	p.table(h.Columns, []float64{1, 1}, rows, sizeSmall)
	p.gap(24)
}

func (p *page) tesis(t *academic.Tesis) {
	for _, para := range t.Paragraphs {
		p.text(para, sizeBody, false, alignLeft, colorInk)
		p.gap(12)
	}
	if t.Grade != nil {
		top := p.y
		p.gap(16)
		p.text(t.BoxTitle, sizeHeading, true, alignCenter, colorAccent)
		p.gap(8)
		p.text(t.Grade.Letter+"  ·  "+strconv.Itoa(t.Grade.Numeric), sizeTitle, true, alignCenter, colorInk)
		p.text(t.Grade.Scale, sizeBody, false, alignCenter, colorMuted)
		p.gap(16)
		p.box(top)
		p.gap(20)
	}
	if t.Closing != "" {
		p.text(t.Closing, sizeBody, false, alignLeft, colorInk)
		p.gap(24)
	}
}

func (p *page) cierre(c *academic.Cierre) {
	for _, para := range c.Paragraphs {
		p.text(para, sizeBody, false, alignCenter, colorInk)
		p.gap(10)
	}
	p.gap(10)
	p.text(c.Career, sizeHeading, true, alignCenter, colorAccent)
	p.gap(20)
	p.text(c.Closing, sizeBody, false, alignCenter, colorInk)
	p.gap(24)
}

func (p *page) signatures(slots []academic.SignatureSlot, assets branding.Assets) error {
	p.gap(40)
	top := p.y
	width := p.contentWidth() / float64(len(slots))
	bottom := top
	for i, s := range slots {
		x := margin + float64(i)*width
		p.y = top
		if img, ok := assets.Images[s.Role]; ok && s.Signed {
			if _, err := p.picture(img.Data, x+width/2, p.y, signatureMaxWidth, signatureMaxHeight); err != nil {
				return errors.Wrapf(err, "drawing %s signature", s.Role)
			}
		} else {
			p.y += signatureMaxHeight - 24
			p.textAt(s.Note, x, width, sizeSmall, false, alignCenter, colorMuted)
		}
		p.y = top + signatureMaxHeight
		p.dc.SetColor(colorInk)
		p.dc.SetLineWidth(1.5)
		p.dc.DrawLine(x+24, p.y+4, x+width-24, p.y+4)
		p.dc.Stroke()
		p.gap(10)
		p.textAt(s.Title, x, width, sizeBody, true, alignCenter, colorInk)
		if p.y > bottom {
			bottom = p.y
		}
	}
	p.y = bottom
	return nil
}
