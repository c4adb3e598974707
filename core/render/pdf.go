// Package render — PDF renderer.
// Lays the Document out on A4 pages with gofpdf: headings sized by level,
// paragraphs written as styled runs, Courier code blocks on a grey fill,
// indented lists and quotes with a left bar.
package render

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gaurav-prasanna/pygmalion/core"
	"github.com/jung-kurt/gofpdf"
)

const (
	pdfLineHeight = 5.0
	pdfIndent     = 8.0
	pdfBodySize   = 10.0
)

// headingSizes maps heading level to font size in points.
var headingSizes = map[int]float64{1: 18, 2: 15, 3: 13, 4: 12, 5: 11, 6: 10}

// PDFRenderer renders a Document as a PDF.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// pdfDoc carries the gofpdf handle and the UTF-8 to cp1252 translator for
// a single Render call.
type pdfDoc struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

// Render converts the Document into PDF bytes.
func (r *PDFRenderer) Render(doc *core.Document) ([]byte, error) {
	doc = orEmpty(doc)
	if err := checkDocument("pdf", doc); err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(time.Unix(0, 0).UTC())
	pdf.SetModificationDate(time.Unix(0, 0).UTC())
	pdf.SetCatalogSort(true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	d := &pdfDoc{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	title := doc.Title()
	if title != "" {
		pdf.SetTitle(title, true)
	}
	if doc.Meta.Title != "" {
		pdf.SetFont("Helvetica", "B", 18)
		pdf.MultiCell(0, 8, d.tr(doc.Meta.Title), "", "L", false)
		pdf.Ln(4)
	}
	if doc.Meta.Source != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.MultiCell(0, 5, d.tr("Source: "+doc.Meta.Source), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(6)
	}

	for i, b := range doc.Blocks {
		if err := d.block(i, b); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("generating pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

func (d *pdfDoc) block(i int, b core.Block) error {
	pdf := d.pdf
	left, _, right, _ := pdf.GetMargins()
	pageW, _ := pdf.GetPageSize()

	switch n := b.(type) {
	case *core.Paragraph:
		d.runs(n.Inlines, "", pdfBodySize)
		pdf.Ln(pdfLineHeight + 3)

	case *core.Heading:
		size, ok := headingSizes[n.Level]
		if !ok {
			size = pdfBodySize
		}
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", size)
		pdf.MultiCell(0, size*0.6, d.tr(core.PlainText(n.Inlines)), "", "L", false)
		pdf.Ln(2)

	case *core.CodeBlock:
		pdf.Ln(2)
		pdf.SetFont("Courier", "", 9)
		pdf.SetFillColor(245, 245, 245)
		pdf.MultiCell(0, 4.5, d.tr(n.Text), "", "L", true)
		pdf.Ln(4)

	case *core.List:
		for j, it := range n.Items {
			marker := "•"
			if n.Ordered {
				marker = fmt.Sprintf("%d.", n.Start+j)
			}
			pdf.SetFont("Helvetica", "", pdfBodySize)
			pdf.SetX(left)
			pdf.CellFormat(pdfIndent, pdfLineHeight, d.tr(marker), "", 0, "L", false, 0, "")
			pdf.SetLeftMargin(left + pdfIndent)
			d.runs(it.Inlines, "", pdfBodySize)
			pdf.SetLeftMargin(left)
			pdf.Ln(pdfLineHeight)
		}
		pdf.Ln(3)

	case *core.Quote:
		top := pdf.GetY()
		pdf.SetLeftMargin(left + pdfIndent)
		pdf.SetX(left + pdfIndent)
		pdf.SetTextColor(90, 90, 90)
		d.runs(n.Inlines, "I", pdfBodySize)
		pdf.Ln(pdfLineHeight)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetLeftMargin(left)
		pdf.SetDrawColor(180, 180, 180)
		pdf.Line(left+2, top, left+2, pdf.GetY())
		pdf.Ln(3)

	case *core.Rule:
		y := pdf.GetY() + 2
		pdf.SetDrawColor(200, 200, 200)
		pdf.Line(left, y, pageW-right, y)
		pdf.Ln(6)

	default:
		return core.UnsupportedBlock("pdf", i, b)
	}

	if pdf.Err() {
		return fmt.Errorf("laying out block %d: %w", i, pdf.Error())
	}
	return nil
}

// runs writes inlines as flowing text, switching font style per span.
func (d *pdfDoc) runs(inlines []core.Inline, style string, size float64) {
	pdf := d.pdf
	for _, in := range inlines {
		switch n := in.(type) {
		case *core.Text:
			pdf.SetFont("Helvetica", style, size)
			pdf.Write(pdfLineHeight, d.tr(n.Value))
		case *core.Code:
			pdf.SetFont("Courier", "", size)
			pdf.Write(pdfLineHeight, d.tr(n.Value))
		case *core.Emphasis:
			d.runs(n.Children, addStyle(style, "I"), size)
		case *core.Strong:
			d.runs(n.Children, addStyle(style, "B"), size)
		case *core.Link:
			pdf.SetFont("Helvetica", addStyle(style, "U"), size)
			pdf.SetTextColor(30, 80, 200)
			pdf.WriteLinkString(pdfLineHeight, d.tr(core.PlainText(n.Children)), n.URL)
			pdf.SetTextColor(0, 0, 0)
		}
	}
}

// addStyle merges a gofpdf style letter into style.
func addStyle(style, s string) string {
	for _, c := range style {
		if string(c) == s {
			return style
		}
	}
	return style + s
}
