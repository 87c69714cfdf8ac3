package docprobe

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// Line is a line of text placed at X, Y in PDF user space: points, with the
// origin at the bottom-left corner of the page.
type Line struct {
	X, Y float64
	Text string
}

// DefaultLines are drawn on the test page.
var DefaultLines = []Line{
	{X: 100, Y: 750, Text: "Deployment Test"},
	{X: 100, Y: 700, Text: "PDF generation is working!"},
}

// pdfMagic starts every well-formed PDF file.
var pdfMagic = []byte("%PDF-")

// RenderPDF renders lines onto a single Letter page and returns the
// finished document.
func RenderPDF(lines []Line) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetTitle("Deployment Test", true)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 12)

	// fpdf measures Y from the top edge.
	_, height := pdf.GetPageSize()
	for _, l := range lines {
		pdf.Text(l.X, height-l.Y, l.Text)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// validPDF reports whether data starts with the PDF header.
func validPDF(data []byte) bool {
	return bytes.HasPrefix(data, pdfMagic)
}
