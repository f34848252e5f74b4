package formatter

import (
	"bytes"
	"fmt"
	"os"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"

	// pdfFontName is the internal name used by gofpdf
	// for the UTF-8 capable font.
	pdfFontName = "DejaVuSans"

	// Runtime layout: fonts are copied next to the binary in Docker.
	pdfFontRuntimePath = "ttf/DejaVuSans.ttf"

	// Source layout, useful when running from the repo root with `go run`.
	pdfFontSourcePath = "internal/pkg/formatter/ttf/DejaVuSans.ttf"
)

type PDFFormatter struct{}

func NewPDFFormatter() *PDFFormatter {
	return &PDFFormatter{}
}

// resolveFontPath looks for the DejaVuSans font in the runtime layout
// first, then the source layout. Empty result means no UTF-8 font.
func resolveFontPath() string {
	if _, err := os.Stat(pdfFontRuntimePath); err == nil {
		return pdfFontRuntimePath
	}
	if _, err := os.Stat(pdfFontSourcePath); err == nil {
		return pdfFontSourcePath
	}
	return ""
}

func (pf *PDFFormatter) Format(turns []string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")

	font := "Helvetica"
	if path := resolveFontPath(); path != "" {
		pdf.AddUTF8Font(pdfFontName, "", path)
		font = pdfFontName
	}

	pdf.AddPage()

	pdf.SetFont(font, "", 16)
	pdf.MultiCell(0, 8, transcriptTitle, "", "L", false)
	pdf.Ln(4)

	for i, turn := range turns {
		pdf.SetFont(font, "", 12)
		pdf.MultiCell(0, 6, fmt.Sprintf("%s: %s", speaker(i), turn), "", "L", false)
		pdf.Ln(2)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (pf *PDFFormatter) ContentType() string {
	return pdfContentType
}

func (pf *PDFFormatter) FileExtension() string {
	return pdfFileExtension
}
