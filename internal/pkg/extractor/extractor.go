// Package extractor pulls plain text out of uploaded documents.
// Supported formats: pdf, docx, txt, md.
package extractor

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/akorchak/docchat-backend/internal/entity"
	"github.com/ledongthuc/pdf"
	"github.com/unidoc/unioffice/document"
)

// Extract returns the plain text of a document given its raw bytes and
// filename. The extension decides the parser.
func Extract(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".txt", ".md":
		return string(data), nil
	case ".pdf":
		return extractPDF(data)
	case ".docx":
		return extractDOCX(data)
	case ".doc":
		// Legacy binary Word has no maintained Go reader; docx only.
		return "", fmt.Errorf("%w: %s (convert to .docx)", entity.ErrUnsupportedFormat, ext)
	default:
		return "", fmt.Errorf("%w: %s", entity.ErrUnsupportedFormat, ext)
	}
}

func extractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	doc, err := document.Read(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer doc.Close()

	var sb strings.Builder
	for _, para := range doc.Paragraphs() {
		for _, run := range para.Runs() {
			sb.WriteString(run.Text())
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}
