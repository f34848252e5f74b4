// Package formatter renders a conversation transcript into a
// downloadable document.
package formatter

import (
	"fmt"

	"github.com/akorchak/docchat-backend/internal/entity"
)

const transcriptTitle = "Conversation transcript"

// speaker returns the label for a turn at position i; turns alternate
// user first.
func speaker(i int) string {
	if i%2 == 0 {
		return "You"
	}
	return "Assistant"
}

// Formatter renders alternating question/answer turns into bytes.
type Formatter interface {
	Format(turns []string) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.TranscriptFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
