package formatter

import (
	"testing"

	"github.com/akorchak/docchat-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactory_CreatesAllFormats(t *testing.T) {
	f := NewFactory()

	for _, format := range []entity.TranscriptFormat{entity.FormatMarkdown, entity.FormatDOCX, entity.FormatPDF} {
		fmtr, err := f.Create(format)
		require.NoError(t, err)
		assert.NotNil(t, fmtr)
		assert.NotEmpty(t, fmtr.ContentType())
		assert.NotEmpty(t, fmtr.FileExtension())
	}
}

func TestFactory_UnsupportedFormat(t *testing.T) {
	f := NewFactory()

	_, err := f.Create(entity.TranscriptFormat("xlsx"))
	assert.Error(t, err)
}

func TestMarkdownFormatter_AlternatingSpeakers(t *testing.T) {
	out, err := NewMarkdownFormatter().Format([]string{"What is Go?", "A programming language."})

	require.NoError(t, err)
	text := string(out)
	assert.Contains(t, text, "# Conversation transcript")
	assert.Contains(t, text, "**You:** What is Go?")
	assert.Contains(t, text, "**Assistant:** A programming language.")
}

func TestMarkdownFormatter_EmptyHistory(t *testing.T) {
	out, err := NewMarkdownFormatter().Format(nil)

	require.NoError(t, err)
	assert.Contains(t, string(out), "# Conversation transcript")
}

func TestPDFFormatter_ProducesPDFHeader(t *testing.T) {
	out, err := NewPDFFormatter().Format([]string{"Question?", "Answer."})

	require.NoError(t, err)
	require.Greater(t, len(out), 4)
	assert.Equal(t, "%PDF", string(out[:4]))
}
