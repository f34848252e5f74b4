package extractor

import (
	"errors"
	"testing"

	"github.com/akorchak/docchat-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_PlainText(t *testing.T) {
	text, err := Extract("notes.txt", []byte("plain text content"))

	require.NoError(t, err)
	assert.Equal(t, "plain text content", text)
}

func TestExtract_Markdown(t *testing.T) {
	text, err := Extract("README.md", []byte("# Title\n\nBody."))

	require.NoError(t, err)
	assert.Equal(t, "# Title\n\nBody.", text)
}

func TestExtract_ExtensionCaseInsensitive(t *testing.T) {
	text, err := Extract("NOTES.TXT", []byte("upper"))

	require.NoError(t, err)
	assert.Equal(t, "upper", text)
}

func TestExtract_LegacyDocRejected(t *testing.T) {
	_, err := Extract("old.doc", []byte("whatever"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrUnsupportedFormat))
}

func TestExtract_UnknownExtensionRejected(t *testing.T) {
	_, err := Extract("image.png", []byte{0x89, 0x50})

	require.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrUnsupportedFormat))
}

func TestExtract_CorruptPDFFails(t *testing.T) {
	_, err := Extract("broken.pdf", []byte("not really a pdf"))

	require.Error(t, err)
}
