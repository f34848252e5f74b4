package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_SentenceBoundaries(t *testing.T) {
	chunks := Split("Hello world. This is a test! Is it working?", 20)

	require.GreaterOrEqual(t, len(chunks), 2)
	assert.Equal(t, []string{"Hello world.", "This is a test!", "Is it working?"}, chunks)

	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 20)
	}
}

func TestSplit_AccumulatesUpToMaxLength(t *testing.T) {
	chunks := Split("One. Two. Three. Four.", 80)

	require.Len(t, chunks, 1)
	assert.Equal(t, "One. Two. Three. Four.", chunks[0])
}

func TestSplit_LongSentenceEmittedWhole(t *testing.T) {
	long := "This single sentence is far longer than the configured limit and has no inner boundary."
	chunks := Split(long+" Short one.", 20)

	require.NotEmpty(t, chunks)
	assert.Equal(t, long, chunks[0], "an oversized sentence must never be cut")
	assert.Contains(t, chunks, "Short one.")
}

func TestSplit_NoPunctuationSingleChunk(t *testing.T) {
	text := "no sentence ending punctuation anywhere in this input at all"
	chunks := Split(text, 10)

	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0])
}

func TestSplit_EmptyAndWhitespaceInput(t *testing.T) {
	assert.Empty(t, Split("", 800))
	assert.Empty(t, Split("   \n\t  ", 800))
}

func TestSplit_ChunksAreTrimmedAndNonEmpty(t *testing.T) {
	chunks := Split("  First sentence.   Second sentence!  \n Third?  ", 25)

	require.NotEmpty(t, chunks)
	for _, c := range chunks {
		assert.NotEmpty(t, strings.TrimSpace(c))
		assert.Equal(t, strings.TrimSpace(c), c)
	}
}

func TestSplit_NoSentenceDroppedOrReordered(t *testing.T) {
	text := "Alpha one. Beta two. Gamma three. Delta four. Epsilon five."
	chunks := Split(text, 25)

	rejoined := strings.Join(chunks, " ")
	for _, want := range []string{"Alpha one.", "Beta two.", "Gamma three.", "Delta four.", "Epsilon five."} {
		assert.Contains(t, rejoined, want)
	}
	assert.Equal(t, strings.Join(strings.Fields(text), " "), strings.Join(strings.Fields(rejoined), " "))
}

func TestSplit_DecimalNumbersNotSplit(t *testing.T) {
	chunks := Split("The value of pi is 3.14159 approximately. Next sentence here.", 35)

	assert.Contains(t, chunks[0], "3.14159")
}

func TestSplit_Deterministic(t *testing.T) {
	text := "Repeatable input. Same every time! Is it pure?"

	first := Split(text, 30)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Split(text, 30))
	}
}
