// Package chunker splits extracted document text into bounded,
// sentence-respecting segments used as the unit of retrieval.
package chunker

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxLength is the soft ceiling for a chunk, in bytes.
const DefaultMaxLength = 800

// Split cuts text into chunks of roughly maxLen bytes without breaking
// sentences. Sentences are accumulated greedily; a sentence that alone
// exceeds maxLen is emitted whole, so maxLen is a soft target, not a
// hard limit. Empty and whitespace-only chunks are never produced.
func Split(text string, maxLen int) []string {
	if maxLen <= 0 {
		maxLen = DefaultMaxLength
	}

	var chunks []string
	current := ""

	for _, sentence := range splitSentences(text) {
		if len(current)+len(sentence) > maxLen {
			if c := strings.TrimSpace(current); c != "" {
				chunks = append(chunks, c)
			}
			current = sentence
		} else {
			current += " " + sentence
		}
	}

	if c := strings.TrimSpace(current); c != "" {
		chunks = append(chunks, c)
	}

	return chunks
}

// splitSentences breaks text at '.', '?' or '!' followed by whitespace.
// The terminator stays with its sentence, the separating whitespace is
// dropped. Text without any terminator comes back as a single sentence.
func splitSentences(text string) []string {
	var sentences []string
	start := 0

	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '.', '?', '!':
		default:
			continue
		}

		r, size := utf8.DecodeRuneInString(text[i+1:])
		if size == 0 || !unicode.IsSpace(r) {
			continue
		}

		sentences = append(sentences, text[start:i+1])

		j := i + 1
		for j < len(text) {
			r, size := utf8.DecodeRuneInString(text[j:])
			if !unicode.IsSpace(r) {
				break
			}
			j += size
		}
		start = j
		i = j - 1
	}

	if start < len(text) {
		sentences = append(sentences, text[start:])
	}

	return sentences
}
