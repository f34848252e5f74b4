package chat

import (
	"strings"
	"testing"

	"github.com/akorchak/docchat-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		hits   int
		reply  string
		minLen int
		want   entity.AnswerSource
	}{
		{"hits always win", 3, "", 30, entity.SourceRAG},
		{"hits with short reply", 1, "ok", 30, entity.SourceRAG},
		{"no hits long reply", 0, strings.Repeat("a", 30), 30, entity.SourceGeneral},
		{"no hits reply below threshold", 0, strings.Repeat("a", 29), 30, entity.SourceFallback},
		{"no hits empty reply", 0, "", 30, entity.SourceFallback},
		{"threshold counts runes not bytes", 0, strings.Repeat("é", 30), 30, entity.SourceGeneral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.hits, tt.reply, tt.minLen))
		})
	}
}

func TestLastTurns(t *testing.T) {
	turns := []string{"q1", "a1", "q2", "a2", "q3", "a3"}

	assert.Equal(t, turns, lastTurns(turns, 10))
	assert.Equal(t, []string{"q3", "a3"}, lastTurns(turns, 2))
	assert.Empty(t, lastTurns(nil, 6))
}

func TestBuildMessages_WithChunks(t *testing.T) {
	messages := buildMessages(
		[]string{"earlier question", "earlier answer"},
		[]string{"chunk one", "chunk two"},
		"current question",
	)

	require.Len(t, messages, 4)
	assert.Equal(t, entity.RoleSystem, messages[0].Role)
	assert.Equal(t, entity.RoleUser, messages[1].Role)
	assert.Equal(t, "earlier question", messages[1].Content)
	assert.Equal(t, entity.RoleAssistant, messages[2].Role)
	assert.Equal(t, "earlier answer", messages[2].Content)

	final := messages[3].Content
	assert.Contains(t, final, contextInstruction)
	assert.Contains(t, final, "chunk one")
	assert.Contains(t, final, "chunk two")
	assert.Contains(t, final, "current question")
	assert.Less(t, strings.Index(final, "chunk one"), strings.Index(final, "chunk two"))
}

func TestBuildMessages_WithoutChunks(t *testing.T) {
	messages := buildMessages(nil, nil, "just asking")

	require.Len(t, messages, 2)
	assert.Equal(t, entity.RoleSystem, messages[0].Role)
	assert.Equal(t, "just asking", messages[1].Content)
}
