package chat

import (
	"strings"
	"unicode/utf8"

	"github.com/akorchak/docchat-backend/internal/entity"
)

const systemInstruction = "You are a helpful assistant."

const contextInstruction = "Use the following documents to help answer the question. " +
	"If not enough, use your general knowledge as well."

// lastTurns returns at most n trailing elements of turns, oldest first.
func lastTurns(turns []string, n int) []string {
	if len(turns) <= n {
		return turns
	}
	return turns[len(turns)-n:]
}

// buildMessages assembles the prompt: the system instruction, the
// recent history as alternating user/assistant turns (even index =
// user), and a final user turn. When chunks were retrieved the final
// turn embeds them as context; otherwise it is the bare question.
func buildMessages(history, chunks []string, question string) []entity.ChatMessage {
	messages := make([]entity.ChatMessage, 0, len(history)+2)
	messages = append(messages, entity.ChatMessage{
		Role:    entity.RoleSystem,
		Content: systemInstruction,
	})

	for i, turn := range history {
		role := entity.RoleUser
		if i%2 == 1 {
			role = entity.RoleAssistant
		}
		messages = append(messages, entity.ChatMessage{Role: role, Content: turn})
	}

	if len(chunks) > 0 {
		var sb strings.Builder
		sb.WriteString(contextInstruction)
		sb.WriteString("\n\n")
		sb.WriteString(strings.Join(chunks, "\n\n"))
		sb.WriteString("\n\nQuestion: ")
		sb.WriteString(question)
		messages = append(messages, entity.ChatMessage{Role: entity.RoleUser, Content: sb.String()})
	} else {
		messages = append(messages, entity.ChatMessage{Role: entity.RoleUser, Content: question})
	}

	return messages
}

// classify decides the answer source. Retrieval hits always win; with
// no hits a sufficiently long completion counts as general knowledge,
// anything shorter (or empty) falls back to the canned reply.
func classify(hitCount int, reply string, fallbackMinLength int) entity.AnswerSource {
	if hitCount > 0 {
		return entity.SourceRAG
	}

	length := utf8.RuneCountInString(reply)
	if length > 0 && length >= fallbackMinLength {
		return entity.SourceGeneral
	}

	return entity.SourceFallback
}
