package openai

import (
	"context"
	"fmt"

	"github.com/akorchak/docchat-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector is a deterministic stand-in for the OpenAI connector,
// used in local development when ENABLE_MOCKS is set.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{logger: logger}
}

// Embed produces a small deterministic vector per text derived from
// character class counts. Enough for exercising the pipeline locally.
func (m *MockConnector) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	ctxzap.Info(ctx, "[MOCK] embedding texts", zap.Int("input_count", len(texts)))

	vectors := make([][]float64, len(texts))
	for i, text := range texts {
		var length, vowels, spaces, other float64
		for _, r := range text {
			length++
			switch r {
			case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
				vowels++
			case ' ':
				spaces++
			default:
				other++
			}
		}
		vectors[i] = []float64{length, vowels, spaces, other}
	}

	return vectors, nil
}

// Complete echoes a canned answer that references the last user turn.
func (m *MockConnector) Complete(ctx context.Context, messages []entity.ChatMessage) (string, error) {
	ctxzap.Info(ctx, "[MOCK] generating completion", zap.Int("message_count", len(messages)))

	last := ""
	for _, msg := range messages {
		if msg.Role == entity.RoleUser {
			last = msg.Content
		}
	}

	return fmt.Sprintf("This is a mock answer to: %.80s", last), nil
}
