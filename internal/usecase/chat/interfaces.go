package chat

import (
	"context"

	"github.com/akorchak/docchat-backend/internal/entity"
)

type EmbeddingConnector interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

type VectorSearcher interface {
	Search(ctx context.Context, vector []float64, topK int) ([]entity.SearchHit, error)
}

type CompletionConnector interface {
	Complete(ctx context.Context, messages []entity.ChatMessage) (string, error)
}
