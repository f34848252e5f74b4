package ingest

import (
	"context"

	"github.com/akorchak/docchat-backend/internal/entity"
)

type EmbeddingConnector interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

type VectorStore interface {
	Upsert(ctx context.Context, points []entity.VectorPoint) error
}
