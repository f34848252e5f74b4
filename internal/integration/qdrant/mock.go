package qdrant

import (
	"context"
	"sync"

	"github.com/akorchak/docchat-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector keeps points in memory and returns the most recently
// upserted ones on search. Used when ENABLE_MOCKS is set; real
// similarity ranking is not reproduced.
type MockConnector struct {
	mu     sync.Mutex
	points []entity.VectorPoint
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{logger: logger}
}

func (m *MockConnector) EnsureCollection(ctx context.Context) error {
	ctxzap.Info(ctx, "[MOCK] ensure collection")
	return nil
}

func (m *MockConnector) Upsert(ctx context.Context, points []entity.VectorPoint) error {
	ctxzap.Info(ctx, "[MOCK] upserting points", zap.Int("point_count", len(points)))

	m.mu.Lock()
	defer m.mu.Unlock()
	m.points = append(m.points, points...)
	return nil
}

func (m *MockConnector) Search(ctx context.Context, vector []float64, topK int) ([]entity.SearchHit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	hits := make([]entity.SearchHit, 0, topK)
	for i := len(m.points) - 1; i >= 0 && len(hits) < topK; i-- {
		hits = append(hits, entity.SearchHit{Payload: m.points[i].Payload, Score: 1.0})
	}

	ctxzap.Info(ctx, "[MOCK] search", zap.Int("hit_count", len(hits)))

	return hits, nil
}
