// Package qdrant is a minimal REST connector to the Qdrant vector
// store: collection bootstrap, batched upserts and similarity search.
// The index algorithm and ranking are entirely Qdrant's business.
package qdrant

import (
	"context"
	"fmt"
	"net/http"

	"github.com/akorchak/docchat-backend/internal/config"
	"github.com/akorchak/docchat-backend/internal/entity"
	pkghttp "github.com/akorchak/docchat-backend/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Connector struct {
	config    config.QdrantConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(cfg config.QdrantConfig, logger *zap.Logger) *Connector {
	options := []pkghttp.Option{
		pkghttp.WithRequestTimeout(cfg.RequestTimeout),
		pkghttp.WithConnTimeout(cfg.ConnTimeout),
		pkghttp.WithKeepAlive(cfg.KeepAlive),
		pkghttp.WithIdleConnTimeout(cfg.IdleConnTimeout),
		pkghttp.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
		pkghttp.WithRequestLogging(),
	}
	if cfg.APIKey != "" {
		options = append(options, pkghttp.WithHeaderAuth("api-key", cfg.APIKey))
	}

	return &Connector{
		config: cfg,
		connector: pkghttp.NewConnector(&pkghttp.ConnectorConfig{
			BaseURL: cfg.Url,
			Logger:  logger,
		}, options...),
		logger: logger,
	}
}

type createCollectionRequest struct {
	Vectors vectorsConfig `json:"vectors"`
}

type vectorsConfig struct {
	Size     int    `json:"size"`
	Distance string `json:"distance"`
}

type upsertRequest struct {
	Points []entity.VectorPoint `json:"points"`
}

type searchRequest struct {
	Vector      []float64 `json:"vector"`
	Limit       int       `json:"limit"`
	WithPayload bool      `json:"with_payload"`
}

type searchResponse struct {
	Result []entity.SearchHit `json:"result"`
}

// EnsureCollection creates the collection with cosine distance if it
// does not exist yet. Existing collections are left untouched.
func (c *Connector) EnsureCollection(ctx context.Context) error {
	endpoint := "/collections/" + c.config.Collection

	err := c.connector.DoRequest(ctx, http.MethodGet, endpoint, nil, nil)
	if err == nil {
		ctxzap.Debug(ctx, "collection already exists", zap.String("collection", c.config.Collection))
		return nil
	}
	if !pkghttp.IsNotFound(err) {
		return fmt.Errorf("%w: check collection: %v", entity.ErrUpstream, err)
	}

	ctxzap.Info(ctx, "creating collection",
		zap.String("collection", c.config.Collection),
		zap.Int("vector_size", c.config.VectorSize),
	)

	req := createCollectionRequest{
		Vectors: vectorsConfig{
			Size:     c.config.VectorSize,
			Distance: "Cosine",
		},
	}
	if err := c.connector.DoRequest(ctx, http.MethodPut, endpoint, req, nil); err != nil {
		return fmt.Errorf("%w: create collection: %v", entity.ErrUpstream, err)
	}

	return nil
}

// Upsert writes all points in a single batched call. wait=true makes
// the write visible to searches before returning.
func (c *Connector) Upsert(ctx context.Context, points []entity.VectorPoint) error {
	endpoint := fmt.Sprintf("/collections/%s/points?wait=true", c.config.Collection)

	ctxzap.Info(ctx, "upserting points", zap.Int("point_count", len(points)))

	if err := c.connector.DoRequest(ctx, http.MethodPut, endpoint, upsertRequest{Points: points}, nil); err != nil {
		return fmt.Errorf("%w: upsert points: %v", entity.ErrUpstream, err)
	}

	return nil
}

// Search returns up to topK hits ranked by similarity, closest first.
func (c *Connector) Search(ctx context.Context, vector []float64, topK int) ([]entity.SearchHit, error) {
	endpoint := fmt.Sprintf("/collections/%s/points/search", c.config.Collection)

	req := searchRequest{
		Vector:      vector,
		Limit:       topK,
		WithPayload: true,
	}

	var resp searchResponse
	if err := c.connector.DoRequest(ctx, http.MethodPost, endpoint, req, &resp); err != nil {
		return nil, fmt.Errorf("%w: search points: %v", entity.ErrUpstream, err)
	}

	ctxzap.Debug(ctx, "search finished", zap.Int("hit_count", len(resp.Result)))

	return resp.Result, nil
}
