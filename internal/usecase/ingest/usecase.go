// Package ingest implements the document ingestion pipeline: extract,
// chunk, embed and index.
package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/akorchak/docchat-backend/internal/entity"
	"github.com/akorchak/docchat-backend/internal/pkg/chunker"
	"github.com/akorchak/docchat-backend/internal/pkg/extractor"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Usecase implements document ingestion business logic.
type Usecase struct {
	embedder    EmbeddingConnector
	store       VectorStore
	chunkMaxLen int
	logger      *zap.Logger
}

func NewUsecase(
	embedder EmbeddingConnector,
	store VectorStore,
	chunkMaxLen int,
	logger *zap.Logger,
) *Usecase {
	return &Usecase{
		embedder:    embedder,
		store:       store,
		chunkMaxLen: chunkMaxLen,
		logger:      logger,
	}
}

// Ingest splits text into chunks and indexes them under the given
// source. Returns the number of indexed chunks. Text that chunks to
// nothing (empty or whitespace only) is rejected with
// entity.ErrUnsupportedInput before any external call.
//
// Re-ingesting the same document adds new independent entries; there
// is no deduplication. The store grows monotonically by design.
func (uc *Usecase) Ingest(ctx context.Context, text, source string) (int, error) {
	chunks := chunker.Split(text, uc.chunkMaxLen)
	if len(chunks) == 0 {
		return 0, fmt.Errorf("%w: %s", entity.ErrUnsupportedInput, source)
	}

	if err := uc.IndexChunks(ctx, chunks, source); err != nil {
		return 0, err
	}

	return len(chunks), nil
}

// IndexChunks embeds the chunks in one batched call and upserts all
// resulting points at once. A failed batch indexes nothing; there is
// no partial write and no retry.
func (uc *Usecase) IndexChunks(ctx context.Context, chunks []string, source string) error {
	sanitized := make([]string, 0, len(chunks))
	for _, c := range chunks {
		if t := strings.TrimSpace(c); t != "" {
			sanitized = append(sanitized, t)
		}
	}
	if len(sanitized) == 0 {
		// Nothing to index; skip the embedding call entirely.
		return nil
	}

	ctxzap.Info(ctx, "indexing chunks",
		zap.String("source", source),
		zap.Int("chunk_count", len(sanitized)),
	)

	vectors, err := uc.embedder.Embed(ctx, sanitized)
	if err != nil {
		return fmt.Errorf("%w: embed chunks: %v", entity.ErrIndexing, err)
	}
	if len(vectors) != len(sanitized) {
		return fmt.Errorf("%w: got %d vectors for %d chunks", entity.ErrIndexing, len(vectors), len(sanitized))
	}

	points := make([]entity.VectorPoint, len(sanitized))
	for i, text := range sanitized {
		points[i] = entity.VectorPoint{
			ID:     uuid.New().String(),
			Vector: vectors[i],
			Payload: entity.ChunkPayload{
				Text:   text,
				Source: source,
			},
		}
	}

	if err := uc.store.Upsert(ctx, points); err != nil {
		return fmt.Errorf("%w: upsert points: %v", entity.ErrIndexing, err)
	}

	ctxzap.Info(ctx, "chunks indexed", zap.Int("point_count", len(points)))

	return nil
}

// IngestFiles extracts and indexes every uploaded file. A failing file
// is reported in its result and does not stop the others.
func (uc *Usecase) IngestFiles(ctx context.Context, files []entity.FileData) []entity.UploadedFileResult {
	results := make([]entity.UploadedFileResult, 0, len(files))

	for _, file := range files {
		result := entity.UploadedFileResult{Filename: file.Filename}

		text, err := extractor.Extract(file.Filename, file.Content)
		if err != nil {
			ctxzap.Error(ctx, "failed to extract file",
				zap.String("filename", file.Filename),
				zap.Error(err),
			)
			result.Error = err.Error()
			results = append(results, result)
			continue
		}

		chunks, err := uc.Ingest(ctx, text, file.Filename)
		if err != nil {
			ctxzap.Error(ctx, "failed to index file",
				zap.String("filename", file.Filename),
				zap.Error(err),
			)
			result.Error = err.Error()
			results = append(results, result)
			continue
		}

		result.Chunks = chunks
		results = append(results, result)
	}

	return results
}
