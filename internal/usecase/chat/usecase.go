// Package chat implements the conversation orchestrator: it composes
// retrieval, session history and the completion client into a final
// answer tagged with its provenance.
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/akorchak/docchat-backend/internal/config"
	"github.com/akorchak/docchat-backend/internal/entity"
	"github.com/akorchak/docchat-backend/internal/pkg/fallback"
	"github.com/akorchak/docchat-backend/internal/pkg/formatter"
	"github.com/akorchak/docchat-backend/internal/pkg/logger"
	"github.com/akorchak/docchat-backend/internal/repository"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Usecase implements the answering pipeline.
type Usecase struct {
	embedder  EmbeddingConnector
	searcher  VectorSearcher
	completer CompletionConnector
	sessions  repository.SessionRepository
	fallback  *fallback.Selector
	formats   *formatter.Factory
	config    config.ChatConfig
	logger    *zap.Logger
}

func NewUsecase(
	embedder EmbeddingConnector,
	searcher VectorSearcher,
	completer CompletionConnector,
	sessions repository.SessionRepository,
	fallbackSel *fallback.Selector,
	cfg config.ChatConfig,
	log *zap.Logger,
) *Usecase {
	return &Usecase{
		embedder:  embedder,
		searcher:  searcher,
		completer: completer,
		sessions:  sessions,
		fallback:  fallbackSel,
		formats:   formatter.NewFactory(),
		config:    cfg,
		logger:    log,
	}
}

// Ask answers a question within a session. The returned answer is
/// tagged with its source: grounded in retrieved chunks (rag), model
// general knowledge (general), or a localized canned reply (fallback).
//
// History is only written after a successful completion; a failed
// upstream call leaves the session untouched.
func (uc *Usecase) Ask(ctx context.Context, sessionID, question string) (*entity.Answer, error) {
	q := strings.TrimSpace(question)
	if q == "" {
		return nil, fmt.Errorf("%w: question", entity.ErrInvalidInput)
	}

	ctx = logger.WithSession(ctx, sessionID)

	history, err := uc.sessions.History(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	recent := lastTurns(history, 2*uc.config.HistoryLimit)

	chunks, err := uc.retrieve(ctx, q)
	if err != nil {
		return nil, err
	}

	ctxzap.Debug(ctx, "retrieval finished", zap.Int("chunk_count", len(chunks)))

	reply, err := uc.completer.Complete(ctx, buildMessages(recent, chunks, q))
	if err != nil {
		return nil, err
	}
	reply = strings.TrimSpace(reply)

	source := classify(len(chunks), reply, uc.config.FallbackMinLength)
	text := reply
	if source == entity.SourceFallback {
		text = uc.fallback.Message(q)
	}

	ctxzap.Info(ctx, "question answered",
		zap.String("source", string(source)),
		zap.Int("answer_length", len(text)),
	)

	updated := lastTurns(append(recent, q, text), 2*uc.config.HistoryLimit)
	if err := uc.sessions.SaveHistory(ctx, sessionID, updated); err != nil {
		return nil, fmt.Errorf("save history: %w", err)
	}

	return &entity.Answer{Text: text, Source: source}, nil
}

// retrieve embeds the query and runs a top-K similarity search,
// returning payload texts in the store's ranking order. An empty query
// short-circuits without touching external services.
func (uc *Usecase) retrieve(ctx context.Context, query string) ([]string, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, nil
	}

	vectors, err := uc.embedder.Embed(ctx, []string{q})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("%w: no embedding returned for query", entity.ErrUpstream)
	}

	hits, err := uc.searcher.Search(ctx, vectors[0], uc.config.TopK)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	texts := make([]string, 0, len(hits))
	for _, hit := range hits {
		if hit.Payload.Text != "" {
			texts = append(texts, hit.Payload.Text)
		}
	}

	return texts, nil
}

// Transcript renders a session's history in the requested format and
// returns the bytes together with their content type.
func (uc *Usecase) Transcript(ctx context.Context, sessionID string, format entity.TranscriptFormat) ([]byte, string, error) {
	turns, err := uc.sessions.History(ctx, sessionID)
	if err != nil {
		return nil, "", fmt.Errorf("load history: %w", err)
	}
	if len(turns) == 0 {
		return nil, "", entity.ErrSessionNotFound
	}

	f, err := uc.formats.Create(format)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", entity.ErrInvalidInput, err)
	}

	data, err := f.Format(turns)
	if err != nil {
		return nil, "", fmt.Errorf("render transcript: %w", err)
	}

	return data, f.ContentType(), nil
}
