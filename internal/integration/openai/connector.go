// Package openai implements the embedding and completion clients on
// top of the official OpenAI SDK.
package openai

import (
	"context"
	"fmt"

	"github.com/akorchak/docchat-backend/internal/config"
	"github.com/akorchak/docchat-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"
)

type Connector struct {
	client openai.Client
	config config.OpenAIConfig
	logger *zap.Logger
}

func NewConnector(cfg config.OpenAIConfig, logger *zap.Logger) *Connector {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithRequestTimeout(cfg.RequestTimeout),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Connector{
		client: openai.NewClient(opts...),
		config: cfg,
		logger: logger,
	}
}

// Embed converts texts into embedding vectors in one batched call.
// The result preserves input order; one vector per input text.
func (c *Connector) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	ctxzap.Debug(ctx, "requesting embeddings", zap.Int("input_count", len(texts)))

	resp, err := c.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(c.config.EmbeddingModel),
		Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: embeddings: %v", entity.ErrUpstream, err)
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("%w: embeddings: got %d vectors for %d inputs",
			entity.ErrUpstream, len(resp.Data), len(texts))
	}

	vectors := make([][]float64, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || int(d.Index) >= len(vectors) {
			return nil, fmt.Errorf("%w: embeddings: index %d out of range", entity.ErrUpstream, d.Index)
		}
		vectors[d.Index] = d.Embedding
	}

	ctxzap.Debug(ctx, "embeddings received", zap.Int("vector_count", len(vectors)))

	return vectors, nil
}

// Complete generates a chat completion for the given message sequence
// with the configured temperature and output-length ceiling. Returns
// the first choice's text, untrimmed.
func (c *Connector) Complete(ctx context.Context, messages []entity.ChatMessage) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.config.ChatModel),
		Temperature: openai.Float(c.config.Temperature),
		MaxTokens:   openai.Int(int64(c.config.MaxTokens)),
	}

	for _, m := range messages {
		switch m.Role {
		case entity.RoleSystem:
			params.Messages = append(params.Messages, openai.SystemMessage(m.Content))
		case entity.RoleAssistant:
			params.Messages = append(params.Messages, openai.AssistantMessage(m.Content))
		default:
			params.Messages = append(params.Messages, openai.UserMessage(m.Content))
		}
	}

	ctxzap.Debug(ctx, "requesting chat completion", zap.Int("message_count", len(messages)))

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%w: chat completion: %v", entity.ErrUpstream, err)
	}

	if len(resp.Choices) == 0 {
		ctxzap.Warn(ctx, "chat completion returned no choices")
		return "", nil
	}

	return resp.Choices[0].Message.Content, nil
}
