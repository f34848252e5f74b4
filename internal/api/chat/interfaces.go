package chat

import (
	"context"

	"github.com/akorchak/docchat-backend/internal/entity"
)

type ChatUsecase interface {
	Ask(ctx context.Context, sessionID, question string) (*entity.Answer, error)
	Transcript(ctx context.Context, sessionID string, format entity.TranscriptFormat) ([]byte, string, error)
}
