package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/akorchak/docchat-backend/internal/entity"
	"github.com/akorchak/docchat-backend/internal/pkg/logger"
	"github.com/akorchak/docchat-backend/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase ChatUsecase
}

func NewHandler(usecase ChatUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// Ask handles POST /chat - answer a question within a session
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Ask")

	var req entity.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	ctx = logger.AddFields(ctx, zap.String("session_id", sessionID))
	ctxzap.Info(ctx, "handling question", zap.Int("question_length", len(req.Question)))

	answer, err := h.usecase.Ask(ctx, sessionID, req.Question)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toChatResponse(answer, sessionID))
}

// Transcript handles GET /chat/{session_id}/transcript - export conversation history
func (h *Handler) Transcript(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "session_id")

	ctx = logger.AddFields(ctx,
		zap.String("session_id", sessionID),
		zap.String("action", "Transcript"),
	)

	formatParam := r.URL.Query().Get("format")
	if formatParam == "" {
		formatParam = string(entity.FormatMarkdown)
	}

	format := entity.TranscriptFormat(formatParam)
	if !format.IsValid() {
		ctxzap.Warn(ctx, "invalid format parameter", zap.String("format", formatParam))
		response.Error(w, http.StatusBadRequest, "format must be one of: md, docx, pdf")
		return
	}

	ctxzap.Debug(ctx, "rendering transcript", zap.String("format", formatParam))

	data, contentType, err := h.usecase.Transcript(ctx, sessionID, format)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "transcript rendered", zap.Int("size_bytes", len(data)))
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"transcript-%s.%s\"", sessionID, formatParam))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrInvalidInput):
		response.Error(w, http.StatusBadRequest, "question must not be empty")
	case errors.Is(err, entity.ErrSessionNotFound):
		response.Error(w, http.StatusNotFound, "session not found")
	default:
		ctxzap.Error(ctx, "chat request failed", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
