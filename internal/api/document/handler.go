package document

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/akorchak/docchat-backend/internal/entity"
	"github.com/akorchak/docchat-backend/internal/pkg/logger"
	"github.com/akorchak/docchat-backend/internal/pkg/response"
	"github.com/akorchak/docchat-backend/internal/pkg/validator"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// maxUploadMemory bounds the in-memory part of multipart parsing;
// larger files spill to temp files.
const maxUploadMemory = 32 << 20

type Handler struct {
	usecase   IngestUsecase
	validator *validator.Validator
}

func NewHandler(usecase IngestUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// Upload handles POST /documents - chunk and index uploaded documents
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Upload")

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		ctxzap.Error(ctx, "failed to parse multipart form", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "failed to parse form")
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		response.Error(w, http.StatusBadRequest, "at least one file is required")
		return
	}

	if err := h.validator.ValidateUpload(files); err != nil {
		ctxzap.Error(ctx, "upload validation failed", zap.Error(err))
		h.handleValidationError(w, err)
		return
	}

	ctxzap.Info(ctx, "ingesting documents", zap.Int("file_count", len(files)))

	data, err := readFiles(files)
	if err != nil {
		ctxzap.Error(ctx, "failed to read uploaded files", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "failed to read uploaded files")
		return
	}

	results := h.usecase.IngestFiles(ctx, data)

	total := 0
	failed := 0
	for _, res := range results {
		total += res.Chunks
		if res.Error != "" {
			failed++
		}
	}

	ctxzap.Info(ctx, "documents ingested",
		zap.Int("file_count", len(results)),
		zap.Int("chunk_count", total),
		zap.Int("failed", failed),
	)

	status := http.StatusOK
	if failed == len(results) {
		status = http.StatusUnprocessableEntity
	}

	response.JSON(w, status, entity.UploadResponse{
		Message:    uploadMessage(len(results), failed),
		FileCount:  len(results),
		ChunkCount: total,
		Files:      results,
	})
}

func readFiles(headers []*multipart.FileHeader) ([]entity.FileData, error) {
	data := make([]entity.FileData, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", header.Filename, err)
		}

		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", header.Filename, err)
		}

		data = append(data, entity.FileData{
			Filename: validator.SanitizeFilename(header.Filename),
			Content:  content,
		})
	}
	return data, nil
}

func uploadMessage(total, failed int) string {
	switch {
	case failed == 0:
		return "documents indexed"
	case failed == total:
		return "no documents could be indexed"
	default:
		return fmt.Sprintf("%d of %d documents indexed", total-failed, total)
	}
}

func (h *Handler) handleValidationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrTooManyFiles),
		errors.Is(err, entity.ErrInvalidExtension),
		errors.Is(err, entity.ErrFileTooLarge),
		errors.Is(err, entity.ErrTotalSizeTooLarge),
		errors.Is(err, entity.ErrInvalidFile):
		response.Error(w, http.StatusBadRequest, err.Error())
	default:
		response.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
