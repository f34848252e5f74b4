package document

import (
	"context"

	"github.com/akorchak/docchat-backend/internal/entity"
)

type IngestUsecase interface {
	IngestFiles(ctx context.Context, files []entity.FileData) []entity.UploadedFileResult
}
