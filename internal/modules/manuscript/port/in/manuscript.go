package in

import (
	"context"

	"inkwell/internal/modules/manuscript/dto"
)

type Usecase interface {
	ListDocuments(ctx context.Context) ([]dto.DocumentOutput, error)
	GetDocument(ctx context.Context, id string) (dto.DocumentOutput, error)
	GetDocumentByPath(ctx context.Context, path string) (dto.DocumentOutput, error)
}
