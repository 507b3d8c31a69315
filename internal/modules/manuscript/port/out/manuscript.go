package out

import (
	"context"

	"inkwell/internal/modules/manuscript/domain"
)

type DocumentStore interface {
	List(ctx context.Context) ([]domain.Document, error)
	Read(ctx context.Context, path string) (domain.Document, error)
	Root() string
}
