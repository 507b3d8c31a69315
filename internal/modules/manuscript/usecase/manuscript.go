package usecase

import (
	"context"

	"inkwell/internal/modules/manuscript/domain"
	"inkwell/internal/modules/manuscript/dto"
	manuscriptin "inkwell/internal/modules/manuscript/port/in"
	"inkwell/internal/modules/manuscript/service"
)

type Interactor struct {
	svc *service.DocumentService
}

func NewInteractor(svc *service.DocumentService) manuscriptin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) ListDocuments(ctx context.Context) ([]dto.DocumentOutput, error) {
	docs, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DocumentOutput, 0, len(docs))
	for _, doc := range docs {
		out = append(out, toOutput(doc))
	}
	return out, nil
}

func (i *Interactor) GetDocument(ctx context.Context, id string) (dto.DocumentOutput, error) {
	doc, err := i.svc.Get(ctx, id)
	if err != nil {
		return dto.DocumentOutput{}, err
	}
	return toOutput(doc), nil
}

func (i *Interactor) GetDocumentByPath(ctx context.Context, path string) (dto.DocumentOutput, error) {
	doc, err := i.svc.GetByPath(ctx, path)
	if err != nil {
		return dto.DocumentOutput{}, err
	}
	return toOutput(doc), nil
}

func toOutput(doc domain.Document) dto.DocumentOutput {
	return dto.DocumentOutput{
		ID:        doc.ID,
		ProjectID: doc.ProjectID,
		Title:     doc.Title,
		Path:      doc.Path,
		WordCount: doc.WordCount,
		CharCount: doc.CharCount,
		UpdatedAt: doc.UpdatedAt,
	}
}
