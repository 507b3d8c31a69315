package out

import (
	"context"

	"inkwell/internal/modules/goals/domain"
	goalsout "inkwell/internal/modules/goals/port/out"
	manuscriptin "inkwell/internal/modules/manuscript/port/in"
)

type ManuscriptDocumentAdapter struct {
	manuscripts manuscriptin.Usecase
}

func NewManuscriptDocumentAdapter(manuscripts manuscriptin.Usecase) goalsout.DocumentSource {
	return &ManuscriptDocumentAdapter{manuscripts: manuscripts}
}

func (a *ManuscriptDocumentAdapter) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	docs, err := a.manuscripts.ListDocuments(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Document, 0, len(docs))
	for _, doc := range docs {
		out = append(out, domain.Document{
			ID:        doc.ID,
			ProjectID: doc.ProjectID,
			Title:     doc.Title,
			WordCount: doc.WordCount,
			CharCount: doc.CharCount,
			UpdatedAt: doc.UpdatedAt,
		})
	}
	return out, nil
}
