package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"inkwell/internal/modules/manuscript/domain"
	manuscriptout "inkwell/internal/modules/manuscript/port/out"
	apperrors "inkwell/internal/platform/errors"
)

type DocumentService struct {
	store manuscriptout.DocumentStore
}

func NewDocumentService(store manuscriptout.DocumentStore) *DocumentService {
	return &DocumentService{store: store}
}

func (s *DocumentService) List(ctx context.Context) ([]domain.Document, error) {
	docs, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].ProjectID != docs[j].ProjectID {
			return docs[i].ProjectID < docs[j].ProjectID
		}
		return docs[i].Path < docs[j].Path
	})
	return docs, nil
}

func (s *DocumentService) Get(ctx context.Context, id string) (domain.Document, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Document{}, fmt.Errorf("document id is required")
	}
	docs, err := s.store.List(ctx)
	if err != nil {
		return domain.Document{}, err
	}
	for _, doc := range docs {
		if doc.ID == id {
			return doc, nil
		}
	}
	return domain.Document{}, fmt.Errorf("%w: %s", apperrors.ErrDocumentMissing, id)
}

func (s *DocumentService) GetByPath(ctx context.Context, path string) (domain.Document, error) {
	if strings.TrimSpace(path) == "" {
		return domain.Document{}, fmt.Errorf("document path is required")
	}
	return s.store.Read(ctx, path)
}
