package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	manuscriptout "inkwell/internal/modules/manuscript/adapter/out"
	"inkwell/internal/modules/manuscript/service"
	"inkwell/internal/modules/manuscript/usecase"
	apperrors "inkwell/internal/platform/errors"
)

func writeNote(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write note: %v", err)
	}
	return path
}

func TestListDocumentsReadsFrontmatterAndFallbacks(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeNote(t, root, "novel/ch1.md", "---\nid: d1\nproject_id: p1\ntitle: Chapter One\nupdated_at: 2024-03-01T10:00:00Z\nword_count: 300\n---\nbody text\n")
	counted := writeNote(t, root, "novel/ch2.md", "---\ntitle: Chapter Two\n---\n# Heading\nfour little words here\n")
	writeNote(t, root, "novel/notes.txt", "ignored")
	writeNote(t, root, ".trash/old.md", "ignored")
	mtime := time.Date(2024, 2, 2, 12, 0, 0, 0, time.UTC)
	if err := os.Chtimes(counted, mtime, mtime); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	uc := usecase.NewInteractor(service.NewDocumentService(manuscriptout.NewVaultDocumentStore(root, nil)))
	docs, err := uc.ListDocuments(context.Background())
	if err != nil {
		t.Fatalf("list documents: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d: %+v", len(docs), docs)
	}

	byID := map[string]int{}
	for i, doc := range docs {
		byID[doc.ID] = i
	}
	first := docs[byID["d1"]]
	if first.ProjectID != "p1" || first.WordCount != 300 || first.CharCount != 0 {
		t.Fatalf("unexpected frontmatter document %+v", first)
	}
	if !first.UpdatedAt.Equal(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected updated_at from frontmatter, got %s", first.UpdatedAt)
	}

	idx, ok := byID["novel/ch2"]
	if !ok {
		t.Fatalf("expected path-derived id, got %+v", docs)
	}
	second := docs[idx]
	if second.ProjectID != "novel" || second.Title != "Chapter Two" {
		t.Fatalf("unexpected fallback document %+v", second)
	}
	if second.WordCount != 5 || second.CharCount != 26 {
		t.Fatalf("expected counted body 5 words/26 chars, got %d/%d", second.WordCount, second.CharCount)
	}
	if !second.UpdatedAt.Equal(mtime) {
		t.Fatalf("expected mtime fallback %s, got %s", mtime, second.UpdatedAt)
	}
}

func TestGetDocumentMissing(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	uc := usecase.NewInteractor(service.NewDocumentService(manuscriptout.NewVaultDocumentStore(root, nil)))
	if _, err := uc.GetDocument(context.Background(), "nope"); !errors.Is(err, apperrors.ErrDocumentMissing) {
		t.Fatalf("expected ErrDocumentMissing, got %v", err)
	}
	if _, err := uc.GetDocumentByPath(context.Background(), "novel/none.md"); !errors.Is(err, apperrors.ErrDocumentMissing) {
		t.Fatalf("expected ErrDocumentMissing for path, got %v", err)
	}
}

func TestListDocumentsWithoutManuscriptDir(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(service.NewDocumentService(manuscriptout.NewVaultDocumentStore(filepath.Join(t.TempDir(), "missing"), nil)))
	docs, err := uc.ListDocuments(context.Background())
	if err != nil {
		t.Fatalf("missing dir should list nothing, got %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("expected no documents, got %d", len(docs))
	}
}

func TestGetDocumentByRelativePath(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeNote(t, root, "draft.md", "---\nid: solo\n---\none two three\n")
	uc := usecase.NewInteractor(service.NewDocumentService(manuscriptout.NewVaultDocumentStore(root, nil)))
	doc, err := uc.GetDocumentByPath(context.Background(), "draft.md")
	if err != nil {
		t.Fatalf("get by path: %v", err)
	}
	if doc.ID != "solo" || doc.ProjectID != "" || doc.WordCount != 3 {
		t.Fatalf("unexpected document %+v", doc)
	}
}
