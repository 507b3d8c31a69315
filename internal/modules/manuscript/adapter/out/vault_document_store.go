package out

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"inkwell/internal/modules/manuscript/domain"
	manuscriptout "inkwell/internal/modules/manuscript/port/out"
	apperrors "inkwell/internal/platform/errors"
	"inkwell/internal/platform/markdown"
)

// VaultDocumentStore reads manuscript notes under root. It never writes.
type VaultDocumentStore struct {
	root   string
	logger *zap.Logger
}

func NewVaultDocumentStore(root string, logger *zap.Logger) manuscriptout.DocumentStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VaultDocumentStore{root: root, logger: logger}
}

func (s *VaultDocumentStore) Root() string {
	return s.root
}

func (s *VaultDocumentStore) List(ctx context.Context) ([]domain.Document, error) {
	docs := make([]domain.Document, 0)
	err := filepath.WalkDir(s.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == s.root {
				return filepath.SkipDir
			}
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if entry.IsDir() {
			if path != s.root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsManuscript(path) {
			return nil
		}
		doc, err := s.Read(ctx, path)
		if err != nil {
			s.logger.Warn("skip unreadable manuscript", zap.String("path", path), zap.Error(err))
			return nil
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan manuscripts: %w", err)
	}
	return docs, nil
}

func (s *VaultDocumentStore) Read(_ context.Context, path string) (domain.Document, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.root, path)
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Document{}, fmt.Errorf("%w: %s", apperrors.ErrDocumentMissing, path)
		}
		return domain.Document{}, fmt.Errorf("stat manuscript: %w", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.Document{}, fmt.Errorf("read manuscript: %w", err)
	}
	meta := domain.Frontmatter{}
	body, err := markdown.DecodeFrontmatter(string(raw), &meta)
	if err != nil {
		return domain.Document{}, err
	}

	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	rel = filepath.ToSlash(rel)

	doc := domain.Document{
		ID:        meta.ID,
		ProjectID: meta.ProjectID,
		Title:     meta.Title,
		Path:      path,
		UpdatedAt: info.ModTime().UTC(),
	}
	if doc.ID == "" {
		doc.ID = strings.TrimSuffix(rel, filepath.Ext(rel))
	}
	if doc.ProjectID == "" {
		if dir := filepath.Dir(rel); dir != "." {
			doc.ProjectID = strings.SplitN(dir, "/", 2)[0]
		}
	}
	if doc.Title == "" {
		doc.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if meta.UpdatedAt != "" {
		updated, err := domain.ParseTimestamp(meta.UpdatedAt)
		if err != nil {
			s.logger.Debug("ignore updated_at, using mtime", zap.String("path", path), zap.Error(err))
		} else {
			doc.UpdatedAt = updated
		}
	}
	if meta.WordCount != nil {
		doc.WordCount = *meta.WordCount
	} else {
		doc.WordCount = markdown.CountWords(body)
	}
	if meta.CharCount != nil {
		doc.CharCount = *meta.CharCount
	} else if meta.WordCount == nil {
		doc.CharCount = markdown.CountChars(body)
	}
	if err := doc.Validate(); err != nil {
		return domain.Document{}, err
	}
	return doc, nil
}

// IsManuscript reports whether path names a markdown note.
func IsManuscript(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return strings.EqualFold(filepath.Ext(base), ".md")
}
