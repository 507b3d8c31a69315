package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"inkwell/internal/modules/goals/domain"
	goalsout "inkwell/internal/modules/goals/port/out"
	"inkwell/internal/platform/clock"
	apperrors "inkwell/internal/platform/errors"
	"inkwell/internal/platform/id"
	"inkwell/internal/platform/metrics"
)

// ProgressService owns every read-modify-write of progress rows. mu
// serialises them so the watcher and scheduled jobs never interleave.
type ProgressService struct {
	mu sync.Mutex

	clock     clock.Clock
	idGen     id.Generator
	goals     goalsout.GoalStore
	progress  goalsout.ProgressStore
	projector goalsout.ProgressIndexProjector
	documents goalsout.DocumentSource
	ledger    goalsout.WordLedger
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

type ProgressDeps struct {
	Goals     goalsout.GoalStore
	Progress  goalsout.ProgressStore
	Projector goalsout.ProgressIndexProjector
	Documents goalsout.DocumentSource
	Ledger    goalsout.WordLedger
	Logger    *zap.Logger
	Metrics   *metrics.Metrics
}

func NewProgressService(clock clock.Clock, idGen id.Generator, deps ProgressDeps) *ProgressService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProgressService{
		clock:     clock,
		idGen:     idGen,
		goals:     deps.Goals,
		progress:  deps.Progress,
		projector: deps.Projector,
		documents: deps.Documents,
		ledger:    deps.Ledger,
		logger:    logger,
		metrics:   deps.Metrics,
	}
}

type TrackResult struct {
	Delta   domain.LedgerDelta
	GoalIDs []string
}

// TrackDocumentChange records a document save. words and chars are the
// document's absolute counts; the ledger reduces them to the growth since
// the last save, and that growth is added to every goal trackable today.
func (s *ProgressService) TrackDocumentChange(ctx context.Context, documentID, projectID string, words, chars int) (TrackResult, error) {
	if strings.TrimSpace(documentID) == "" {
		return TrackResult{}, fmt.Errorf("%w: document id is required", apperrors.ErrInvalidInput)
	}
	if words < 0 || chars < 0 {
		return TrackResult{}, fmt.Errorf("%w: word and char counts must be non-negative", apperrors.ErrInvalidInput)
	}
	chars = domain.EstimateChars(words, chars)

	s.mu.Lock()
	defer s.mu.Unlock()
	delta, err := s.ledger.Record(ctx, documentID, projectID, words, chars)
	if err != nil {
		return TrackResult{}, err
	}
	result := TrackResult{Delta: delta, GoalIDs: []string{}}
	s.metrics.TrackedSave(delta.Words)
	if delta.Zero() {
		return result, nil
	}

	goals, err := s.goals.List(ctx)
	if err != nil {
		return TrackResult{}, err
	}
	now := s.clock.Now()
	today := domain.DayOf(now)
	touched := make([]domain.GoalProgress, 0)
	for _, goal := range goals {
		if !goal.Trackable(today) {
			continue
		}
		key := domain.ProgressKey{GoalID: goal.ID, Date: today}
		row, ok, err := s.progress.Get(ctx, key)
		if err != nil {
			return TrackResult{}, err
		}
		if !ok {
			row = domain.GoalProgress{
				ID:          s.idGen.New(),
				GoalID:      goal.ID,
				Date:        today,
				ProjectIDs:  []string{},
				DocumentIDs: []string{},
				CreatedAt:   now,
			}
		}
		row.Add(delta.Words, delta.Chars, projectID, documentID, now)
		touched = append(touched, row)
		result.GoalIDs = append(result.GoalIDs, goal.ID)
	}
	if len(touched) == 0 {
		return result, nil
	}
	if err := s.progress.Upsert(ctx, touched...); err != nil {
		return TrackResult{}, err
	}
	s.project(ctx, touched...)
	return result, nil
}

// PopulateHistorical backfills missing days from the manuscript collection.
// Documents it credits have their ledger baseline moved to the credited
// counts, so the next save only adds what was written after them.
func (s *ProgressService) PopulateHistorical(ctx context.Context) (int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	goals, err := s.goals.List(ctx)
	if err != nil {
		return 0, 0, err
	}
	docs, err := s.documents.ListDocuments(ctx)
	if err != nil {
		return 0, 0, err
	}
	existing, err := s.progress.List(ctx)
	if err != nil {
		return 0, 0, err
	}
	rows := domain.Populate(goals, docs, existing, s.clock.Now(), s.idGen.New)
	added, err := s.progress.InsertMissing(ctx, rows...)
	if err != nil {
		return 0, 0, err
	}
	if len(added) > 0 {
		s.project(ctx, added...)
	}
	s.metrics.Populated(len(added))

	if moved, err := s.ledger.Rebase(ctx, creditedDocuments(docs, added)); err != nil {
		s.logger.Warn("rebase ledger baselines", zap.Error(err))
	} else if moved > 0 {
		s.logger.Debug("ledger baselines rebased", zap.Int("documents", moved))
	}
	if seeded, err := s.ledger.Seed(ctx, docs); err != nil {
		s.logger.Warn("seed ledger baselines", zap.Error(err))
	} else if seeded > 0 {
		s.logger.Debug("ledger baselines seeded", zap.Int("documents", seeded))
	}
	s.logger.Info("historical progress populated", zap.Int("created", len(added)), zap.Int("documents", len(docs)))
	return len(added), len(docs), nil
}

func creditedDocuments(docs []domain.Document, rows []domain.GoalProgress) []domain.Document {
	ids := map[string]struct{}{}
	for _, row := range rows {
		for _, id := range row.DocumentIDs {
			ids[id] = struct{}{}
		}
	}
	out := make([]domain.Document, 0, len(ids))
	for _, doc := range docs {
		if _, ok := ids[doc.ID]; ok {
			out = append(out, doc)
		}
	}
	return out
}

// SeedBaselines registers every current document with the ledger so the
// next save is measured against today's size instead of counting in full.
func (s *ProgressService) SeedBaselines(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs, err := s.documents.ListDocuments(ctx)
	if err != nil {
		return 0, err
	}
	return s.ledger.Seed(ctx, docs)
}

func (s *ProgressService) Cleanup(ctx context.Context, retentionDays int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.progress.List(ctx)
	if err != nil {
		return 0, err
	}
	kept := domain.CleanupOldProgress(rows, retentionDays, domain.DayOf(s.clock.Now()))
	removed := len(rows) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	if err := s.progress.Replace(ctx, kept); err != nil {
		return 0, err
	}
	s.rebuildIndex(ctx, kept)
	s.logger.Info("old progress removed", zap.Int("removed", removed), zap.Int("retention_days", retentionDays))
	return removed, nil
}

func (s *ProgressService) PruneLedger(ctx context.Context, retentionDays int) (int, error) {
	if retentionDays <= 0 {
		retentionDays = domain.DefaultRetentionDays
	}
	return s.ledger.Prune(ctx, retentionDays)
}

func (s *ProgressService) ValidateAndFix(ctx context.Context) (domain.FixReport, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	goals, err := s.goals.List(ctx)
	if err != nil {
		return domain.FixReport{}, 0, err
	}
	rows, err := s.progress.List(ctx)
	if err != nil {
		return domain.FixReport{}, 0, err
	}
	fixed, report := domain.ValidateAndFixProgress(rows, goals)
	if !report.Changed() {
		return report, len(fixed), nil
	}
	if err := s.progress.Replace(ctx, fixed); err != nil {
		return domain.FixReport{}, 0, err
	}
	s.rebuildIndex(ctx, fixed)
	s.logger.Info("progress repaired", zap.Int("orphaned", report.Orphaned), zap.Int("duplicates", report.Duplicates))
	return report, len(fixed), nil
}

func (s *ProgressService) List(ctx context.Context, goalID, from, to string) ([]domain.GoalProgress, error) {
	var rows []domain.GoalProgress
	var err error
	if goalID != "" {
		if _, err := s.goals.Get(ctx, goalID); err != nil {
			return nil, err
		}
		rows, err = s.progress.ListByGoal(ctx, goalID)
	} else {
		rows, err = s.progress.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	out := make([]domain.GoalProgress, 0, len(rows))
	for _, row := range rows {
		if from != "" && row.Date < from {
			continue
		}
		if to != "" && row.Date > to {
			continue
		}
		out = append(out, row)
	}
	domain.SortProgress(out)
	return out, nil
}

// Reindex rebuilds the progress index from the progress store.
func (s *ProgressService) Reindex(ctx context.Context) (int, error) {
	if s.projector == nil {
		return 0, fmt.Errorf("progress index is not configured")
	}
	rows, err := s.progress.List(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.projector.Reset(ctx); err != nil {
		return 0, err
	}
	if err := s.projector.Upsert(ctx, rows...); err != nil {
		return 0, err
	}
	return len(rows), nil
}

func (s *ProgressService) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.progress.Reload(ctx); err != nil {
		return fmt.Errorf("reload progress: %w", err)
	}
	if err := s.ledger.Reload(ctx); err != nil {
		return fmt.Errorf("reload ledger: %w", err)
	}
	return nil
}

func (s *ProgressService) project(ctx context.Context, rows ...domain.GoalProgress) {
	if s.projector == nil {
		return
	}
	if err := s.projector.Upsert(ctx, rows...); err != nil {
		s.logger.Warn("update progress index", zap.Error(err))
	}
}

func (s *ProgressService) rebuildIndex(ctx context.Context, rows []domain.GoalProgress) {
	if s.projector == nil {
		return
	}
	if err := s.projector.Reset(ctx); err != nil {
		s.logger.Warn("reset progress index", zap.Error(err))
		return
	}
	s.project(ctx, rows...)
}
