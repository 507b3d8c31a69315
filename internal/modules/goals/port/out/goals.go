package out

import (
	"context"

	"inkwell/internal/modules/goals/domain"
)

type GoalStore interface {
	List(ctx context.Context) ([]domain.WritingGoal, error)
	Get(ctx context.Context, id string) (domain.WritingGoal, error)
	Save(ctx context.Context, goal domain.WritingGoal) error
	SaveAll(ctx context.Context, goals []domain.WritingGoal) error
	Delete(ctx context.Context, id string) error
	Reload(ctx context.Context) error
}

type ProgressStore interface {
	List(ctx context.Context) ([]domain.GoalProgress, error)
	ListByGoal(ctx context.Context, goalID string) ([]domain.GoalProgress, error)
	Get(ctx context.Context, key domain.ProgressKey) (domain.GoalProgress, bool, error)
	Upsert(ctx context.Context, rows ...domain.GoalProgress) error
	// InsertMissing adds rows whose (goal, date) key is not stored yet and
	// returns the rows it added.
	InsertMissing(ctx context.Context, rows ...domain.GoalProgress) ([]domain.GoalProgress, error)
	Replace(ctx context.Context, rows []domain.GoalProgress) error
	DeleteByGoal(ctx context.Context, goalID string) (int, error)
	Reload(ctx context.Context) error
}

type SettingsStore interface {
	Load(ctx context.Context) (domain.Settings, error)
	Save(ctx context.Context, settings domain.Settings) error
	Reload(ctx context.Context) error
}

// ProgressIndexProjector maintains a queryable copy of progress rows. The
// progress store stays the source of truth and the index can be rebuilt.
type ProgressIndexProjector interface {
	Reset(ctx context.Context) error
	Upsert(ctx context.Context, rows ...domain.GoalProgress) error
	DeleteGoal(ctx context.Context, goalID string) error
	DailyTotals(ctx context.Context, from, to string) ([]domain.DailyTotal, error)
}

type ReportExporter interface {
	Export(ctx context.Context, path string, report domain.Report) error
}

type DocumentSource interface {
	ListDocuments(ctx context.Context) ([]domain.Document, error)
}

type WordLedger interface {
	Record(ctx context.Context, documentID, projectID string, words, chars int) (domain.LedgerDelta, error)
	Seed(ctx context.Context, docs []domain.Document) (int, error)
	// Rebase moves baselines to the documents' current counts unless the
	// ledger saw a later save.
	Rebase(ctx context.Context, docs []domain.Document) (int, error)
	Today(ctx context.Context) (domain.LedgerDay, error)
	Prune(ctx context.Context, retentionDays int) (int, error)
	Reload(ctx context.Context) error
}
