package out

import (
	"context"

	"inkwell/internal/modules/ledger/domain"
)

type LedgerStore interface {
	// SwapBaseline stores next as the document's baseline and returns the
	// previous one, reporting whether it existed.
	SwapBaseline(ctx context.Context, documentID string, next domain.Baseline) (domain.Baseline, bool, error)
	// InsertBaseline stores next only when the document has no baseline.
	InsertBaseline(ctx context.Context, documentID string, next domain.Baseline) (bool, error)
	// AdvanceBaseline stores next when the document has no baseline or its
	// baseline was last updated before next.UpdatedAt.
	AdvanceBaseline(ctx context.Context, documentID string, next domain.Baseline) (bool, error)
	AppendEntry(ctx context.Context, date string, entry domain.Entry) (domain.DayRecord, error)
	LoadDay(ctx context.Context, date string) (domain.DayRecord, error)
	ListDays(ctx context.Context, from, to string) ([]domain.DayRecord, error)
	DeleteBefore(ctx context.Context, date string) (int, error)
	Reload(ctx context.Context) error
}
