package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"inkwell/internal/modules/ledger/domain"
	ledgerout "inkwell/internal/modules/ledger/port/out"
	"inkwell/internal/platform/calendar"
	"inkwell/internal/platform/clock"
	apperrors "inkwell/internal/platform/errors"
)

type LedgerService struct {
	clock  clock.Clock
	store  ledgerout.LedgerStore
	logger *zap.Logger
}

func NewLedgerService(clock clock.Clock, store ledgerout.LedgerStore, logger *zap.Logger) *LedgerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerService{clock: clock, store: store, logger: logger}
}

func (s *LedgerService) Today() string {
	return calendar.Day(s.clock.Now())
}

// Record turns a document's absolute counts into a delta against its
// baseline and appends it to today's ledger.
func (s *LedgerService) Record(ctx context.Context, documentID, projectID string, words, chars int) (domain.Entry, domain.DayRecord, error) {
	if strings.TrimSpace(documentID) == "" {
		return domain.Entry{}, domain.DayRecord{}, fmt.Errorf("%w: document id is required", apperrors.ErrInvalidInput)
	}
	now := s.clock.Now()
	prev, known, err := s.store.SwapBaseline(ctx, documentID, domain.Baseline{Words: words, Chars: chars, UpdatedAt: now})
	if err != nil {
		return domain.Entry{}, domain.DayRecord{}, err
	}
	delta := domain.ComputeDelta(prev, known, words, chars)
	entry := domain.Entry{
		At:         now,
		DocumentID: documentID,
		ProjectID:  projectID,
		WordCount:  words,
		CharCount:  chars,
		WordsDelta: delta.Words,
		CharsDelta: delta.Chars,
	}
	day, err := s.store.AppendEntry(ctx, calendar.Day(now), entry)
	if err != nil {
		return domain.Entry{}, domain.DayRecord{}, err
	}
	s.logger.Debug("ledger entry recorded",
		zap.String("document_id", documentID),
		zap.Int("words_delta", delta.Words),
		zap.Int("day_words", day.WordsAdded),
	)
	return entry, day, nil
}

// Seed records baselines for documents the ledger has never seen, without
// crediting any words.
func (s *LedgerService) Seed(ctx context.Context, documentID string, words, chars int) (bool, error) {
	return s.store.InsertBaseline(ctx, documentID, domain.Baseline{Words: words, Chars: chars, UpdatedAt: s.clock.Now()})
}

// Rebase moves a document's baseline to counts that were credited outside
// Record, as long as they are newer than the last save the ledger saw.
func (s *LedgerService) Rebase(ctx context.Context, documentID string, words, chars int, at time.Time) (bool, error) {
	if at.IsZero() {
		at = s.clock.Now()
	}
	return s.store.AdvanceBaseline(ctx, documentID, domain.Baseline{Words: words, Chars: chars, UpdatedAt: at})
}

func (s *LedgerService) Day(ctx context.Context, date string) (domain.DayRecord, error) {
	if !calendar.Valid(date) {
		return domain.DayRecord{}, fmt.Errorf("invalid date %q", date)
	}
	return s.store.LoadDay(ctx, date)
}

func (s *LedgerService) Range(ctx context.Context, from, to string) ([]domain.DayRecord, error) {
	if !calendar.Valid(from) || !calendar.Valid(to) {
		return nil, fmt.Errorf("invalid range %q..%q", from, to)
	}
	if from > to {
		return []domain.DayRecord{}, nil
	}
	return s.store.ListDays(ctx, from, to)
}

// Prune drops daily ledgers older than retentionDays before today.
func (s *LedgerService) Prune(ctx context.Context, retentionDays int) (int, error) {
	if retentionDays < 1 {
		return 0, fmt.Errorf("retention days must be at least 1")
	}
	cutoff, err := calendar.AddDays(s.Today(), -retentionDays)
	if err != nil {
		return 0, err
	}
	return s.store.DeleteBefore(ctx, cutoff)
}

func (s *LedgerService) Reload(ctx context.Context) error {
	return s.store.Reload(ctx)
}
