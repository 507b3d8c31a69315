package out

import (
	"context"

	"inkwell/internal/modules/goals/domain"
	goalsout "inkwell/internal/modules/goals/port/out"
	ledgerdto "inkwell/internal/modules/ledger/dto"
	ledgerin "inkwell/internal/modules/ledger/port/in"
)

type LedgerAdapter struct {
	ledger ledgerin.Usecase
}

func NewLedgerAdapter(ledger ledgerin.Usecase) goalsout.WordLedger {
	return &LedgerAdapter{ledger: ledger}
}

func (a *LedgerAdapter) Record(ctx context.Context, documentID, projectID string, words, chars int) (domain.LedgerDelta, error) {
	out, err := a.ledger.Record(ctx, ledgerdto.RecordInput{
		DocumentID: documentID,
		ProjectID:  projectID,
		WordCount:  words,
		CharCount:  chars,
	})
	if err != nil {
		return domain.LedgerDelta{}, err
	}
	return domain.LedgerDelta{
		Date:     out.Date,
		Words:    out.WordsDelta,
		Chars:    out.CharsDelta,
		DayWords: out.DayWords,
	}, nil
}

func (a *LedgerAdapter) Seed(ctx context.Context, docs []domain.Document) (int, error) {
	return a.ledger.Seed(ctx, seedInputs(docs))
}

func (a *LedgerAdapter) Rebase(ctx context.Context, docs []domain.Document) (int, error) {
	return a.ledger.Rebase(ctx, seedInputs(docs))
}

func seedInputs(docs []domain.Document) []ledgerdto.SeedInput {
	inputs := make([]ledgerdto.SeedInput, 0, len(docs))
	for _, doc := range docs {
		inputs = append(inputs, ledgerdto.SeedInput{
			DocumentID: doc.ID,
			WordCount:  doc.WordCount,
			CharCount:  domain.EstimateChars(doc.WordCount, doc.CharCount),
			UpdatedAt:  doc.UpdatedAt,
		})
	}
	return inputs
}

func (a *LedgerAdapter) Today(ctx context.Context) (domain.LedgerDay, error) {
	day, err := a.ledger.Today(ctx)
	if err != nil {
		return domain.LedgerDay{}, err
	}
	return domain.LedgerDay{Date: day.Date, Words: day.WordsAdded, Chars: day.CharsAdded}, nil
}

func (a *LedgerAdapter) Prune(ctx context.Context, retentionDays int) (int, error) {
	return a.ledger.Prune(ctx, retentionDays)
}

func (a *LedgerAdapter) Reload(ctx context.Context) error {
	return a.ledger.Reload(ctx)
}
