package usecase

import (
	"context"

	"inkwell/internal/modules/ledger/domain"
	"inkwell/internal/modules/ledger/dto"
	ledgerin "inkwell/internal/modules/ledger/port/in"
	"inkwell/internal/modules/ledger/service"
	apperrors "inkwell/internal/platform/errors"
)

type Interactor struct {
	svc *service.LedgerService
}

func NewInteractor(svc *service.LedgerService) ledgerin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Record(ctx context.Context, input dto.RecordInput) (dto.RecordOutput, error) {
	if input.WordCount < 0 || input.CharCount < 0 {
		return dto.RecordOutput{}, apperrors.ErrInvalidInput
	}
	entry, day, err := i.svc.Record(ctx, input.DocumentID, input.ProjectID, input.WordCount, input.CharCount)
	if err != nil {
		return dto.RecordOutput{}, err
	}
	return dto.RecordOutput{
		Date:       day.Date,
		WordsDelta: entry.WordsDelta,
		CharsDelta: entry.CharsDelta,
		DayWords:   day.WordsAdded,
		DayChars:   day.CharsAdded,
	}, nil
}

func (i *Interactor) Seed(ctx context.Context, inputs []dto.SeedInput) (int, error) {
	seeded := 0
	for _, input := range inputs {
		if input.DocumentID == "" {
			continue
		}
		ok, err := i.svc.Seed(ctx, input.DocumentID, input.WordCount, input.CharCount)
		if err != nil {
			return seeded, err
		}
		if ok {
			seeded++
		}
	}
	return seeded, nil
}

func (i *Interactor) Rebase(ctx context.Context, inputs []dto.SeedInput) (int, error) {
	moved := 0
	for _, input := range inputs {
		if input.DocumentID == "" {
			continue
		}
		ok, err := i.svc.Rebase(ctx, input.DocumentID, input.WordCount, input.CharCount, input.UpdatedAt)
		if err != nil {
			return moved, err
		}
		if ok {
			moved++
		}
	}
	return moved, nil
}

func (i *Interactor) Today(ctx context.Context) (dto.DayOutput, error) {
	return i.Day(ctx, i.svc.Today())
}

func (i *Interactor) Day(ctx context.Context, date string) (dto.DayOutput, error) {
	day, err := i.svc.Day(ctx, date)
	if err != nil {
		return dto.DayOutput{}, err
	}
	return toDayOutput(day), nil
}

func (i *Interactor) Range(ctx context.Context, from, to string) ([]dto.DayOutput, error) {
	days, err := i.svc.Range(ctx, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DayOutput, 0, len(days))
	for _, day := range days {
		out = append(out, toDayOutput(day))
	}
	return out, nil
}

func (i *Interactor) Prune(ctx context.Context, retentionDays int) (int, error) {
	return i.svc.Prune(ctx, retentionDays)
}

func (i *Interactor) Reload(ctx context.Context) error {
	return i.svc.Reload(ctx)
}

func toDayOutput(day domain.DayRecord) dto.DayOutput {
	entries := make([]dto.EntryOutput, 0, len(day.Entries))
	for _, entry := range day.Entries {
		entries = append(entries, dto.EntryOutput{
			At:         entry.At,
			DocumentID: entry.DocumentID,
			ProjectID:  entry.ProjectID,
			WordsDelta: entry.WordsDelta,
			CharsDelta: entry.CharsDelta,
		})
	}
	return dto.DayOutput{
		Date:        day.Date,
		WordsAdded:  day.WordsAdded,
		CharsAdded:  day.CharsAdded,
		LastUpdated: day.LastUpdated,
		Entries:     entries,
	}
}
