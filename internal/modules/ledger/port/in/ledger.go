package in

import (
	"context"

	"inkwell/internal/modules/ledger/dto"
)

type Usecase interface {
	Record(ctx context.Context, input dto.RecordInput) (dto.RecordOutput, error)
	Seed(ctx context.Context, inputs []dto.SeedInput) (int, error)
	Rebase(ctx context.Context, inputs []dto.SeedInput) (int, error)
	Today(ctx context.Context) (dto.DayOutput, error)
	Day(ctx context.Context, date string) (dto.DayOutput, error)
	Range(ctx context.Context, from, to string) ([]dto.DayOutput, error)
	Prune(ctx context.Context, retentionDays int) (int, error)
	Reload(ctx context.Context) error
}
