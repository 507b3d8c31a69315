package in

import (
	"context"

	ledgerdto "inkwell/internal/modules/ledger/dto"
	ledgerin "inkwell/internal/modules/ledger/port/in"
)

type CLIHandler struct {
	usecase ledgerin.Usecase
}

func NewCLIHandler(usecase ledgerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Today(ctx context.Context) (ledgerdto.DayOutput, error) {
	return h.usecase.Today(ctx)
}

func (h CLIHandler) Day(ctx context.Context, date string) (ledgerdto.DayOutput, error) {
	return h.usecase.Day(ctx, date)
}

func (h CLIHandler) Range(ctx context.Context, from, to string) ([]ledgerdto.DayOutput, error) {
	return h.usecase.Range(ctx, from, to)
}
