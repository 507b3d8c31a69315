package in

import (
	"context"

	manuscriptdto "inkwell/internal/modules/manuscript/dto"
	manuscriptin "inkwell/internal/modules/manuscript/port/in"
)

type CLIHandler struct {
	usecase manuscriptin.Usecase
}

func NewCLIHandler(usecase manuscriptin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) ListDocuments(ctx context.Context) ([]manuscriptdto.DocumentOutput, error) {
	return h.usecase.ListDocuments(ctx)
}

func (h CLIHandler) GetDocument(ctx context.Context, id string) (manuscriptdto.DocumentOutput, error) {
	return h.usecase.GetDocument(ctx, id)
}
