package claim_assignment

import (
	"context"

	claimAssignment "github.com/m04kA/SMC-RentalDispatchService/internal/usecase/claim_assignment"
)

type ClaimAssignmentUseCase interface {
	Execute(ctx context.Context, req *claimAssignment.Request) (*claimAssignment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
