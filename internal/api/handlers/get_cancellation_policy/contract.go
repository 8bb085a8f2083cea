package get_cancellation_policy

import (
	"context"

	"github.com/m04kA/SMC-RentalDispatchService/internal/service/cancellation/models"
)

type CancellationService interface {
	GetPolicy(ctx context.Context, companyID int64) (*models.PolicyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
