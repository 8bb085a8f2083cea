package check_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RentalDispatchService/internal/service/availability/models"
)

type AvailabilityResolver interface {
	Check(ctx context.Context, carID int64, fromDate time.Time, days int) (*models.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
