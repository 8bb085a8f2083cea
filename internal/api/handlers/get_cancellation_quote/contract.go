package get_cancellation_quote

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RentalDispatchService/internal/service/cancellation/models"
)

type CancellationService interface {
	Quote(ctx context.Context, bookingNumber int64, cancelDate time.Time) (*models.QuoteResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
