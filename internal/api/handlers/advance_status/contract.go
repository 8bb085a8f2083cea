package advance_status

import (
	"context"

	"github.com/m04kA/SMC-RentalDispatchService/internal/service/bookings/models"
)

type BookingService interface {
	Advance(ctx context.Context, bookingNumber int64, req *models.AdvanceStatusRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
