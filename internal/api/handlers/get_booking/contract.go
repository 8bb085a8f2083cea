package get_booking

import (
	"context"

	"github.com/m04kA/SMC-RentalDispatchService/internal/service/bookings/models"
)

type BookingService interface {
	Get(ctx context.Context, bookingNumber int64) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
