package extend_booking

import (
	"context"

	"github.com/m04kA/SMC-RentalDispatchService/internal/service/bookings/models"
	extendBooking "github.com/m04kA/SMC-RentalDispatchService/internal/usecase/extend_booking"
)

type ExtendBookingUseCase interface {
	Execute(ctx context.Context, req *extendBooking.Request) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
