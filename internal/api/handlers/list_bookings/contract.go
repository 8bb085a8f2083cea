package list_bookings

import (
	"context"

	"github.com/m04kA/SMC-RentalDispatchService/internal/domain"
	"github.com/m04kA/SMC-RentalDispatchService/internal/service/bookings/models"
)

type BookingService interface {
	List(ctx context.Context, q domain.BookingQuery) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
