package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RentalDispatchService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	FindOverlapping(ctx context.Context, carID int64, from, to time.Time, excludeNumber *int64, boundary domain.BoundaryPolicy) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
