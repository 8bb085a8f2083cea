package cancellation

import (
	"context"

	"github.com/m04kA/SMC-RentalDispatchService/internal/domain"
)

// PolicyRepository интерфейс репозитория тарифов отмены
type PolicyRepository interface {
	GetTiersByCompany(ctx context.Context, companyID int64) ([]domain.CancellationTier, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByNumber(ctx context.Context, bookingNumber int64) (*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
