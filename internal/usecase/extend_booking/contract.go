package extend_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RentalDispatchService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RentalDispatchService/internal/infra/storage/booking"
	availabilityModels "github.com/m04kA/SMC-RentalDispatchService/internal/service/availability/models"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	LockCar(ctx context.Context, carID int64) error
	GetByNumber(ctx context.Context, bookingNumber int64) (*domain.Booking, error)
	Extend(ctx context.Context, bookingNumber int64, params bookingRepo.ExtendParams) (*domain.Booking, error)
}

// AvailabilityResolver проверка доступности автомобиля
type AvailabilityResolver interface {
	Boundary() domain.BoundaryPolicy
	CheckExcluding(ctx context.Context, carID int64, from, to time.Time, excludeNumber int64) (*availabilityModels.Result, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher асинхронная публикация доменных событий
type EventPublisher interface {
	Publish(event domain.DomainEvent)
}

// Metrics доменные метрики
type Metrics interface {
	IncAvailabilityConflict(operation string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
