package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RentalDispatchService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByNumber(ctx context.Context, bookingNumber int64) (*domain.Booking, error)
	List(ctx context.Context, q domain.BookingQuery) ([]*domain.Booking, error)
	Count(ctx context.Context, q domain.BookingQuery) (int64, error)
	UpdateStatus(ctx context.Context, bookingNumber int64, current, next domain.TripStatus) (*domain.Booking, error)
	UpdateDelivery(ctx context.Context, bookingNumber int64, address *string, deliveryTime *time.Time) (*domain.Booking, error)
}

// AssignmentRepository интерфейс репозитория назначений агентов
type AssignmentRepository interface {
	ListByBooking(ctx context.Context, bookingNumber int64) ([]*domain.AgentAssignment, error)
	SyncTripStatus(ctx context.Context, bookingNumber int64, status domain.TripStatus) (int64, error)
	UpdateStatusForRole(ctx context.Context, bookingNumber int64, role domain.Role, status domain.AssignmentStatus) error
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
	IncStatusTransition(from, to string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
