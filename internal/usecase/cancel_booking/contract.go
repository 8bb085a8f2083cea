package cancel_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RentalDispatchService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RentalDispatchService/internal/infra/storage/booking"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByNumber(ctx context.Context, bookingNumber int64) (*domain.Booking, error)
	Cancel(ctx context.Context, bookingNumber int64, params bookingRepo.CancelParams) (*domain.Booking, error)
}

// FeeCalculator расчёт штрафа за отмену по тарифам компании
type FeeCalculator interface {
	FeeFor(ctx context.Context, booking *domain.Booking, cancelDate time.Time) (domain.CancellationFee, error)
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

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
