package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RentalDispatchService/internal/domain"
	"github.com/m04kA/SMC-RentalDispatchService/internal/integrations/fleetservice"
	"github.com/m04kA/SMC-RentalDispatchService/internal/integrations/userservice"
	availabilityModels "github.com/m04kA/SMC-RentalDispatchService/internal/service/availability/models"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	LockCar(ctx context.Context, carID int64) error
	CreateIfAvailable(ctx context.Context, booking *domain.Booking, boundary domain.BoundaryPolicy) (*domain.Booking, error)
}

// SequenceGenerator источник номеров бронирований
type SequenceGenerator interface {
	Next(ctx context.Context) (int64, error)
}

// AvailabilityResolver проверка доступности автомобиля
type AvailabilityResolver interface {
	Boundary() domain.BoundaryPolicy
	Check(ctx context.Context, carID int64, fromDate time.Time, days int) (*availabilityModels.Result, error)
}

// FleetServiceClient интерфейс клиента для FleetService
type FleetServiceClient interface {
	GetCar(ctx context.Context, carID int64) (*fleetservice.Car, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetUserWithGracefulDegradation(ctx context.Context, userID int64) (*userservice.User, error)
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
	IncBookingsCreated()
	IncAvailabilityConflict(operation string)
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
