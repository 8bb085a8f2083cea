package claim_assignment

import (
	"context"

	"github.com/m04kA/SMC-RentalDispatchService/internal/domain"
	"github.com/m04kA/SMC-RentalDispatchService/internal/integrations/fleetservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByNumber(ctx context.Context, bookingNumber int64) (*domain.Booking, error)
	ClaimRole(ctx context.Context, bookingNumber int64, role domain.Role, agentID int64) (bool, error)
}

// AssignmentRepository интерфейс репозитория назначений агентов
type AssignmentRepository interface {
	Create(ctx context.Context, a *domain.AgentAssignment) (*domain.AgentAssignment, error)
	GetByBookingAndAgent(ctx context.Context, bookingNumber, agentID int64) (*domain.AgentAssignment, error)
	MarkReceive(ctx context.Context, id int64) error
}

// FleetServiceClient интерфейс клиента для FleetService
type FleetServiceClient interface {
	GetAgentWithGracefulDegradation(ctx context.Context, agentID int64) (*fleetservice.Agent, error)
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
	IncRoleClaim(role, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
