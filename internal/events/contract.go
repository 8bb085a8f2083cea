package events

import (
	"context"

	"github.com/m04kA/SMC-RentalDispatchService/internal/domain"
)

// Subscriber получатель событий (шлюз уведомлений)
type Subscriber interface {
	Handle(ctx context.Context, event domain.DomainEvent) error
}

// Metrics метрики доставки уведомлений
type Metrics interface {
	IncNotification(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
