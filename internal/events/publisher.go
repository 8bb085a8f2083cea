package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RentalDispatchService/internal/domain"
)

// Исходы доставки для метрик
const (
	OutcomeDelivered = "delivered"
	OutcomeFailed    = "failed"
	OutcomeDropped   = "dropped"
)

// Publisher асинхронно доставляет доменные события подписчику.
// Publish никогда не блокирует вызывающего: при заполненном буфере событие
// отбрасывается с записью в лог. Ошибки доставки только логируются.
type Publisher struct {
	queue           chan domain.DomainEvent
	subscriber      Subscriber
	deliveryTimeout time.Duration
	metrics         Metrics
	logger          Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewPublisher создает publisher и запускает workers отправителей
func NewPublisher(subscriber Subscriber, queueSize, workers int, deliveryTimeout time.Duration, metrics Metrics, logger Logger) *Publisher {
	if queueSize <= 0 {
		queueSize = 1
	}
	if workers <= 0 {
		workers = 1
	}

	p := &Publisher{
		queue:           make(chan domain.DomainEvent, queueSize),
		subscriber:      subscriber,
		deliveryTimeout: deliveryTimeout,
		metrics:         metrics,
		logger:          logger,
	}

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}

	return p
}

// Publish ставит событие в очередь. ID и время события заполняются, если пусты.
func (p *Publisher) Publish(event domain.DomainEvent) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		p.logger.Warn("Publish: publisher closed, event %s (%s, booking=%d) dropped", event.ID, event.Type, event.BookingNumber)
		p.metrics.IncNotification(OutcomeDropped)
		return
	}

	select {
	case p.queue <- event:
	default:
		p.logger.Warn("Publish: queue full, event %s (%s, booking=%d) dropped", event.ID, event.Type, event.BookingNumber)
		p.metrics.IncNotification(OutcomeDropped)
	}
}

// Close перестаёт принимать события и ждёт доставки уже поставленных в очередь.
// Если ctx истекает раньше, возвращает ctx.Err(); оставшиеся события теряются.
func (p *Publisher) Close(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Publisher) worker() {
	defer p.wg.Done()

	for event := range p.queue {
		p.deliver(event)
	}
}

func (p *Publisher) deliver(event domain.DomainEvent) {
	ctx := context.Background()
	if p.deliveryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.deliveryTimeout)
		defer cancel()
	}

	if err := p.subscriber.Handle(ctx, event); err != nil {
		p.logger.Error("deliver: event %s (%s, booking=%d) failed: %v", event.ID, event.Type, event.BookingNumber, err)
		p.metrics.IncNotification(OutcomeFailed)
		return
	}

	p.metrics.IncNotification(OutcomeDelivered)
}

// LogSubscriber подписчик, который только пишет события в лог.
// Используется, когда шлюз уведомлений выключен в конфигурации.
type LogSubscriber struct {
	Logger Logger
}

func (s LogSubscriber) Handle(_ context.Context, event domain.DomainEvent) error {
	s.Logger.Info("event %s: %s booking=%d user=%d %s -> %s: %s",
		event.ID, event.Type, event.BookingNumber, event.UserID, event.OldStatus, event.NewStatus, event.Message)
	return nil
}
