package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalDispatchService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type countingMetrics struct {
	mu       sync.Mutex
	outcomes map[string]int
}

func (m *countingMetrics) IncNotification(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.outcomes == nil {
		m.outcomes = make(map[string]int)
	}
	m.outcomes[outcome]++
}

func (m *countingMetrics) get(outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.outcomes[outcome]
}

type recordingSubscriber struct {
	mu      sync.Mutex
	events  []domain.DomainEvent
	err     error
	release chan struct{}
}

func (s *recordingSubscriber) Handle(ctx context.Context, event domain.DomainEvent) error {
	if s.release != nil {
		<-s.release
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return s.err
}

func (s *recordingSubscriber) received() []domain.DomainEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.DomainEvent(nil), s.events...)
}

func TestPublisher_DeliversAndDrainsOnClose(t *testing.T) {
	sub := &recordingSubscriber{}
	metrics := &countingMetrics{}
	p := NewPublisher(sub, 16, 2, time.Second, metrics, nopLogger{})

	for i := int64(1); i <= 5; i++ {
		p.Publish(domain.DomainEvent{BookingNumber: i, Type: domain.EventBookingCreated})
	}

	require.NoError(t, p.Close(context.Background()))

	got := sub.received()
	require.Len(t, got, 5)
	for _, ev := range got {
		assert.NotEmpty(t, ev.ID)
		assert.False(t, ev.OccurredAt.IsZero())
	}
	assert.Equal(t, 5, metrics.get(OutcomeDelivered))
}

func TestPublisher_PublishDoesNotBlockWhenQueueFull(t *testing.T) {
	sub := &recordingSubscriber{release: make(chan struct{})}
	metrics := &countingMetrics{}
	p := NewPublisher(sub, 1, 1, time.Second, metrics, nopLogger{})

	done := make(chan struct{})
	go func() {
		// worker держит первое событие, второе занимает буфер, остальные отбрасываются
		for i := int64(1); i <= 10; i++ {
			p.Publish(domain.DomainEvent{BookingNumber: i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a full queue")
	}

	close(sub.release)
	require.NoError(t, p.Close(context.Background()))

	assert.GreaterOrEqual(t, metrics.get(OutcomeDropped), 8)
	assert.Equal(t, 10, metrics.get(OutcomeDropped)+metrics.get(OutcomeDelivered))
}

func TestPublisher_SubscriberErrorIsOnlyCounted(t *testing.T) {
	sub := &recordingSubscriber{err: errors.New("gateway down")}
	metrics := &countingMetrics{}
	p := NewPublisher(sub, 4, 1, time.Second, metrics, nopLogger{})

	p.Publish(domain.DomainEvent{BookingNumber: 1})
	require.NoError(t, p.Close(context.Background()))

	assert.Equal(t, 1, metrics.get(OutcomeFailed))
	assert.Equal(t, 0, metrics.get(OutcomeDelivered))
}

func TestPublisher_PublishAfterCloseIsDropped(t *testing.T) {
	sub := &recordingSubscriber{}
	metrics := &countingMetrics{}
	p := NewPublisher(sub, 4, 1, time.Second, metrics, nopLogger{})
	require.NoError(t, p.Close(context.Background()))

	assert.NotPanics(t, func() { p.Publish(domain.DomainEvent{BookingNumber: 1}) })
	assert.Equal(t, 1, metrics.get(OutcomeDropped))
	assert.Empty(t, sub.received())
}

func TestPublisher_CloseRespectsContext(t *testing.T) {
	sub := &recordingSubscriber{release: make(chan struct{})}
	p := NewPublisher(sub, 4, 1, time.Second, &countingMetrics{}, nopLogger{})
	p.Publish(domain.DomainEvent{BookingNumber: 1})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, p.Close(ctx), context.DeadlineExceeded)
	close(sub.release)
}
