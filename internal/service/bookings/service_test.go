package bookings

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalDispatchService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RentalDispatchService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RentalDispatchService/internal/service/bookings/models"
	"github.com/m04kA/SMC-RentalDispatchService/pkg/ptr"
	"github.com/m04kA/SMC-RentalDispatchService/pkg/txmanager"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
	// staleOnUpdate имитирует параллельное изменение статуса
	staleOnUpdate bool
}

func (f *fakeBookingRepo) GetByNumber(_ context.Context, n int64) (*domain.Booking, error) {
	b, ok := f.bookings[n]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookingRepo) List(_ context.Context, q domain.BookingQuery) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if q.CarID == nil || b.CarID == *q.CarID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) Count(ctx context.Context, q domain.BookingQuery) (int64, error) {
	list, _ := f.List(ctx, q)
	return int64(len(list)), nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, n int64, current, next domain.TripStatus) (*domain.Booking, error) {
	b, ok := f.bookings[n]
	if !ok || b.TripStatus != current || f.staleOnUpdate {
		return nil, bookingRepo.ErrStatusMismatch
	}
	b.TripStatus = next
	cp := *b
	return &cp, nil
}

func (f *fakeBookingRepo) UpdateDelivery(_ context.Context, n int64, address *string, deliveryTime *time.Time) (*domain.Booking, error) {
	b, ok := f.bookings[n]
	if !ok || b.TripStatus.IsTerminal() {
		return nil, bookingRepo.ErrStatusMismatch
	}
	if address != nil {
		b.DeliveryAddress = address
	}
	if deliveryTime != nil {
		b.DeliveryTime = deliveryTime
	}
	cp := *b
	return &cp, nil
}

type fakeAssignmentRepo struct {
	rows []*domain.AgentAssignment
}

func (f *fakeAssignmentRepo) ListByBooking(_ context.Context, n int64) ([]*domain.AgentAssignment, error) {
	var out []*domain.AgentAssignment
	for _, a := range f.rows {
		if a.BookingNumber == n {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAssignmentRepo) SyncTripStatus(_ context.Context, n int64, status domain.TripStatus) (int64, error) {
	var affected int64
	for _, a := range f.rows {
		if a.BookingNumber == n {
			a.TripStatus = status
			affected++
		}
	}
	return affected, nil
}

func (f *fakeAssignmentRepo) UpdateStatusForRole(_ context.Context, n int64, role domain.Role, status domain.AssignmentStatus) error {
	for _, a := range f.rows {
		if a.BookingNumber == n && a.Covers(role) {
			a.Status = status
		}
	}
	return nil
}

type fakeTxManager struct {
	err error
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
}

type fakePublisher struct {
	events []domain.DomainEvent
}

func (f *fakePublisher) Publish(event domain.DomainEvent) {
	f.events = append(f.events, event)
}

type fakeMetrics struct {
	transitions []string
}

func (f *fakeMetrics) IncStatusTransition(from, to string) {
	f.transitions = append(f.transitions, from+"->"+to)
}

type fixture struct {
	svc         *Service
	bookings    *fakeBookingRepo
	assignments *fakeAssignmentRepo
	tx          *fakeTxManager
	publisher   *fakePublisher
	metrics     *fakeMetrics
}

func newFixture(status domain.TripStatus) *fixture {
	f := &fixture{
		bookings: &fakeBookingRepo{bookings: map[int64]*domain.Booking{
			100: {BookingNumber: 100, CarID: 7, UserID: 3, TripStatus: status},
		}},
		assignments: &fakeAssignmentRepo{},
		tx:          &fakeTxManager{},
		publisher:   &fakePublisher{},
		metrics:     &fakeMetrics{},
	}
	f.svc = NewService(f.bookings, f.assignments, f.tx, f.publisher, f.metrics, nopLogger{})
	return f
}

func advance(t *testing.T, f *fixture, status domain.TripStatus) error {
	t.Helper()
	_, err := f.svc.Advance(context.Background(), 100, &models.AdvanceStatusRequest{Status: string(status)})
	return err
}

func TestAdvance_UpcomingToFinishedRejected(t *testing.T) {
	f := newFixture(domain.TripStatusUpcoming)

	err := advance(t, f, domain.TripStatusFinished)

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.ErrorIs(t, err, domain.ErrStaleTransition)
	assert.Equal(t, domain.TripStatusUpcoming, f.bookings.bookings[100].TripStatus)
	assert.Empty(t, f.publisher.events)
}

func TestAdvance_ShortPathToFinished(t *testing.T) {
	f := newFixture(domain.TripStatusUpcoming)

	for _, next := range []domain.TripStatus{domain.TripStatusDelivering, domain.TripStatusInProgress, domain.TripStatusFinished} {
		require.NoError(t, advance(t, f, next), "advance to %s", next)
	}

	assert.Equal(t, domain.TripStatusFinished, f.bookings.bookings[100].TripStatus)
	assert.Equal(t, []string{"upcoming->delivering", "delivering->inprogress", "inprogress->finished"}, f.metrics.transitions)
	require.Len(t, f.publisher.events, 3)
	assert.Equal(t, domain.EventBookingStatusChanged, f.publisher.events[2].Type)
	assert.Equal(t, domain.TripStatusInProgress, f.publisher.events[2].OldStatus)
	assert.Equal(t, domain.TripStatusFinished, f.publisher.events[2].NewStatus)
}

func TestAdvance_FullPath(t *testing.T) {
	f := newFixture(domain.TripStatusUpcoming)

	path := []domain.TripStatus{
		domain.TripStatusDelivering,
		domain.TripStatusInProgress,
		domain.TripStatusReturn,
		domain.TripStatusReturning,
		domain.TripStatusFinished,
	}
	for _, next := range path {
		require.NoError(t, advance(t, f, next))
	}

	// терминальный статус
	assert.ErrorIs(t, advance(t, f, domain.TripStatusUpcoming), ErrInvalidTransition)
}

func TestAdvance_SyncsAssignments(t *testing.T) {
	f := newFixture(domain.TripStatusDelivering)
	handover := &domain.AgentAssignment{ID: 1, AgentID: 11, BookingNumber: 100, AssignFor: domain.RoleHandover,
		Status: domain.AssignmentStatusAssign, TripStatus: domain.TripStatusDelivering}
	receive := &domain.AgentAssignment{ID: 2, AgentID: 12, BookingNumber: 100, AssignFor: domain.RoleReceive,
		Status: domain.AssignmentStatusAssign, TripStatus: domain.TripStatusDelivering}
	f.assignments.rows = []*domain.AgentAssignment{handover, receive}

	require.NoError(t, advance(t, f, domain.TripStatusInProgress))
	assert.Equal(t, domain.AssignmentStatusHandover, handover.Status)
	assert.Equal(t, domain.AssignmentStatusAssign, receive.Status)

	require.NoError(t, advance(t, f, domain.TripStatusReturn))
	require.NoError(t, advance(t, f, domain.TripStatusReturning))
	assert.Equal(t, domain.TripStatusReturning, receive.TripStatus)
	assert.Equal(t, domain.TripStatusReturning, handover.TripStatus)

	require.NoError(t, advance(t, f, domain.TripStatusFinished))
	assert.Equal(t, domain.AssignmentStatusReceive, receive.Status)
	assert.Equal(t, domain.TripStatusFinished, receive.TripStatus)
}

func TestAdvance_Validation(t *testing.T) {
	f := newFixture(domain.TripStatusUpcoming)

	assert.ErrorIs(t, advance(t, f, "parked"), domain.ErrValidation)
	assert.ErrorIs(t, advance(t, f, domain.TripStatusCancelled), ErrInvalidInput)
}

func TestAdvance_NotFound(t *testing.T) {
	f := newFixture(domain.TripStatusUpcoming)

	_, err := f.svc.Advance(context.Background(), 404, &models.AdvanceStatusRequest{Status: "delivering"})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdvance_ConcurrentUpdate(t *testing.T) {
	t.Run("status changed before compare-and-set", func(t *testing.T) {
		f := newFixture(domain.TripStatusUpcoming)
		f.bookings.staleOnUpdate = true

		assert.ErrorIs(t, advance(t, f, domain.TripStatusDelivering), ErrConcurrentUpdate)
	})

	t.Run("serialization failure", func(t *testing.T) {
		f := newFixture(domain.TripStatusUpcoming)
		f.tx.err = fmt.Errorf("%w: pq: could not serialize access", txmanager.ErrSerializationFailure)

		assert.ErrorIs(t, advance(t, f, domain.TripStatusDelivering), ErrConcurrentUpdate)
	})

	t.Run("begin failure is internal", func(t *testing.T) {
		f := newFixture(domain.TripStatusUpcoming)
		f.tx.err = fmt.Errorf("%w: connection refused", txmanager.ErrBeginTx)

		assert.ErrorIs(t, advance(t, f, domain.TripStatusDelivering), ErrInternal)
	})
}

func TestChangeDeliveryDetails(t *testing.T) {
	f := newFixture(domain.TripStatusUpcoming)
	at := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)

	resp, err := f.svc.ChangeDeliveryDetails(context.Background(), 100, &models.ChangeDeliveryRequest{
		DeliveryAddress: ptr.Ptr("  Lenina 1 "),
		DeliveryTime:    &at,
	})

	require.NoError(t, err)
	assert.Equal(t, "Lenina 1", *resp.DeliveryAddress)
	assert.Equal(t, "upcoming", resp.TripStatus)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, domain.EventBookingDeliveryChanged, f.publisher.events[0].Type)
}

func TestChangeDeliveryDetails_Errors(t *testing.T) {
	f := newFixture(domain.TripStatusCancelled)

	_, err := f.svc.ChangeDeliveryDetails(context.Background(), 100, &models.ChangeDeliveryRequest{})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.svc.ChangeDeliveryDetails(context.Background(), 100, &models.ChangeDeliveryRequest{DeliveryAddress: ptr.Ptr("Lenina 1")})
	assert.ErrorIs(t, err, ErrBookingClosed)

	_, err = f.svc.ChangeDeliveryDetails(context.Background(), 404, &models.ChangeDeliveryRequest{DeliveryAddress: ptr.Ptr("Lenina 1")})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGet_NotFound(t *testing.T) {
	f := newFixture(domain.TripStatusUpcoming)

	_, err := f.svc.Get(context.Background(), 404)

	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestListAndCount(t *testing.T) {
	f := newFixture(domain.TripStatusUpcoming)
	q := domain.BookingQuery{CarID: ptr.Ptr(int64(7)), Limit: 20, Page: 1}

	page, err := f.svc.List(context.Background(), q)
	require.NoError(t, err)
	assert.Len(t, page.Bookings, 1)
	assert.Equal(t, 20, page.Limit)

	count, err := f.svc.Count(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count.Total)
}
