package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalDispatchService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RentalDispatchService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RentalDispatchService/internal/integrations/fleetservice"
	"github.com/m04kA/SMC-RentalDispatchService/internal/integrations/userservice"
	"github.com/m04kA/SMC-RentalDispatchService/internal/service/availability"
	"github.com/m04kA/SMC-RentalDispatchService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

// memoryStore хранилище бронирований в памяти с условной вставкой
type memoryStore struct {
	mu       sync.Mutex
	bookings []*domain.Booking
}

func (m *memoryStore) LockCar(context.Context, int64) error { return nil }

func (m *memoryStore) CreateIfAvailable(_ context.Context, b *domain.Booking, boundary domain.BoundaryPolicy) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.bookings {
		if existing.CarID == b.CarID && existing.IsActive() &&
			boundary.Overlaps(existing.FromTime, existing.ToTime, b.FromTime, b.ToTime) {
			return nil, bookingRepo.ErrWindowOverlap
		}
	}
	cp := *b
	cp.ID = int64(len(m.bookings) + 1)
	m.bookings = append(m.bookings, &cp)
	return &cp, nil
}

func (m *memoryStore) FindOverlapping(_ context.Context, carID int64, from, to time.Time, exclude *int64, boundary domain.BoundaryPolicy) ([]*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Booking
	for _, existing := range m.bookings {
		if exclude != nil && existing.BookingNumber == *exclude {
			continue
		}
		if existing.CarID == carID && existing.IsActive() &&
			boundary.Overlaps(existing.FromTime, existing.ToTime, from, to) {
			out = append(out, existing)
		}
	}
	return out, nil
}

type fakeSequence struct {
	mu   sync.Mutex
	next int64
}

func (f *fakeSequence) Next(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	return f.next, nil
}

type fakeFleet struct {
	cars map[int64]*fleetservice.Car
}

func (f *fakeFleet) GetCar(_ context.Context, carID int64) (*fleetservice.Car, error) {
	car, ok := f.cars[carID]
	if !ok {
		return nil, fleetservice.ErrCarNotFound
	}
	return car, nil
}

type fakeUsers struct {
	users map[int64]*userservice.User
	err   error
}

func (f *fakeUsers) GetUserWithGracefulDegradation(_ context.Context, userID int64) (*userservice.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.users[userID]
	if !ok {
		return nil, userservice.ErrUserNotFound
	}
	return user, nil
}

// serialTx выполняет транзакции по одной, как advisory-блокировка автомобиля
type serialTx struct {
	mu sync.Mutex
}

func (s *serialTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(ctx)
}

type fakePublisher struct {
	mu     sync.Mutex
	events []domain.DomainEvent
}

func (f *fakePublisher) Publish(event domain.DomainEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

type fakeMetrics struct {
	mu        sync.Mutex
	created   int
	conflicts int
}

func (f *fakeMetrics) IncBookingsCreated() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created++
}

func (f *fakeMetrics) IncAvailabilityConflict(string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.conflicts++
}

var now = time.Date(2026, 4, 20, 12, 0, 0, 0, time.UTC)

type fixture struct {
	uc        *UseCase
	users     *fakeUsers
	store     *memoryStore
	publisher *fakePublisher
	metrics   *fakeMetrics
}

func newFixture(boundary domain.BoundaryPolicy) *fixture {
	f := &fixture{
		store:     &memoryStore{},
		publisher: &fakePublisher{},
		metrics:   &fakeMetrics{},
		users: &fakeUsers{users: map[int64]*userservice.User{
			3: {ID: 3},
			4: {ID: 4, IsBlocked: true},
		}},
	}
	fleet := &fakeFleet{cars: map[int64]*fleetservice.Car{
		7: {ID: 7, CompanyID: 2, DailyRate: 300, IsActive: true},
		8: {ID: 8, CompanyID: 2, DailyRate: 300, IsActive: false},
	}}
	resolver := availability.NewResolver(f.store, boundary, nopLogger{})
	f.uc = NewUseCase(f.store, &fakeSequence{next: 99}, resolver, fleet, f.users, &serialTx{}, f.publisher, f.metrics, nopLogger{})
	f.uc.timeProvider = fixedTime{now: now}
	return f
}

func request(from time.Time, days int) *Request {
	return &Request{UserID: 3, CarID: 7, FromDate: from, Days: days}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(domain.BoundaryInclusive)
	from := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	resp, err := f.uc.Execute(context.Background(), request(from, 3))

	require.NoError(t, err)
	assert.Equal(t, int64(100), resp.BookingNumber)
	assert.Equal(t, "upcoming", resp.TripStatus)
	assert.Equal(t, int64(2), resp.CompanyID)
	assert.Equal(t, from.AddDate(0, 0, 3).Format(domain.DateTimeFormat), resp.ToTime)
	assert.Equal(t, 900.0, resp.TotalBookingAmount)
	assert.Equal(t, 1, f.metrics.created)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, domain.EventBookingCreated, f.publisher.events[0].Type)
	assert.Equal(t, int64(3), f.publisher.events[0].UserID)
}

func TestExecute_ExplicitAmounts(t *testing.T) {
	f := newFixture(domain.BoundaryInclusive)
	req := request(time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC), 2)
	req.BookingRent = ptr.Ptr(250.0)
	req.TotalBookingAmount = ptr.Ptr(480.0)
	req.DeliveryAddress = ptr.Ptr(" Lenina 1 ")

	resp, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 250.0, resp.BookingRent)
	assert.Equal(t, 480.0, resp.TotalBookingAmount)
	assert.Equal(t, "Lenina 1", *resp.DeliveryAddress)
}

func TestExecute_OverlapReturnsConflictingBooking(t *testing.T) {
	f := newFixture(domain.BoundaryInclusive)
	from := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	first, err := f.uc.Execute(context.Background(), request(from, 5))
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), request(from.AddDate(0, 0, 2), 3))

	require.ErrorIs(t, err, domain.ErrConflict)
	conflict, ok := domain.AsConflict(err)
	require.True(t, ok)
	require.NotNil(t, conflict.Booking)
	assert.Equal(t, first.BookingNumber, conflict.Booking.BookingNumber)
	assert.Equal(t, 1, f.metrics.conflicts)
	assert.Len(t, f.store.bookings, 1)
}

func TestExecute_TouchingWindows(t *testing.T) {
	from := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("inclusive boundary conflicts", func(t *testing.T) {
		f := newFixture(domain.BoundaryInclusive)
		_, err := f.uc.Execute(context.Background(), request(from, 3))
		require.NoError(t, err)

		_, err = f.uc.Execute(context.Background(), request(from.AddDate(0, 0, 3), 2))
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("exclusive boundary allows back-to-back", func(t *testing.T) {
		f := newFixture(domain.BoundaryExclusive)
		_, err := f.uc.Execute(context.Background(), request(from, 3))
		require.NoError(t, err)

		_, err = f.uc.Execute(context.Background(), request(from.AddDate(0, 0, 3), 2))
		assert.NoError(t, err)
	})
}

func TestExecute_ConcurrentRequestsForSameWindow(t *testing.T) {
	f := newFixture(domain.BoundaryInclusive)
	from := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

	const workers = 10
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.Execute(context.Background(), request(from, 4))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrConflict)
	}
	assert.Equal(t, 1, succeeded)
	assert.Len(t, f.store.bookings, 1)
}

func TestExecute_Errors(t *testing.T) {
	from := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{name: "unknown car", mutate: func(r *Request) { r.CarID = 404 }, wantErr: ErrCarNotFound},
		{name: "inactive car", mutate: func(r *Request) { r.CarID = 8 }, wantErr: ErrCarInactive},
		{name: "unknown user", mutate: func(r *Request) { r.UserID = 404 }, wantErr: ErrUserNotFound},
		{name: "blocked user", mutate: func(r *Request) { r.UserID = 4 }, wantErr: domain.ErrPolicy},
		{name: "past date", mutate: func(r *Request) { r.FromDate = now.AddDate(0, 0, -1) }, wantErr: ErrInvalidDate},
		{name: "zero days", mutate: func(r *Request) { r.Days = 0 }, wantErr: ErrInvalidInput},
		{name: "too many days", mutate: func(r *Request) { r.Days = domain.MaxBookingDays + 1 }, wantErr: ErrInvalidInput},
		{name: "missing user", mutate: func(r *Request) { r.UserID = 0 }, wantErr: ErrInvalidInput},
		{name: "negative coupon", mutate: func(r *Request) { r.Coupon = -1 }, wantErr: ErrInvalidInput},
		{name: "blank address", mutate: func(r *Request) { r.DeliveryAddress = ptr.Ptr("  ") }, wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(domain.BoundaryInclusive)
			req := request(from, 3)
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)

			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.Empty(t, f.store.bookings)
			assert.Empty(t, f.publisher.events)
		})
	}
}

func TestExecute_UserServiceDegraded(t *testing.T) {
	f := newFixture(domain.BoundaryInclusive)
	f.users.err = fmt.Errorf("%w: timeout", userservice.ErrServiceDegraded)

	resp, err := f.uc.Execute(context.Background(), request(time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC), 2))

	require.NoError(t, err)
	assert.Equal(t, int64(100), resp.BookingNumber)
}

func TestExecute_TodayIsAllowed(t *testing.T) {
	f := newFixture(domain.BoundaryInclusive)

	_, err := f.uc.Execute(context.Background(), request(time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC), 1))

	assert.NoError(t, err)
}
