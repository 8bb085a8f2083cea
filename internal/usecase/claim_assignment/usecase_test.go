package claim_assignment

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalDispatchService/internal/domain"
	assignmentRepo "github.com/m04kA/SMC-RentalDispatchService/internal/infra/storage/assignment"
	bookingRepo "github.com/m04kA/SMC-RentalDispatchService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RentalDispatchService/internal/integrations/fleetservice"
	"github.com/m04kA/SMC-RentalDispatchService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[int64]*domain.Booking
	// rival агент, выставляющий флаг между чтением и compare-and-set
	rival *int64
}

func (f *fakeBookingRepo) GetByNumber(_ context.Context, n int64) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[n]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookingRepo) ClaimRole(_ context.Context, n int64, role domain.Role, agentID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[n]
	if !ok {
		return false, nil
	}
	if f.rival != nil {
		agentID, f.rival = *f.rival, nil
		setRole(b, role, agentID)
		return false, nil
	}
	if _, taken := b.AgentFor(role); taken {
		return false, nil
	}
	setRole(b, role, agentID)
	return true, nil
}

func setRole(b *domain.Booking, role domain.Role, agentID int64) {
	id := agentID
	if role == domain.RoleHandover {
		b.AgentAssignForHandover, b.HandoverByAgentID = true, &id
		return
	}
	b.AgentAssignForReceive, b.ReceiveByAgentID = true, &id
}

type fakeAssignmentRepo struct {
	mu   sync.Mutex
	rows []*domain.AgentAssignment
}

func (f *fakeAssignmentRepo) Create(_ context.Context, a *domain.AgentAssignment) (*domain.AgentAssignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *a
	cp.ID = int64(len(f.rows) + 1)
	f.rows = append(f.rows, &cp)
	out := cp
	return &out, nil
}

func (f *fakeAssignmentRepo) GetByBookingAndAgent(_ context.Context, n, agentID int64) (*domain.AgentAssignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.rows {
		if a.BookingNumber == n && a.AgentID == agentID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, assignmentRepo.ErrAssignmentNotFound
}

func (f *fakeAssignmentRepo) MarkReceive(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.rows {
		if a.ID == id {
			a.AssignForReceive = true
			return nil
		}
	}
	return assignmentRepo.ErrAssignmentNotFound
}

type fakeFleet struct {
	agents   map[int64]*fleetservice.Agent
	degraded bool
}

func (f *fakeFleet) GetAgentWithGracefulDegradation(_ context.Context, agentID int64) (*fleetservice.Agent, error) {
	if f.degraded {
		return nil, fmt.Errorf("%w: agent_id=%d", fleetservice.ErrServiceDegraded, agentID)
	}
	agent, ok := f.agents[agentID]
	if !ok {
		return nil, fleetservice.ErrAgentNotFound
	}
	return agent, nil
}

// concurrentTx не сериализует транзакции: гонку разрешает compare-and-set
type concurrentTx struct{}

func (concurrentTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
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
	mu     sync.Mutex
	claims []string
}

func (f *fakeMetrics) IncRoleClaim(role, outcome string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.claims = append(f.claims, role+":"+outcome)
}

const (
	agentX int64 = 11
	agentY int64 = 12
)

type fixture struct {
	uc          *UseCase
	bookings    *fakeBookingRepo
	assignments *fakeAssignmentRepo
	fleet       *fakeFleet
	publisher   *fakePublisher
	metrics     *fakeMetrics
}

func newFixture(status domain.TripStatus) *fixture {
	f := &fixture{
		bookings: &fakeBookingRepo{bookings: map[int64]*domain.Booking{
			100: {BookingNumber: 100, CarID: 7, UserID: 3, TripStatus: status},
		}},
		assignments: &fakeAssignmentRepo{},
		fleet: &fakeFleet{agents: map[int64]*fleetservice.Agent{
			agentX: {ID: agentX, IsActive: true},
			agentY: {ID: agentY, IsActive: true},
			13:     {ID: 13, IsActive: false},
		}},
		publisher: &fakePublisher{},
		metrics:   &fakeMetrics{},
	}
	f.uc = NewUseCase(f.bookings, f.assignments, f.fleet, concurrentTx{}, f.publisher, f.metrics, nopLogger{})
	return f
}

func (f *fixture) claim(agentID int64, role domain.Role) (*Response, error) {
	return f.uc.Execute(context.Background(), &Request{BookingNumber: 100, AgentID: agentID, Role: string(role)})
}

func TestExecute_ClaimsFreeRole(t *testing.T) {
	f := newFixture(domain.TripStatusUpcoming)

	resp, err := f.claim(agentX, domain.RoleHandover)

	require.NoError(t, err)
	assert.Equal(t, domain.ClaimOutcomeClaimed, resp.Outcome)
	assert.True(t, resp.Booking.AgentAssignForHandover)
	assert.Equal(t, agentX, *resp.Booking.HandoverByAgentID)
	require.NotNil(t, resp.Assignment)
	assert.Equal(t, "assign", resp.Assignment.Status)
	assert.Equal(t, "handover", resp.Assignment.AssignFor)
	assert.Equal(t, "upcoming", resp.Assignment.TripStatus)
	require.Len(t, f.assignments.rows, 1)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, domain.EventAgentAssigned, f.publisher.events[0].Type)
	assert.Equal(t, []string{"handover:claimed"}, f.metrics.claims)
}

func TestExecute_OtherAgentIsRejected(t *testing.T) {
	f := newFixture(domain.TripStatusUpcoming)
	_, err := f.claim(agentX, domain.RoleHandover)
	require.NoError(t, err)

	_, err = f.claim(agentY, domain.RoleHandover)

	require.ErrorIs(t, err, domain.ErrConflict)
	conflict, ok := domain.AsConflict(err)
	require.True(t, ok)
	require.NotNil(t, conflict.OtherAgentID)
	assert.Equal(t, agentX, *conflict.OtherAgentID)
	assert.Len(t, f.assignments.rows, 1)
	assert.Equal(t, agentX, *f.bookings.bookings[100].HandoverByAgentID)
	assert.Equal(t, "handover:already_assigned", f.metrics.claims[1])
}

func TestExecute_SameAgentReclaimIsIdempotent(t *testing.T) {
	f := newFixture(domain.TripStatusUpcoming)
	_, err := f.claim(agentX, domain.RoleHandover)
	require.NoError(t, err)

	resp, err := f.claim(agentX, domain.RoleHandover)

	require.NoError(t, err)
	assert.Equal(t, domain.ClaimOutcomeClaimed, resp.Outcome)
	assert.Nil(t, resp.Assignment)
	assert.Len(t, f.assignments.rows, 1)
	assert.Len(t, f.publisher.events, 1)
}

func TestExecute_HandoverHolderTakesReceiveOnSameRow(t *testing.T) {
	f := newFixture(domain.TripStatusInProgress)
	_, err := f.claim(agentX, domain.RoleHandover)
	require.NoError(t, err)

	resp, err := f.claim(agentX, domain.RoleReceive)

	require.NoError(t, err)
	require.Len(t, f.assignments.rows, 1)
	row := f.assignments.rows[0]
	assert.Equal(t, domain.RoleHandover, row.AssignFor)
	assert.True(t, row.AssignForReceive)
	assert.True(t, row.Covers(domain.RoleReceive))
	assert.True(t, resp.Assignment.AssignForReceive)
	assert.True(t, resp.Booking.AgentAssignForReceive)
	assert.Equal(t, agentX, *resp.Booking.ReceiveByAgentID)
}

func TestExecute_DifferentReceiveAgentGetsOwnRow(t *testing.T) {
	f := newFixture(domain.TripStatusInProgress)
	_, err := f.claim(agentX, domain.RoleHandover)
	require.NoError(t, err)

	resp, err := f.claim(agentY, domain.RoleReceive)

	require.NoError(t, err)
	require.Len(t, f.assignments.rows, 2)
	assert.Equal(t, "receive", resp.Assignment.AssignFor)
	assert.False(t, f.assignments.rows[0].AssignForReceive)
}

func TestExecute_LostCompareAndSet(t *testing.T) {
	t.Run("rival agent wins", func(t *testing.T) {
		f := newFixture(domain.TripStatusUpcoming)
		f.bookings.rival = ptr.Ptr(agentY)

		_, err := f.claim(agentX, domain.RoleHandover)

		conflict, ok := domain.AsConflict(err)
		require.True(t, ok)
		assert.Equal(t, agentY, *conflict.OtherAgentID)
		assert.Empty(t, f.assignments.rows)
	})

	t.Run("own retry wins", func(t *testing.T) {
		f := newFixture(domain.TripStatusUpcoming)
		f.bookings.rival = ptr.Ptr(agentX)

		resp, err := f.claim(agentX, domain.RoleHandover)

		require.NoError(t, err)
		assert.Equal(t, domain.ClaimOutcomeClaimed, resp.Outcome)
		assert.Empty(t, f.publisher.events)
	})
}

func TestExecute_ConcurrentClaimsHaveSingleWinner(t *testing.T) {
	f := newFixture(domain.TripStatusUpcoming)
	for id := int64(20); id < 30; id++ {
		f.fleet.agents[id] = &fleetservice.Agent{ID: id, IsActive: true}
	}

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for id := int64(20); id < 30; id++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_, err := f.claim(id, domain.RoleHandover)
			errs <- err
		}(id)
	}
	wg.Wait()
	close(errs)

	winners := 0
	for err := range errs {
		if err == nil {
			winners++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrConflict)
	}
	assert.Equal(t, 1, winners)
	assert.Len(t, f.assignments.rows, 1)
	assert.Equal(t, *f.bookings.bookings[100].HandoverByAgentID, f.assignments.rows[0].AgentID)
}

func TestExecute_AgentChecks(t *testing.T) {
	f := newFixture(domain.TripStatusUpcoming)

	_, err := f.claim(404, domain.RoleHandover)
	assert.ErrorIs(t, err, ErrAgentNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.claim(13, domain.RoleHandover)
	assert.ErrorIs(t, err, ErrAgentInactive)

	f.fleet.degraded = true
	_, err = f.claim(404, domain.RoleHandover)
	assert.NoError(t, err)
}

func TestExecute_Errors(t *testing.T) {
	f := newFixture(domain.TripStatusUpcoming)

	_, err := f.uc.Execute(context.Background(), &Request{BookingNumber: 100, AgentID: agentX, Role: "driver"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.uc.Execute(context.Background(), &Request{BookingNumber: 404, AgentID: agentX, Role: "handover"})
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.Contains(t, f.metrics.claims, "handover:not_found")

	closed := newFixture(domain.TripStatusFinished)
	_, err = closed.claim(agentX, domain.RoleReceive)
	assert.ErrorIs(t, err, ErrBookingClosed)
	assert.Empty(t, closed.assignments.rows)
}
