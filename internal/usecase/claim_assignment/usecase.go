package claim_assignment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalDispatchService/internal/domain"
	assignmentRepo "github.com/m04kA/SMC-RentalDispatchService/internal/infra/storage/assignment"
	bookingRepo "github.com/m04kA/SMC-RentalDispatchService/internal/infra/storage/booking"
	fleetClient "github.com/m04kA/SMC-RentalDispatchService/internal/integrations/fleetservice"
	"github.com/m04kA/SMC-RentalDispatchService/internal/service/bookings/models"
	"github.com/m04kA/SMC-RentalDispatchService/pkg/txmanager"
)

// UseCase use case для взятия агентом роли handover или receive
type UseCase struct {
	bookingRepo    BookingRepository
	assignmentRepo AssignmentRepository
	fleetClient    FleetServiceClient
	txManager      TransactionManager
	publisher      EventPublisher
	metrics        Metrics
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	assignmentRepo AssignmentRepository,
	fleetClient FleetServiceClient,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		assignmentRepo: assignmentRepo,
		fleetClient:    fleetClient,
		txManager:      txManager,
		publisher:      publisher,
		metrics:        metrics,
		logger:         logger,
	}
}

// claimResult результат транзакции взятия роли
type claimResult struct {
	booking    *domain.Booking
	assignment *domain.AgentAssignment
	fresh      bool // роль взята этим вызовом, а не повтором
}

// Execute выполняет взятие роли.
// Флаг роли на бронировании меняется compare-and-set записью; повторное
// взятие той же роли тем же агентом идемпотентно, другим агентом - конфликт.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ClaimAssignment: booking=%d, agent=%d, role=%s", req.BookingNumber, req.AgentID, req.Role)

	role, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("ClaimAssignment: validation failed: %v", err)
		return nil, err
	}

	// 1. Проверяем агента (graceful degradation при недоступности FleetService)
	agent, err := uc.fleetClient.GetAgentWithGracefulDegradation(ctx, req.AgentID)
	switch {
	case errors.Is(err, fleetClient.ErrAgentNotFound):
		uc.logger.Warn("ClaimAssignment: agent id=%d not found", req.AgentID)
		return nil, ErrAgentNotFound
	case errors.Is(err, fleetClient.ErrServiceDegraded):
		uc.logger.Warn("ClaimAssignment: agent id=%d not verified: %v", req.AgentID, err)
	case err != nil:
		uc.logger.Error("ClaimAssignment: failed to get agent id=%d: %v", req.AgentID, err)
		return nil, fmt.Errorf("%w: failed to get agent: %v", ErrInternal, err)
	case !agent.IsActive:
		uc.logger.Warn("ClaimAssignment: agent id=%d is inactive", req.AgentID)
		return nil, ErrAgentInactive
	}

	// 2. Compare-and-set флага роли и строка назначения в одной транзакции
	var result claimResult
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		result, err = uc.claim(txCtx, req.BookingNumber, req.AgentID, role)
		return err
	})

	if err != nil {
		return nil, uc.mapError(req, role, err)
	}

	uc.metrics.IncRoleClaim(string(role), string(domain.ClaimOutcomeClaimed))

	if result.fresh {
		uc.publisher.Publish(domain.NewBookingEvent(domain.EventAgentAssigned, result.booking, result.booking.TripStatus,
			fmt.Sprintf("Agent #%d assigned for %s on booking #%d", req.AgentID, role, req.BookingNumber)))
		uc.logger.Info("ClaimAssignment: agent=%d claimed %s on booking=%d", req.AgentID, role, req.BookingNumber)
	} else {
		uc.logger.Info("ClaimAssignment: agent=%d already holds %s on booking=%d", req.AgentID, role, req.BookingNumber)
	}

	return &Response{
		Outcome:    domain.ClaimOutcomeClaimed,
		Booking:    models.FromDomainBooking(result.booking),
		Assignment: models.FromDomainAssignment(result.assignment),
	}, nil
}

func (uc *UseCase) claim(ctx context.Context, bookingNumber, agentID int64, role domain.Role) (claimResult, error) {
	booking, err := uc.getBooking(ctx, bookingNumber)
	if err != nil {
		return claimResult{}, err
	}

	if booking.TripStatus.IsTerminal() {
		return claimResult{}, ErrBookingClosed
	}

	// Роль уже занята: решаем без записи
	if holder, ok := booking.AgentFor(role); ok {
		return claimResult{booking: booking}, resolveHolder(holder, agentID)
	}

	claimed, err := uc.bookingRepo.ClaimRole(ctx, bookingNumber, role, agentID)
	if err != nil {
		return claimResult{}, fmt.Errorf("%w: failed to claim role: %v", ErrInternal, err)
	}

	// Флаг успели выставить между чтением и записью
	if !claimed {
		current, err := uc.getBooking(ctx, bookingNumber)
		if err != nil {
			return claimResult{}, err
		}
		holder, _ := current.AgentFor(role)
		return claimResult{booking: current}, resolveHolder(holder, agentID)
	}

	assignment, err := uc.recordAssignment(ctx, booking, agentID, role)
	if err != nil {
		return claimResult{}, err
	}

	updated, err := uc.getBooking(ctx, bookingNumber)
	if err != nil {
		return claimResult{}, err
	}

	return claimResult{booking: updated, assignment: assignment, fresh: true}, nil
}

// recordAssignment создаёт строку назначения. Агент, державший handover и взявший
// receive, остаётся на своей строке с assign_for_receive=true.
func (uc *UseCase) recordAssignment(ctx context.Context, booking *domain.Booking, agentID int64, role domain.Role) (*domain.AgentAssignment, error) {
	if role == domain.RoleReceive {
		if holder, ok := booking.AgentFor(domain.RoleHandover); ok && holder == agentID {
			existing, err := uc.assignmentRepo.GetByBookingAndAgent(ctx, booking.BookingNumber, agentID)
			switch {
			case err == nil:
				if err := uc.assignmentRepo.MarkReceive(ctx, existing.ID); err != nil {
					return nil, fmt.Errorf("%w: failed to update assignment: %v", ErrInternal, err)
				}
				existing.AssignForReceive = true
				return existing, nil
			case errors.Is(err, assignmentRepo.ErrAssignmentNotFound):
				uc.logger.Warn("ClaimAssignment: handover row for agent=%d on booking=%d is missing, creating receive row",
					agentID, booking.BookingNumber)
			default:
				return nil, fmt.Errorf("%w: failed to get assignment: %v", ErrInternal, err)
			}
		}
	}

	created, err := uc.assignmentRepo.Create(ctx, &domain.AgentAssignment{
		AgentID:       agentID,
		CarID:         booking.CarID,
		BookingNumber: booking.BookingNumber,
		AssignFor:     role,
		Status:        domain.AssignmentStatusAssign,
		TripStatus:    booking.TripStatus,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create assignment: %v", ErrInternal, err)
	}

	return created, nil
}

func (uc *UseCase) getBooking(ctx context.Context, bookingNumber int64) (*domain.Booking, error) {
	booking, err := uc.bookingRepo.GetByNumber(ctx, bookingNumber)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}
	return booking, nil
}

// resolveHolder: тот же агент - идемпотентный успех, другой - конфликт
func resolveHolder(holder, agentID int64) error {
	if holder == agentID {
		return nil
	}
	return &domain.ConflictError{OtherAgentID: &holder, Reason: "role is already assigned to another agent"}
}

func (uc *UseCase) mapError(req *Request, role domain.Role, err error) error {
	if conflict, ok := domain.AsConflict(err); ok {
		uc.metrics.IncRoleClaim(string(role), string(domain.ClaimOutcomeAlreadyAssigned))
		uc.logger.Warn("ClaimAssignment: booking=%d, agent=%d: %v", req.BookingNumber, req.AgentID, conflict)
		return conflict
	}

	switch {
	case errors.Is(err, ErrBookingNotFound):
		uc.metrics.IncRoleClaim(string(role), string(domain.ClaimOutcomeNotFound))
		uc.logger.Warn("ClaimAssignment: booking=%d not found", req.BookingNumber)
		return err
	case errors.Is(err, txmanager.ErrSerializationFailure):
		uc.logger.Warn("ClaimAssignment: booking=%d serialization failure: %v", req.BookingNumber, err)
		return ErrConcurrentUpdate
	case errors.Is(err, txmanager.ErrBeginTx), errors.Is(err, txmanager.ErrCommitTx):
		uc.logger.Error("ClaimAssignment: booking=%d transaction error: %v", req.BookingNumber, err)
		return fmt.Errorf("%w: transaction: %v", ErrInternal, err)
	case errors.Is(err, ErrInternal):
		uc.logger.Error("ClaimAssignment: booking=%d failed: %v", req.BookingNumber, err)
		return err
	default:
		return err
	}
}
