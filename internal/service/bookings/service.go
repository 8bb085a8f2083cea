package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-RentalDispatchService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RentalDispatchService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RentalDispatchService/internal/service/bookings/models"
	"github.com/m04kA/SMC-RentalDispatchService/pkg/txmanager"
)

// Service сервис жизненного цикла бронирований: чтение, списки,
// переходы статуса и изменение данных подачи
type Service struct {
	bookingRepo    BookingRepository
	assignmentRepo AssignmentRepository
	txManager      TransactionManager
	publisher      EventPublisher
	metrics        Metrics
	logger         Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	assignmentRepo AssignmentRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:    bookingRepo,
		assignmentRepo: assignmentRepo,
		txManager:      txManager,
		publisher:      publisher,
		metrics:        metrics,
		logger:         logger,
	}
}

// Get получает бронирование по номеру
func (s *Service) Get(ctx context.Context, bookingNumber int64) (*models.BookingResponse, error) {
	booking, err := s.bookingRepo.GetByNumber(ctx, bookingNumber)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Get: booking=%d not found", bookingNumber)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Get: repository error for booking=%d: %v", bookingNumber, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// List возвращает страницу бронирований.
// Count и List независимы: между вызовами данные могут измениться.
func (s *Service) List(ctx context.Context, q domain.BookingQuery) (*models.BookingListResponse, error) {
	bookings, err := s.bookingRepo.List(ctx, q)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d bookings (sort=%s desc=%t limit=%d page=%d)",
		len(bookings), q.SortBy, q.SortDesc, q.Limit, q.Page)
	return models.FromDomainBookingList(bookings, q), nil
}

// Count возвращает количество бронирований по фильтрам запроса
func (s *Service) Count(ctx context.Context, q domain.BookingQuery) (*models.CountResponse, error) {
	total, err := s.bookingRepo.Count(ctx, q)
	if err != nil {
		s.logger.Error("Count: repository error: %v", err)
		return nil, fmt.Errorf("%w: Count - repository error: %v", ErrInternal, err)
	}

	return &models.CountResponse{Total: total}, nil
}

// ListAssignments возвращает строки назначений агентов бронирования
func (s *Service) ListAssignments(ctx context.Context, bookingNumber int64) (*models.AssignmentListResponse, error) {
	if _, err := s.Get(ctx, bookingNumber); err != nil {
		return nil, err
	}

	assignments, err := s.assignmentRepo.ListByBooking(ctx, bookingNumber)
	if err != nil {
		s.logger.Error("ListAssignments: repository error for booking=%d: %v", bookingNumber, err)
		return nil, fmt.Errorf("%w: ListAssignments - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAssignments(assignments), nil
}

// Advance переводит бронирование в следующий статус по графу переходов.
// В той же транзакции синхронизирует trip_status назначений и прогресс агента.
// Отмена выполняется отдельной операцией (с датой, причиной и штрафом).
func (s *Service) Advance(ctx context.Context, bookingNumber int64, req *models.AdvanceStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("Advance: booking=%d, status=%s", bookingNumber, req.Status)

	next, err := domain.ParseTripStatus(strings.TrimSpace(req.Status))
	if err != nil {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}
	if next == domain.TripStatusCancelled {
		return nil, fmt.Errorf("%w: use the cancel operation to cancel a booking", ErrInvalidInput)
	}

	var updated *domain.Booking
	var previous domain.TripStatus

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := s.bookingRepo.GetByNumber(txCtx, bookingNumber)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Advance - get booking: %v", ErrInternal, err)
		}

		if !current.TripStatus.CanTransitionTo(next) {
			s.logger.Warn("Advance: booking=%d transition %s -> %s rejected", bookingNumber, current.TripStatus, next)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.TripStatus, next)
		}
		previous = current.TripStatus

		updated, err = s.bookingRepo.UpdateStatus(txCtx, bookingNumber, current.TripStatus, next)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrStatusMismatch) {
				return ErrConcurrentUpdate
			}
			return fmt.Errorf("%w: Advance - update status: %v", ErrInternal, err)
		}

		if _, err := s.assignmentRepo.SyncTripStatus(txCtx, bookingNumber, next); err != nil {
			return fmt.Errorf("%w: Advance - sync assignments: %v", ErrInternal, err)
		}

		if role, status, ok := domain.AssignmentStatusOnEnter(next); ok {
			if err := s.assignmentRepo.UpdateStatusForRole(txCtx, bookingNumber, role, status); err != nil {
				return fmt.Errorf("%w: Advance - update %s assignment: %v", ErrInternal, role, err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, s.mapTxError("Advance", bookingNumber, err)
	}

	s.metrics.IncStatusTransition(string(previous), string(next))
	s.publisher.Publish(domain.NewBookingEvent(domain.EventBookingStatusChanged, updated, previous,
		fmt.Sprintf("Booking #%d: %s -> %s", bookingNumber, previous, next)))

	s.logger.Info("Advance: booking=%d moved %s -> %s", bookingNumber, previous, next)
	return models.FromDomainBooking(updated), nil
}

// ChangeDeliveryDetails меняет адрес и/или время подачи без изменения trip_status
func (s *Service) ChangeDeliveryDetails(ctx context.Context, bookingNumber int64, req *models.ChangeDeliveryRequest) (*models.BookingResponse, error) {
	s.logger.Info("ChangeDeliveryDetails: booking=%d", bookingNumber)

	if err := validateDeliveryRequest(req); err != nil {
		s.logger.Warn("ChangeDeliveryDetails: validation failed: %v", err)
		return nil, err
	}

	updated, err := s.bookingRepo.UpdateDelivery(ctx, bookingNumber, req.DeliveryAddress, req.DeliveryTime)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrStatusMismatch) {
			// строки нет или бронирование уже закрыто
			if _, getErr := s.bookingRepo.GetByNumber(ctx, bookingNumber); errors.Is(getErr, bookingRepo.ErrBookingNotFound) {
				return nil, ErrBookingNotFound
			}
			s.logger.Warn("ChangeDeliveryDetails: booking=%d is closed", bookingNumber)
			return nil, ErrBookingClosed
		}
		s.logger.Error("ChangeDeliveryDetails: repository error for booking=%d: %v", bookingNumber, err)
		return nil, fmt.Errorf("%w: ChangeDeliveryDetails - repository error: %v", ErrInternal, err)
	}

	s.publisher.Publish(domain.NewBookingEvent(domain.EventBookingDeliveryChanged, updated, updated.TripStatus,
		fmt.Sprintf("Booking #%d: delivery details changed", bookingNumber)))

	return models.FromDomainBooking(updated), nil
}

// mapTxError переводит ошибки менеджера транзакций в ошибки сервиса
func (s *Service) mapTxError(op string, bookingNumber int64, err error) error {
	switch {
	case errors.Is(err, txmanager.ErrSerializationFailure):
		s.logger.Warn("%s: booking=%d serialization failure: %v", op, bookingNumber, err)
		return ErrConcurrentUpdate
	case errors.Is(err, txmanager.ErrBeginTx), errors.Is(err, txmanager.ErrCommitTx):
		s.logger.Error("%s: booking=%d transaction error: %v", op, bookingNumber, err)
		return fmt.Errorf("%w: %s - transaction: %v", ErrInternal, op, err)
	case errors.Is(err, ErrInternal):
		s.logger.Error("%s: booking=%d failed: %v", op, bookingNumber, err)
		return err
	default:
		return err
	}
}

func validateDeliveryRequest(req *models.ChangeDeliveryRequest) error {
	if req.DeliveryAddress == nil && req.DeliveryTime == nil {
		return fmt.Errorf("%w: deliveryAddress or deliveryTime is required", ErrInvalidInput)
	}
	if req.DeliveryAddress != nil {
		address := strings.TrimSpace(*req.DeliveryAddress)
		if address == "" {
			return fmt.Errorf("%w: deliveryAddress must not be empty", ErrInvalidInput)
		}
		if len(address) > domain.MaxDeliveryAddressLength {
			return fmt.Errorf("%w: deliveryAddress exceeds %d characters", ErrInvalidInput, domain.MaxDeliveryAddressLength)
		}
		req.DeliveryAddress = &address
	}
	if req.DeliveryTime != nil && req.DeliveryTime.IsZero() {
		return fmt.Errorf("%w: deliveryTime is invalid", ErrInvalidInput)
	}
	return nil
}
