package extend_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalDispatchService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RentalDispatchService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RentalDispatchService/internal/service/bookings/models"
	"github.com/m04kA/SMC-RentalDispatchService/pkg/txmanager"
)

const metricsOperation = "extend"

// UseCase use case для продления бронирования
type UseCase struct {
	bookingRepo BookingRepository
	resolver    AvailabilityResolver
	txManager   TransactionManager
	publisher   EventPublisher
	metrics     Metrics
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	resolver AvailabilityResolver,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		resolver:    resolver,
		txManager:   txManager,
		publisher:   publisher,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute продлевает бронирование в статусе inprogress.
// Расширенное окно проверяется без учёта самого бронирования;
// extended_days накапливается между вызовами.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.BookingResponse, error) {
	uc.logger.Info("ExtendBooking: booking=%d, newDays=%d, newTotal=%.2f",
		req.BookingNumber, req.NewDays, req.NewTotalAmount)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ExtendBooking: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Бронирование под блокировкой строки
		booking, err := uc.bookingRepo.GetByNumber(txCtx, req.BookingNumber)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if !booking.CanBeExtended() {
			uc.logger.Warn("ExtendBooking: booking=%d in status %s", req.BookingNumber, booking.TripStatus)
			return ErrNotInProgress
		}

		// 2. Блокировка автомобиля, как при создании
		if err := uc.bookingRepo.LockCar(txCtx, booking.CarID); err != nil {
			return fmt.Errorf("%w: failed to lock car: %v", ErrInternal, err)
		}

		// 3. Проверка расширенного окна без учёта самого бронирования
		newToTime := booking.ToTime.AddDate(0, 0, req.NewDays)
		check, err := uc.resolver.CheckExcluding(txCtx, booking.CarID, booking.FromTime, newToTime, booking.BookingNumber)
		if err != nil {
			return fmt.Errorf("%w: availability check: %v", ErrInternal, err)
		}
		if !check.Available {
			return &domain.ConflictError{Booking: check.Conflict, Reason: "extended window overlaps another booking"}
		}

		// 4. Условная запись
		extended, err := uc.bookingRepo.Extend(txCtx, booking.BookingNumber, bookingRepo.ExtendParams{
			CarID:     booking.CarID,
			FromTime:  booking.FromTime,
			NewToTime: newToTime,
			AddDays:   req.NewDays,
			NewTotal:  req.NewTotalAmount,
			Boundary:  uc.resolver.Boundary(),
		})
		if err != nil {
			if errors.Is(err, bookingRepo.ErrWindowOverlap) {
				return &domain.ConflictError{Reason: "extended window overlaps another booking"}
			}
			return fmt.Errorf("%w: failed to extend booking: %v", ErrInternal, err)
		}

		result = extended
		return nil
	})

	if err != nil {
		return nil, uc.mapError(req.BookingNumber, err)
	}

	uc.publisher.Publish(domain.NewBookingEvent(domain.EventBookingExtended, result, result.TripStatus,
		fmt.Sprintf("Booking #%d extended by %d days until %s", result.BookingNumber, req.NewDays,
			result.ToTime.Format(domain.DateFormat))))

	uc.logger.Info("ExtendBooking: booking=%d extended, extendedDays=%d", result.BookingNumber, result.ExtendedDays)
	return models.FromDomainBooking(result), nil
}

func (uc *UseCase) mapError(bookingNumber int64, err error) error {
	if conflict, ok := domain.AsConflict(err); ok {
		uc.metrics.IncAvailabilityConflict(metricsOperation)
		uc.logger.Warn("ExtendBooking: booking=%d %v", bookingNumber, conflict)
		return conflict
	}

	switch {
	case errors.Is(err, txmanager.ErrSerializationFailure):
		uc.logger.Warn("ExtendBooking: booking=%d serialization failure: %v", bookingNumber, err)
		return ErrConcurrentUpdate
	case errors.Is(err, txmanager.ErrBeginTx), errors.Is(err, txmanager.ErrCommitTx):
		uc.logger.Error("ExtendBooking: booking=%d transaction error: %v", bookingNumber, err)
		return fmt.Errorf("%w: transaction: %v", ErrInternal, err)
	case errors.Is(err, ErrInternal):
		uc.logger.Error("ExtendBooking: booking=%d failed: %v", bookingNumber, err)
		return err
	default:
		return err
	}
}
