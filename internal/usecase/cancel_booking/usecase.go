package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalDispatchService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RentalDispatchService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RentalDispatchService/internal/service/bookings/models"
	"github.com/m04kA/SMC-RentalDispatchService/pkg/txmanager"
)

// UseCase use case для отмены бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	fees         FeeCalculator
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	fees FeeCalculator,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		fees:         fees,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute отменяет бронирование из upcoming или inprogress.
// Штраф и возврат считаются по тарифам компании и сохраняются в бронировании.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%d", req.BookingNumber)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return nil, err
	}

	cancelDate := uc.timeProvider.Now()
	if req.CancelDate != nil {
		cancelDate = *req.CancelDate
	}

	var (
		result   *domain.Booking
		previous domain.TripStatus
		fee      domain.CancellationFee
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByNumber(txCtx, req.BookingNumber)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if !booking.CanBeCancelled() {
			uc.logger.Warn("CancelBooking: booking=%d in status %s cannot be cancelled", req.BookingNumber, booking.TripStatus)
			return ErrCannotCancel
		}
		previous = booking.TripStatus

		fee, err = uc.fees.FeeFor(txCtx, booking, cancelDate)
		if err != nil {
			return fmt.Errorf("%w: failed to calculate fee: %v", ErrInternal, err)
		}

		cancelled, err := uc.bookingRepo.Cancel(txCtx, req.BookingNumber, bookingRepo.CancelParams{
			CancelDate:         cancelDate,
			Reason:             req.Reason,
			CancellationCharge: fee.Charge,
			RefundAmount:       fee.Refund,
		})
		if err != nil {
			if errors.Is(err, bookingRepo.ErrStatusMismatch) {
				return ErrCannotCancel
			}
			return fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
		}

		result = cancelled
		return nil
	})

	if err != nil {
		return nil, uc.mapError(req.BookingNumber, err)
	}

	uc.metrics.IncStatusTransition(string(previous), string(domain.TripStatusCancelled))
	uc.publisher.Publish(domain.NewBookingEvent(domain.EventBookingCancelled, result, previous,
		fmt.Sprintf("Booking #%d cancelled, refund %.2f", result.BookingNumber, fee.Refund)))

	uc.logger.Info("CancelBooking: booking=%d cancelled, charge=%.2f, refund=%.2f",
		result.BookingNumber, fee.Charge, fee.Refund)

	return &Response{
		Booking:     models.FromDomainBooking(result),
		Rate:        fee.Rate,
		NeedsCharge: fee.NeedsCharge,
	}, nil
}

func (uc *UseCase) mapError(bookingNumber int64, err error) error {
	switch {
	case errors.Is(err, txmanager.ErrSerializationFailure):
		uc.logger.Warn("CancelBooking: booking=%d serialization failure: %v", bookingNumber, err)
		return ErrConcurrentUpdate
	case errors.Is(err, txmanager.ErrBeginTx), errors.Is(err, txmanager.ErrCommitTx):
		uc.logger.Error("CancelBooking: booking=%d transaction error: %v", bookingNumber, err)
		return fmt.Errorf("%w: transaction: %v", ErrInternal, err)
	case errors.Is(err, ErrInternal):
		uc.logger.Error("CancelBooking: booking=%d failed: %v", bookingNumber, err)
		return err
	default:
		return err
	}
}
