package cancellation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RentalDispatchService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RentalDispatchService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RentalDispatchService/internal/service/cancellation/models"
)

// Service расчёт штрафов за отмену по политике компании
type Service struct {
	policyRepo  PolicyRepository
	bookingRepo BookingRepository
	latePolicy  domain.LateCancellationPolicy
	logger      Logger
}

// NewService создает новый экземпляр сервиса отмены
func NewService(
	policyRepo PolicyRepository,
	bookingRepo BookingRepository,
	latePolicy domain.LateCancellationPolicy,
	logger Logger,
) *Service {
	return &Service{
		policyRepo:  policyRepo,
		bookingRepo: bookingRepo,
		latePolicy:  latePolicy,
		logger:      logger,
	}
}

// FeeFor считает штраф для бронирования на момент cancelDate.
// Ошибка чтения политики не скрывается: без тарифов отмена была бы бесплатной.
func (s *Service) FeeFor(ctx context.Context, booking *domain.Booking, cancelDate time.Time) (domain.CancellationFee, error) {
	tiers, err := s.policyRepo.GetTiersByCompany(ctx, booking.CompanyID)
	if err != nil {
		s.logger.Error("FeeFor: failed to get policy for company=%d: %v", booking.CompanyID, err)
		return domain.CancellationFee{}, fmt.Errorf("%w: FeeFor - policy repository error: %v", ErrInternal, err)
	}

	if valid := ValidTiers(tiers); len(valid) != len(tiers) {
		s.logger.Warn("FeeFor: company=%d has %d malformed cancellation tiers, skipped",
			booking.CompanyID, len(tiers)-len(valid))
	}

	fee := Calculate(FeeInput{
		TotalBookingAmount: booking.TotalBookingAmount,
		BookingRate:        booking.BookingRent,
		Days:               booking.Days,
		PickupTime:         booking.FromTime,
		CancelTime:         cancelDate,
	}, tiers, s.latePolicy)

	return fee, nil
}

// Quote предварительный расчёт штрафа без отмены бронирования
func (s *Service) Quote(ctx context.Context, bookingNumber int64, cancelDate time.Time) (*models.QuoteResponse, error) {
	s.logger.Info("Quote: booking=%d, cancelDate=%s", bookingNumber, cancelDate.Format(time.RFC3339))

	if cancelDate.IsZero() {
		return nil, fmt.Errorf("%w: cancelDate is required", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByNumber(ctx, bookingNumber)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Quote: booking=%d not found", bookingNumber)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Quote: repository error for booking=%d: %v", bookingNumber, err)
		return nil, fmt.Errorf("%w: Quote - repository error: %v", ErrInternal, err)
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Quote: booking=%d in status %s cannot be cancelled", bookingNumber, booking.TripStatus)
		return nil, ErrCannotCancel
	}

	fee, err := s.FeeFor(ctx, booking, cancelDate)
	if err != nil {
		return nil, err
	}

	return models.FromFee(bookingNumber, cancelDate, fee), nil
}

// GetPolicy возвращает тарифы компании по возрастанию порога
func (s *Service) GetPolicy(ctx context.Context, companyID int64) (*models.PolicyResponse, error) {
	if companyID <= 0 {
		return nil, fmt.Errorf("%w: companyID must be positive", ErrInvalidInput)
	}

	tiers, err := s.policyRepo.GetTiersByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("GetPolicy: repository error for company=%d: %v", companyID, err)
		return nil, fmt.Errorf("%w: GetPolicy - repository error: %v", ErrInternal, err)
	}

	return models.FromTiers(companyID, ValidTiers(tiers)), nil
}
