package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RentalDispatchService/internal/domain"
	"github.com/m04kA/SMC-RentalDispatchService/internal/service/availability/models"
)

// Resolver определяет, свободен ли автомобиль на окно аренды.
// Окно: [from, from + days]. Пересечение считается по boundary policy
// только с активными бронированиями (не cancelled и не finished).
//
// Resolver только читает. Атомарность создания и продления обеспечивает
// условная запись в репозитории; Resolver используется для ответа клиенту
// и для описания конфликта ("выберите другие даты").
type Resolver struct {
	bookingRepo BookingRepository
	boundary    domain.BoundaryPolicy
	logger      Logger
}

// NewResolver создает новый экземпляр сервиса доступности
func NewResolver(bookingRepo BookingRepository, boundary domain.BoundaryPolicy, logger Logger) *Resolver {
	return &Resolver{
		bookingRepo: bookingRepo,
		boundary:    boundary,
		logger:      logger,
	}
}

// Boundary текущая политика границ окна
func (r *Resolver) Boundary() domain.BoundaryPolicy {
	return r.boundary
}

// Check проверяет окно from_date + days для автомобиля
func (r *Resolver) Check(ctx context.Context, carID int64, fromDate time.Time, days int) (*models.Result, error) {
	if carID <= 0 {
		return nil, fmt.Errorf("%w: carID must be positive", ErrInvalidInput)
	}
	if fromDate.IsZero() {
		return nil, fmt.Errorf("%w: fromDate is required", ErrInvalidInput)
	}
	if days < domain.MinBookingDays || days > domain.MaxBookingDays {
		return nil, fmt.Errorf("%w: days must be in %d..%d", ErrInvalidInput, domain.MinBookingDays, domain.MaxBookingDays)
	}

	return r.check(ctx, carID, fromDate, domain.WindowEnd(fromDate, days), nil)
}

// CheckExcluding проверяет окно [from, to], не учитывая бронирование excludeNumber.
// Используется при продлении: собственная запись бронирования не конфликт.
func (r *Resolver) CheckExcluding(ctx context.Context, carID int64, from, to time.Time, excludeNumber int64) (*models.Result, error) {
	if !to.After(from) {
		return nil, fmt.Errorf("%w: window end must be after start", ErrInvalidInput)
	}
	return r.check(ctx, carID, from, to, &excludeNumber)
}

func (r *Resolver) check(ctx context.Context, carID int64, from, to time.Time, exclude *int64) (*models.Result, error) {
	overlapping, err := r.bookingRepo.FindOverlapping(ctx, carID, from, to, exclude, r.boundary)
	if err != nil {
		r.logger.Error("Availability: repository error for car=%d: %v", carID, err)
		return nil, fmt.Errorf("%w: Check - repository error: %v", ErrInternal, err)
	}

	result := &models.Result{
		CarID:     carID,
		From:      from,
		To:        to,
		Available: len(overlapping) == 0,
	}

	if !result.Available {
		result.Conflict = overlapping[0]
		r.logger.Info("Availability: car=%d busy %s - %s, conflicts with booking=%d",
			carID, from.Format(domain.DateTimeFormat), to.Format(domain.DateTimeFormat), result.Conflict.BookingNumber)
	}

	return result, nil
}
