package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-RentalDispatchService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.CarID <= 0 {
		return fmt.Errorf("%w: carID must be positive", ErrInvalidInput)
	}

	if req.FromDate.IsZero() {
		return fmt.Errorf("%w: fromDate is required", ErrInvalidInput)
	}

	if req.Days < domain.MinBookingDays || req.Days > domain.MaxBookingDays {
		return fmt.Errorf("%w: days must be in %d..%d", ErrInvalidInput, domain.MinBookingDays, domain.MaxBookingDays)
	}

	if req.BookingRent != nil && *req.BookingRent < 0 {
		return fmt.Errorf("%w: bookingRent must not be negative", ErrInvalidInput)
	}

	if req.TotalBookingAmount != nil && *req.TotalBookingAmount < 0 {
		return fmt.Errorf("%w: totalBookingAmount must not be negative", ErrInvalidInput)
	}

	if req.Deposit < 0 || req.VAT < 0 || req.Coupon < 0 {
		return fmt.Errorf("%w: deposit, vat and coupon must not be negative", ErrInvalidInput)
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

	return nil
}

// validateFromDate проверяет, что аренда начинается не раньше сегодняшнего дня
func validateFromDate(fromDate, now time.Time) error {
	dateOnly := time.Date(fromDate.Year(), fromDate.Month(), fromDate.Day(), 0, 0, 0, 0, fromDate.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, fromDate.Location())
	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}
	return nil
}
