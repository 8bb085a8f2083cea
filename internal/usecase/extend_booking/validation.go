package extend_booking

import (
	"fmt"

	"github.com/m04kA/SMC-RentalDispatchService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingNumber <= 0 {
		return fmt.Errorf("%w: bookingNumber must be positive", ErrInvalidInput)
	}

	if req.NewDays < domain.MinBookingDays || req.NewDays > domain.MaxExtensionDays {
		return fmt.Errorf("%w: newDays must be in %d..%d", ErrInvalidInput, domain.MinBookingDays, domain.MaxExtensionDays)
	}

	if req.NewTotalAmount < 0 {
		return fmt.Errorf("%w: newTotalAmount must not be negative", ErrInvalidInput)
	}

	return nil
}
