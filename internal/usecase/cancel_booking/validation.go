package cancel_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-RentalDispatchService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingNumber <= 0 {
		return fmt.Errorf("%w: bookingNumber must be positive", ErrInvalidInput)
	}

	if req.CancelDate != nil && req.CancelDate.IsZero() {
		return fmt.Errorf("%w: cancelDate is invalid", ErrInvalidInput)
	}

	if req.Reason != nil {
		reason := strings.TrimSpace(*req.Reason)
		if len(reason) > domain.MaxCancelReasonLength {
			return fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxCancelReasonLength)
		}
		if reason == "" {
			req.Reason = nil
		} else {
			req.Reason = &reason
		}
	}

	return nil
}
