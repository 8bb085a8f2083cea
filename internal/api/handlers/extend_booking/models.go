package extend_booking

import (
	extendBooking "github.com/m04kA/SMC-RentalDispatchService/internal/usecase/extend_booking"
)

// ExtendBookingRequest HTTP request model
type ExtendBookingRequest struct {
	NewDays        int     `json:"newDays"`
	NewTotalAmount float64 `json:"newTotalAmount"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ExtendBookingRequest) ToUseCaseRequest(bookingNumber int64) *extendBooking.Request {
	return &extendBooking.Request{
		BookingNumber:  bookingNumber,
		NewDays:        r.NewDays,
		NewTotalAmount: r.NewTotalAmount,
	}
}
