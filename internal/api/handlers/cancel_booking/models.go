package cancel_booking

import (
	"github.com/m04kA/SMC-RentalDispatchService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalDispatchService/internal/service/bookings/models"
	cancelBooking "github.com/m04kA/SMC-RentalDispatchService/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	CancelDate *string `json:"cancelDate,omitempty"` // по умолчанию текущее время
	Reason     *string `json:"reason,omitempty"`
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	*models.BookingResponse
	RatePercent float64 `json:"ratePercent"`
	NeedsCharge bool    `json:"needsCharge"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CancelBookingRequest) ToUseCaseRequest(bookingNumber int64) (*cancelBooking.Request, error) {
	cancelDate, err := handlers.ParseOptionalDateTime(r.CancelDate)
	if err != nil {
		return nil, err
	}

	return &cancelBooking.Request{
		BookingNumber: bookingNumber,
		CancelDate:    cancelDate,
		Reason:        r.Reason,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	return &CancelBookingResponse{
		BookingResponse: resp.Booking,
		RatePercent:     resp.Rate,
		NeedsCharge:     resp.NeedsCharge,
	}
}
