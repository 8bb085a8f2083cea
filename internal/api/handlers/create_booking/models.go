package create_booking

import (
	"github.com/m04kA/SMC-RentalDispatchService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-RentalDispatchService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	UserID             int64    `json:"userId"`
	CarID              int64    `json:"carId"`
	FromDate           string   `json:"fromDate"` // "2026-05-01T10:00" или "2026-05-01"
	Days               int      `json:"days"`
	BookingRent        *float64 `json:"bookingRent,omitempty"`
	TotalBookingAmount *float64 `json:"totalBookingAmount,omitempty"`
	Deposit            float64  `json:"deposit"`
	VAT                float64  `json:"vat"`
	Coupon             float64  `json:"coupon"`
	DeliveryAddress    *string  `json:"deliveryAddress,omitempty"`
	DeliveryTime       *string  `json:"deliveryTime,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	fromDate, err := handlers.ParseDateTime(r.FromDate)
	if err != nil {
		return nil, err
	}

	deliveryTime, err := handlers.ParseOptionalDateTime(r.DeliveryTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:             r.UserID,
		CarID:              r.CarID,
		FromDate:           fromDate,
		Days:               r.Days,
		BookingRent:        r.BookingRent,
		TotalBookingAmount: r.TotalBookingAmount,
		Deposit:            r.Deposit,
		VAT:                r.VAT,
		Coupon:             r.Coupon,
		DeliveryAddress:    r.DeliveryAddress,
		DeliveryTime:       deliveryTime,
	}, nil
}
