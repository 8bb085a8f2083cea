package models

import (
	"time"

	"github.com/m04kA/SMC-RentalDispatchService/internal/domain"
)

// Result результат проверки доступности автомобиля
type Result struct {
	CarID     int64
	From      time.Time
	To        time.Time
	Available bool
	Conflict  *domain.Booking // ближайшее пересекающееся бронирование, если окно занято
}

// AvailabilityResponse ответ API проверки доступности
type AvailabilityResponse struct {
	CarID     int64             `json:"carId"`
	FromDate  string            `json:"fromDate"`
	ToDate    string            `json:"toDate"`
	Available bool              `json:"available"`
	Conflict  *ConflictResponse `json:"conflict,omitempty"`
}

// ConflictResponse данные пересекающегося бронирования
type ConflictResponse struct {
	BookingNumber int64  `json:"bookingNumber"`
	FromTime      string `json:"fromTime"`
	ToTime        string `json:"toTime"`
	TripStatus    string `json:"tripStatus"`
}

// FromResult конвертирует результат в DTO
func FromResult(r *Result) *AvailabilityResponse {
	if r == nil {
		return nil
	}

	resp := &AvailabilityResponse{
		CarID:     r.CarID,
		FromDate:  r.From.Format(domain.DateFormat),
		ToDate:    r.To.Format(domain.DateFormat),
		Available: r.Available,
	}

	if r.Conflict != nil {
		resp.Conflict = &ConflictResponse{
			BookingNumber: r.Conflict.BookingNumber,
			FromTime:      r.Conflict.FromTime.Format(domain.DateTimeFormat),
			ToTime:        r.Conflict.ToTime.Format(domain.DateTimeFormat),
			TripStatus:    string(r.Conflict.TripStatus),
		}
	}

	return resp
}
