package models

import (
	"time"

	"github.com/m04kA/SMC-RentalDispatchService/internal/domain"
)

// QuoteResponse предварительный расчёт штрафа за отмену
type QuoteResponse struct {
	BookingNumber      int64   `json:"bookingNumber"`
	CancelDate         string  `json:"cancelDate"`
	HoursBeforePickup  float64 `json:"hoursBeforePickup"`
	RatePercent        float64 `json:"ratePercent"`
	CancellationCharge float64 `json:"cancellationCharge"`
	RefundAmount       float64 `json:"refundAmount"`
	NeedsCharge        bool    `json:"needsCharge"`
}

// TierResponse тариф политики отмены
type TierResponse struct {
	HoursThreshold float64 `json:"hours"`
	RatePercent    float64 `json:"rate"`
}

// PolicyResponse политика отмены компании
type PolicyResponse struct {
	CompanyID int64          `json:"companyId"`
	Tiers     []TierResponse `json:"tiers"`
}

// FromFee конвертирует расчёт в DTO
func FromFee(bookingNumber int64, cancelDate time.Time, fee domain.CancellationFee) *QuoteResponse {
	return &QuoteResponse{
		BookingNumber:      bookingNumber,
		CancelDate:         cancelDate.Format(time.RFC3339),
		HoursBeforePickup:  fee.DiffHours,
		RatePercent:        fee.Rate,
		CancellationCharge: fee.Charge,
		RefundAmount:       fee.Refund,
		NeedsCharge:        fee.NeedsCharge,
	}
}

// FromTiers конвертирует тарифы в DTO
func FromTiers(companyID int64, tiers []domain.CancellationTier) *PolicyResponse {
	resp := &PolicyResponse{
		CompanyID: companyID,
		Tiers:     make([]TierResponse, len(tiers)),
	}
	for i, t := range tiers {
		resp.Tiers[i] = TierResponse{HoursThreshold: t.HoursThreshold, RatePercent: t.RatePercent}
	}
	return resp
}
