package cancellation

import (
	"math"
	"time"

	"github.com/m04kA/SMC-RentalDispatchService/internal/domain"
)

// FeeInput данные бронирования для расчёта штрафа
type FeeInput struct {
	TotalBookingAmount float64
	BookingRate        float64 // стоимость суток
	Days               int
	PickupTime         time.Time
	CancelTime         time.Time
}

// Calculate считает штраф за отмену по тарифам компании.
//
// diff_hours = pickup - cancel (положительна при отмене до подачи).
// Тарифы обходятся по возрастанию порога, выигрывает первый с
// hours_threshold >= diff_hours: charge = total * rate / 100, refund = total - charge.
// Если ни один тариф не подошёл (или список пуст): charge = 0, refund = rate * days.
//
// Некорректные тарифы (отрицательный порог, процент вне 0..100) пропускаются.
// При diff_hours < 0 и LateCancellationFullCharge удерживается вся сумма.
func Calculate(in FeeInput, tiers []domain.CancellationTier, late domain.LateCancellationPolicy) domain.CancellationFee {
	diffHours := in.PickupTime.Sub(in.CancelTime).Hours()

	if diffHours < 0 && late == domain.LateCancellationFullCharge {
		return domain.CancellationFee{
			DiffHours:   diffHours,
			Rate:        100,
			Charge:      roundMoney(in.TotalBookingAmount),
			Refund:      0,
			NeedsCharge: true,
		}
	}

	for _, tier := range ValidTiers(tiers) {
		if tier.HoursThreshold >= diffHours {
			charge := roundMoney(in.TotalBookingAmount * tier.RatePercent / 100)
			return domain.CancellationFee{
				DiffHours:   diffHours,
				Rate:        tier.RatePercent,
				Charge:      charge,
				Refund:      roundMoney(in.TotalBookingAmount - charge),
				NeedsCharge: true,
			}
		}
	}

	return domain.CancellationFee{
		DiffHours:   diffHours,
		Rate:        0,
		Charge:      0,
		Refund:      roundMoney(in.BookingRate * float64(in.Days)),
		NeedsCharge: false,
	}
}

// ValidTiers возвращает отсортированную копию тарифов без некорректных записей
func ValidTiers(tiers []domain.CancellationTier) []domain.CancellationTier {
	out := make([]domain.CancellationTier, 0, len(tiers))
	for _, t := range tiers {
		if !validTier(t) {
			continue
		}
		out = append(out, t)
	}
	domain.SortTiers(out)
	return out
}

func validTier(t domain.CancellationTier) bool {
	if math.IsNaN(t.HoursThreshold) || math.IsNaN(t.RatePercent) {
		return false
	}
	return t.HoursThreshold >= 0 && t.RatePercent >= 0 && t.RatePercent <= 100
}

// roundMoney округление до копеек
func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
