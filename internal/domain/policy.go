package domain

import "sort"

// CancellationTier порог "часов до подачи" и процент удержания
type CancellationTier struct {
	CompanyID      int64
	HoursThreshold float64
	RatePercent    float64
}

// SortTiers сортирует тарифы по возрастанию порога (на месте).
// Выбор "первый подходящий" корректен только для отсортированного списка.
func SortTiers(tiers []CancellationTier) {
	sort.SliceStable(tiers, func(i, j int) bool {
		return tiers[i].HoursThreshold < tiers[j].HoursThreshold
	})
}

// LateCancellationPolicy правило для отмены после времени подачи (diff_hours < 0)
type LateCancellationPolicy string

const (
	// LateCancellationFirstTier отрицательная разница попадает в первый
	// (самый строгий) тариф, как и при обычном обходе списка
	LateCancellationFirstTier LateCancellationPolicy = "first_tier"
	// LateCancellationFullCharge удерживается 100% суммы
	LateCancellationFullCharge LateCancellationPolicy = "full_charge"
)

// CancellationFee результат расчёта штрафа за отмену
type CancellationFee struct {
	DiffHours   float64
	Rate        float64
	Charge      float64
	Refund      float64
	NeedsCharge bool
}
