package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	UserID   int64     // ID клиента
	CarID    int64     // ID автомобиля
	FromDate time.Time // Начало аренды
	Days     int       // Количество суток

	BookingRent        *float64 // Стоимость суток; по умолчанию тариф автомобиля
	TotalBookingAmount *float64 // Итоговая сумма; по умолчанию BookingRent * Days
	Deposit            float64
	VAT                float64
	Coupon             float64

	DeliveryAddress *string    // Адрес подачи (опционально)
	DeliveryTime    *time.Time // Время подачи (опционально)
}
