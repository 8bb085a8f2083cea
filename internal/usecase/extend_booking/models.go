package extend_booking

// Request модель запроса на продление бронирования
type Request struct {
	BookingNumber  int64   // Номер бронирования
	NewDays        int     // Количество добавляемых суток
	NewTotalAmount float64 // Новая итоговая сумма (заменяет текущую)
}
