package cancel_booking

import (
	"time"

	"github.com/m04kA/SMC-RentalDispatchService/internal/service/bookings/models"
)

// Request модель запроса на отмену бронирования
type Request struct {
	BookingNumber int64      // Номер бронирования
	CancelDate    *time.Time // Момент отмены; по умолчанию текущее время
	Reason        *string    // Причина отмены (опционально)
}

// Response модель ответа: отменённое бронирование и расчёт штрафа
type Response struct {
	Booking     *models.BookingResponse
	Rate        float64
	NeedsCharge bool
}
