package get_cancellation_quote

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-RentalDispatchService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalDispatchService/internal/service/cancellation"
)

const (
	msgInvalidBookingNumber = "некорректный номер бронирования"
	msgInvalidDate          = "некорректный формат даты отмены"
	msgNotFound             = "бронирование не найдено"
	msgCannotCancel         = "бронирование нельзя отменить в текущем статусе"
	msgInvalidData          = "некорректные параметры запроса"
)

type Handler struct {
	service CancellationService
	logger  Logger
	now     func() time.Time
}

func NewHandler(service CancellationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		now:     time.Now,
	}
}

// Handle GET /api/v1/bookings/{bookingNumber}/cancellation-quote
// Query params: cancelDate (optional, по умолчанию текущее время)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingNumber, err := handlers.PathInt64(r, "bookingNumber")
	if err != nil {
		h.logger.Warn("GET /bookings/{number}/cancellation-quote - Invalid booking number: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingNumber)
		return
	}

	cancelDate := h.now().UTC()
	if value := r.URL.Query().Get("cancelDate"); value != "" {
		cancelDate, err = handlers.ParseDateTime(value)
		if err != nil {
			h.logger.Warn("GET /bookings/{number}/cancellation-quote - Invalid cancel date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
	}

	quote, err := h.service.Quote(r.Context(), bookingNumber, cancelDate)
	if err != nil {
		switch {
		case errors.Is(err, cancellation.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{number}/cancellation-quote - Booking not found: booking_number=%d", bookingNumber)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cancellation.ErrCannotCancel):
			h.logger.Warn("GET /bookings/{number}/cancellation-quote - Cannot cancel: booking_number=%d", bookingNumber)
			handlers.RespondError(w, http.StatusConflict, msgCannotCancel)

		case errors.Is(err, cancellation.ErrInvalidInput):
			h.logger.Warn("GET /bookings/{number}/cancellation-quote - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("GET /bookings/{number}/cancellation-quote - Failed to quote: booking_number=%d, error=%v",
				bookingNumber, err)
			handlers.RespondDomainError(w, err)
		}
		return
	}

	h.logger.Info("GET /bookings/{number}/cancellation-quote - Quote calculated: booking_number=%d, rate=%.2f",
		bookingNumber, quote.RatePercent)
	handlers.RespondJSON(w, http.StatusOK, quote)
}
