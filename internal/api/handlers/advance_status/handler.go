package advance_status

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalDispatchService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalDispatchService/internal/service/bookings"
	"github.com/m04kA/SMC-RentalDispatchService/internal/service/bookings/models"
)

const (
	msgInvalidBookingNumber = "некорректный номер бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgNotFound             = "бронирование не найдено"
	msgInvalidStatus        = "некорректный статус"
	msgInvalidTransition    = "переход в указанный статус недопустим"
	msgBookingClosed        = "бронирование завершено или отменено"
	msgConcurrentUpdate     = "бронирование изменено параллельно, повторите запрос"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingNumber}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingNumber, err := handlers.PathInt64(r, "bookingNumber")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{number}/status - Invalid booking number: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingNumber)
		return
	}

	var req models.AdvanceStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{number}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Advance(r.Context(), bookingNumber, &req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{number}/status - Booking not found: booking_number=%d", bookingNumber)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{number}/status - Invalid status: booking_number=%d, status=%q",
				bookingNumber, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, bookings.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/{number}/status - Invalid transition: booking_number=%d, status=%s",
				bookingNumber, req.Status)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		case errors.Is(err, bookings.ErrBookingClosed):
			h.logger.Warn("PATCH /bookings/{number}/status - Booking closed: booking_number=%d", bookingNumber)
			handlers.RespondError(w, http.StatusConflict, msgBookingClosed)

		case errors.Is(err, bookings.ErrConcurrentUpdate):
			h.logger.Warn("PATCH /bookings/{number}/status - Concurrent update: booking_number=%d", bookingNumber)
			handlers.RespondError(w, http.StatusConflict, msgConcurrentUpdate)

		default:
			h.logger.Error("PATCH /bookings/{number}/status - Failed to advance status: booking_number=%d, error=%v",
				bookingNumber, err)
			handlers.RespondDomainError(w, err)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{number}/status - Status changed: booking_number=%d, status=%s",
		bookingNumber, result.TripStatus)
	handlers.RespondJSON(w, http.StatusOK, result)
}
