package change_delivery

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalDispatchService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalDispatchService/internal/service/bookings"
)

const (
	msgInvalidBookingNumber = "некорректный номер бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректный формат времени подачи"
	msgNotFound             = "бронирование не найдено"
	msgInvalidData          = "некорректные данные подачи"
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

// Handle PATCH /api/v1/bookings/{bookingNumber}/delivery
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingNumber, err := handlers.PathInt64(r, "bookingNumber")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{number}/delivery - Invalid booking number: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingNumber)
		return
	}

	var req ChangeDeliveryRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{number}/delivery - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("PATCH /bookings/{number}/delivery - Invalid delivery time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.ChangeDeliveryDetails(r.Context(), bookingNumber, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{number}/delivery - Booking not found: booking_number=%d", bookingNumber)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{number}/delivery - Invalid data: booking_number=%d, error=%v", bookingNumber, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, bookings.ErrBookingClosed):
			h.logger.Warn("PATCH /bookings/{number}/delivery - Booking closed: booking_number=%d", bookingNumber)
			handlers.RespondError(w, http.StatusConflict, msgBookingClosed)

		case errors.Is(err, bookings.ErrConcurrentUpdate):
			h.logger.Warn("PATCH /bookings/{number}/delivery - Concurrent update: booking_number=%d", bookingNumber)
			handlers.RespondError(w, http.StatusConflict, msgConcurrentUpdate)

		default:
			h.logger.Error("PATCH /bookings/{number}/delivery - Failed to change delivery: booking_number=%d, error=%v",
				bookingNumber, err)
			handlers.RespondDomainError(w, err)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{number}/delivery - Delivery details changed: booking_number=%d", bookingNumber)
	handlers.RespondJSON(w, http.StatusOK, result)
}
