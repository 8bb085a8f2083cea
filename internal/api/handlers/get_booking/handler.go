package get_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalDispatchService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalDispatchService/internal/service/bookings"
)

const (
	msgInvalidBookingNumber = "некорректный номер бронирования"
	msgNotFound             = "бронирование не найдено"
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

// Handle GET /api/v1/bookings/{bookingNumber}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingNumber, err := handlers.PathInt64(r, "bookingNumber")
	if err != nil {
		h.logger.Warn("GET /bookings/{number} - Invalid booking number: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingNumber)
		return
	}

	booking, err := h.service.Get(r.Context(), bookingNumber)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{number} - Booking not found: booking_number=%d", bookingNumber)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /bookings/{number} - Failed to get booking: booking_number=%d, error=%v", bookingNumber, err)
			handlers.RespondDomainError(w, err)
		}
		return
	}

	h.logger.Info("GET /bookings/{number} - Booking retrieved successfully: booking_number=%d", bookingNumber)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
