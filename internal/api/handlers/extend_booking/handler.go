package extend_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalDispatchService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalDispatchService/internal/domain"
	extendBooking "github.com/m04kA/SMC-RentalDispatchService/internal/usecase/extend_booking"
)

const (
	msgInvalidBookingNumber = "некорректный номер бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgNotFound             = "бронирование не найдено"
	msgNotInProgress        = "продлить можно только активную аренду"
	msgWindowNotAvailable   = "автомобиль занят в период продления"
	msgConcurrentUpdate     = "бронирование изменено параллельно, повторите запрос"
	msgInvalidData          = "некорректные данные продления"
)

type Handler struct {
	useCase ExtendBookingUseCase
	logger  Logger
}

func NewHandler(useCase ExtendBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingNumber}/extend
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingNumber, err := handlers.PathInt64(r, "bookingNumber")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{number}/extend - Invalid booking number: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingNumber)
		return
	}

	var req ExtendBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{number}/extend - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingNumber))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrConflict):
			h.logger.Warn("PATCH /bookings/{number}/extend - Window not available: booking_number=%d, new_days=%d",
				bookingNumber, req.NewDays)
			handlers.RespondConflict(w, msgWindowNotAvailable, err)

		case errors.Is(err, extendBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{number}/extend - Booking not found: booking_number=%d", bookingNumber)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, extendBooking.ErrNotInProgress):
			h.logger.Warn("PATCH /bookings/{number}/extend - Booking not in progress: booking_number=%d", bookingNumber)
			handlers.RespondError(w, http.StatusConflict, msgNotInProgress)

		case errors.Is(err, extendBooking.ErrConcurrentUpdate):
			h.logger.Warn("PATCH /bookings/{number}/extend - Concurrent update: booking_number=%d", bookingNumber)
			handlers.RespondError(w, http.StatusConflict, msgConcurrentUpdate)

		case errors.Is(err, extendBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{number}/extend - Invalid data: booking_number=%d, error=%v", bookingNumber, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PATCH /bookings/{number}/extend - Failed to extend booking: booking_number=%d, error=%v",
				bookingNumber, err)
			handlers.RespondDomainError(w, err)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{number}/extend - Booking extended: booking_number=%d, extended_days=%d",
		bookingNumber, result.ExtendedDays)
	handlers.RespondJSON(w, http.StatusOK, result)
}
