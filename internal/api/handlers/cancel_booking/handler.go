package cancel_booking

import (
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/SMC-RentalDispatchService/internal/api/handlers"
	cancelBooking "github.com/m04kA/SMC-RentalDispatchService/internal/usecase/cancel_booking"
)

const (
	msgInvalidBookingNumber = "некорректный номер бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректный формат даты отмены"
	msgNotFound             = "бронирование не найдено"
	msgCannotCancel         = "бронирование нельзя отменить в текущем статусе"
	msgConcurrentUpdate     = "бронирование изменено параллельно, повторите запрос"
	msgInvalidData          = "некорректные данные отмены"
)

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingNumber}/cancel
// Тело запроса опционально
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingNumber, err := handlers.PathInt64(r, "bookingNumber")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{number}/cancel - Invalid booking number: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingNumber)
		return
	}

	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /bookings/{number}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingNumber)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{number}/cancel - Invalid cancel date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, cancelBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{number}/cancel - Booking not found: booking_number=%d", bookingNumber)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cancelBooking.ErrCannotCancel):
			h.logger.Warn("PATCH /bookings/{number}/cancel - Cannot cancel: booking_number=%d", bookingNumber)
			handlers.RespondError(w, http.StatusConflict, msgCannotCancel)

		case errors.Is(err, cancelBooking.ErrConcurrentUpdate):
			h.logger.Warn("PATCH /bookings/{number}/cancel - Concurrent update: booking_number=%d", bookingNumber)
			handlers.RespondError(w, http.StatusConflict, msgConcurrentUpdate)

		case errors.Is(err, cancelBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{number}/cancel - Invalid data: booking_number=%d, error=%v", bookingNumber, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PATCH /bookings/{number}/cancel - Failed to cancel booking: booking_number=%d, error=%v",
				bookingNumber, err)
			handlers.RespondDomainError(w, err)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{number}/cancel - Booking cancelled: booking_number=%d, rate=%.2f",
		bookingNumber, result.Rate)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
