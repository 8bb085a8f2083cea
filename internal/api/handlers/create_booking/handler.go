package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalDispatchService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalDispatchService/internal/domain"
	createBooking "github.com/m04kA/SMC-RentalDispatchService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD или YYYY-MM-DDTHH:MM"
	msgWindowNotAvailable = "автомобиль занят в выбранный период"
	msgCarNotFound        = "автомобиль не найден"
	msgCarInactive        = "автомобиль недоступен для аренды"
	msgUserNotFound       = "клиент не найден"
	msgUserBlocked        = "клиенту запрещено бронирование"
	msgDateInPast         = "дата начала аренды в прошлом"
	msgInvalidData        = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrConflict):
			h.logger.Warn("POST /bookings - Window not available: user_id=%d, car_id=%d", req.UserID, req.CarID)
			handlers.RespondConflict(w, msgWindowNotAvailable, err)

		case errors.Is(err, createBooking.ErrCarNotFound):
			h.logger.Warn("POST /bookings - Car not found: car_id=%d", req.CarID)
			handlers.RespondNotFound(w, msgCarNotFound)

		case errors.Is(err, createBooking.ErrCarInactive):
			h.logger.Warn("POST /bookings - Car inactive: car_id=%d", req.CarID)
			handlers.RespondBadRequest(w, msgCarInactive)

		case errors.Is(err, createBooking.ErrUserNotFound):
			h.logger.Warn("POST /bookings - User not found: user_id=%d", req.UserID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createBooking.ErrUserBlocked):
			h.logger.Warn("POST /bookings - User blocked: user_id=%d", req.UserID)
			handlers.RespondError(w, http.StatusForbidden, msgUserBlocked)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Date in the past: user_id=%d, from_date=%s", req.UserID, req.FromDate)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid data: user_id=%d, error=%v", req.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, car_id=%d, error=%v",
				req.UserID, req.CarID, err)
			handlers.RespondDomainError(w, err)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_number=%d, user_id=%d, car_id=%d",
		result.BookingNumber, req.UserID, req.CarID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
