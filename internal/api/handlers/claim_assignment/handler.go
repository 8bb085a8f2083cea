package claim_assignment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalDispatchService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalDispatchService/internal/domain"
	claimAssignment "github.com/m04kA/SMC-RentalDispatchService/internal/usecase/claim_assignment"
)

const (
	msgInvalidBookingNumber = "некорректный номер бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgBookingNotFound      = "бронирование не найдено"
	msgAgentNotFound        = "агент не найден"
	msgAgentInactive        = "агент отключён"
	msgAlreadyAssigned      = "роль уже назначена другому агенту"
	msgBookingClosed        = "бронирование завершено или отменено"
	msgConcurrentUpdate     = "бронирование изменено параллельно, повторите запрос"
	msgInvalidData          = "некорректные данные назначения"
)

type Handler struct {
	useCase ClaimAssignmentUseCase
	logger  Logger
}

func NewHandler(useCase ClaimAssignmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingNumber}/assignments
// Повторное взятие роли тем же агентом возвращает 200 без изменений
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingNumber, err := handlers.PathInt64(r, "bookingNumber")
	if err != nil {
		h.logger.Warn("POST /bookings/{number}/assignments - Invalid booking number: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingNumber)
		return
	}

	var req ClaimAssignmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{number}/assignments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingNumber))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrConflict):
			h.logger.Warn("POST /bookings/{number}/assignments - Role already assigned: booking_number=%d, agent_id=%d, role=%s",
				bookingNumber, req.AgentID, req.Role)
			handlers.RespondConflict(w, msgAlreadyAssigned, err)

		case errors.Is(err, claimAssignment.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{number}/assignments - Booking not found: booking_number=%d", bookingNumber)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, claimAssignment.ErrAgentNotFound):
			h.logger.Warn("POST /bookings/{number}/assignments - Agent not found: agent_id=%d", req.AgentID)
			handlers.RespondNotFound(w, msgAgentNotFound)

		case errors.Is(err, claimAssignment.ErrAgentInactive):
			h.logger.Warn("POST /bookings/{number}/assignments - Agent inactive: agent_id=%d", req.AgentID)
			handlers.RespondBadRequest(w, msgAgentInactive)

		case errors.Is(err, claimAssignment.ErrBookingClosed):
			h.logger.Warn("POST /bookings/{number}/assignments - Booking closed: booking_number=%d", bookingNumber)
			handlers.RespondError(w, http.StatusConflict, msgBookingClosed)

		case errors.Is(err, claimAssignment.ErrConcurrentUpdate):
			h.logger.Warn("POST /bookings/{number}/assignments - Concurrent update: booking_number=%d", bookingNumber)
			handlers.RespondError(w, http.StatusConflict, msgConcurrentUpdate)

		case errors.Is(err, claimAssignment.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{number}/assignments - Invalid data: booking_number=%d, error=%v", bookingNumber, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /bookings/{number}/assignments - Failed to claim role: booking_number=%d, agent_id=%d, error=%v",
				bookingNumber, req.AgentID, err)
			handlers.RespondDomainError(w, err)
		}
		return
	}

	h.logger.Info("POST /bookings/{number}/assignments - Role claimed: booking_number=%d, agent_id=%d, role=%s",
		bookingNumber, req.AgentID, req.Role)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
