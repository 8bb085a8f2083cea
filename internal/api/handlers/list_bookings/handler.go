package list_bookings

import (
	"net/http"

	"github.com/m04kA/SMC-RentalDispatchService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalDispatchService/internal/domain"
)

const (
	msgInvalidParams = "некорректные параметры запроса"
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

// Handle GET /api/v1/bookings
// Query params: car_id, user_id, company_id, trip_status, agent_id, from_after, from_before,
// sort (поле, "-" для убывания), limit, page
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query, err := domain.ParseBookingQuery(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), query)
	if err != nil {
		h.logger.Error("GET /bookings - Failed to list bookings: error=%v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("GET /bookings - Bookings retrieved successfully: count=%d, page=%d", len(result.Bookings), result.Page)
	handlers.RespondJSON(w, http.StatusOK, result)
}
