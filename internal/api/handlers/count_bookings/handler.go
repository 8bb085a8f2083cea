package count_bookings

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

// Handle GET /api/v1/bookings/count
// Принимает те же фильтры, что и список; sort, limit и page не влияют на результат
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query, err := domain.ParseBookingQuery(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /bookings/count - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.Count(r.Context(), query)
	if err != nil {
		h.logger.Error("GET /bookings/count - Failed to count bookings: error=%v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("GET /bookings/count - Bookings counted: total=%d", result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
