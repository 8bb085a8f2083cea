package check_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalDispatchService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalDispatchService/internal/service/availability"
	"github.com/m04kA/SMC-RentalDispatchService/internal/service/availability/models"
)

const (
	msgInvalidCarID  = "некорректный ID автомобиля"
	msgInvalidParams = "некорректные параметры запроса, ожидаются fromDate и days"
	msgInvalidWindow = "некорректный период аренды"
)

type Handler struct {
	resolver AvailabilityResolver
	logger   Logger
}

func NewHandler(resolver AvailabilityResolver, logger Logger) *Handler {
	return &Handler{
		resolver: resolver,
		logger:   logger,
	}
}

// Handle GET /api/v1/cars/{carId}/availability
// Query params: fromDate (required), days (required)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	carID, err := handlers.PathInt64(r, "carId")
	if err != nil {
		h.logger.Warn("GET /cars/{id}/availability - Invalid car ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCarID)
		return
	}

	query, err := ParseQuery(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /cars/{id}/availability - Invalid query: car_id=%d, error=%v", carID, err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.resolver.Check(r.Context(), carID, query.FromDate, query.Days)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("GET /cars/{id}/availability - Invalid window: car_id=%d, error=%v", carID, err)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		default:
			h.logger.Error("GET /cars/{id}/availability - Failed to check availability: car_id=%d, error=%v", carID, err)
			handlers.RespondDomainError(w, err)
		}
		return
	}

	h.logger.Info("GET /cars/{id}/availability - Checked: car_id=%d, available=%t", carID, result.Available)
	handlers.RespondJSON(w, http.StatusOK, models.FromResult(result))
}
