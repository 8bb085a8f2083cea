package get_cancellation_policy

import (
	"net/http"

	"github.com/m04kA/SMC-RentalDispatchService/internal/api/handlers"
)

const (
	msgInvalidCompanyID = "некорректный ID компании"
)

type Handler struct {
	service CancellationService
	logger  Logger
}

func NewHandler(service CancellationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/companies/{companyId}/cancellation-policy
// Компания без тарифов получает пустой список
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	companyID, err := handlers.PathInt64(r, "companyId")
	if err != nil {
		h.logger.Warn("GET /companies/{id}/cancellation-policy - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	policy, err := h.service.GetPolicy(r.Context(), companyID)
	if err != nil {
		h.logger.Error("GET /companies/{id}/cancellation-policy - Failed to get policy: company_id=%d, error=%v",
			companyID, err)
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("GET /companies/{id}/cancellation-policy - Policy retrieved: company_id=%d, tiers=%d",
		companyID, len(policy.Tiers))
	handlers.RespondJSON(w, http.StatusOK, policy)
}
