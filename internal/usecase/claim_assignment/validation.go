package claim_assignment

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-RentalDispatchService/internal/domain"
)

// validateRequest валидирует входные данные запроса и возвращает роль
func validateRequest(req *Request) (domain.Role, error) {
	if req.BookingNumber <= 0 {
		return "", fmt.Errorf("%w: bookingNumber must be positive", ErrInvalidInput)
	}

	if req.AgentID <= 0 {
		return "", fmt.Errorf("%w: agentID must be positive", ErrInvalidInput)
	}

	role, err := domain.ParseRole(strings.TrimSpace(req.Role))
	if err != nil {
		return "", fmt.Errorf("%w: role must be handover or receive, got %q", ErrInvalidInput, req.Role)
	}

	return role, nil
}
