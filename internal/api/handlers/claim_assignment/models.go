package claim_assignment

import (
	"github.com/m04kA/SMC-RentalDispatchService/internal/service/bookings/models"
	claimAssignment "github.com/m04kA/SMC-RentalDispatchService/internal/usecase/claim_assignment"
)

// ClaimAssignmentRequest HTTP request model
type ClaimAssignmentRequest struct {
	AgentID int64  `json:"agentId"`
	Role    string `json:"role"` // handover | receive
}

// ClaimAssignmentResponse HTTP response model
type ClaimAssignmentResponse struct {
	Outcome    string                     `json:"outcome"`
	Booking    *models.BookingResponse    `json:"booking"`
	Assignment *models.AssignmentResponse `json:"assignment,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ClaimAssignmentRequest) ToUseCaseRequest(bookingNumber int64) *claimAssignment.Request {
	return &claimAssignment.Request{
		BookingNumber: bookingNumber,
		AgentID:       r.AgentID,
		Role:          r.Role,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *claimAssignment.Response) *ClaimAssignmentResponse {
	return &ClaimAssignmentResponse{
		Outcome:    string(resp.Outcome),
		Booking:    resp.Booking,
		Assignment: resp.Assignment,
	}
}
