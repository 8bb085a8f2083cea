package claim_assignment

import (
	"github.com/m04kA/SMC-RentalDispatchService/internal/domain"
	"github.com/m04kA/SMC-RentalDispatchService/internal/service/bookings/models"
)

// Request модель запроса на взятие роли агентом
type Request struct {
	BookingNumber int64  // Номер бронирования
	AgentID       int64  // ID агента
	Role          string // handover | receive
}

// Response модель ответа
type Response struct {
	Outcome    domain.ClaimOutcome
	Booking    *models.BookingResponse
	Assignment *models.AssignmentResponse // nil при повторном взятии той же роли
}
