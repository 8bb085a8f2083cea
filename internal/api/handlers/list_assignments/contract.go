package list_assignments

import (
	"context"

	"github.com/m04kA/SMC-RentalDispatchService/internal/service/bookings/models"
)

type BookingService interface {
	ListAssignments(ctx context.Context, bookingNumber int64) (*models.AssignmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
