package list_assignments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalDispatchService/internal/service/bookings"
	"github.com/m04kA/SMC-RentalDispatchService/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	err error
}

func (f *fakeService) ListAssignments(_ context.Context, bookingNumber int64) (*models.AssignmentListResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.AssignmentListResponse{Assignments: []models.AssignmentResponse{
		{AgentID: 9, BookingNumber: bookingNumber, AssignFor: "handover", AssignForReceive: true, Status: "handover"},
	}}, nil
}

func serve(svc *fakeService, bookingNumber string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/"+bookingNumber+"/assignments", nil)
	req = mux.SetURLVars(req, map[string]string{"bookingNumber": bookingNumber})
	NewHandler(svc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandle_Listed(t *testing.T) {
	rec := serve(&fakeService{}, "100")

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.AssignmentListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Assignments, 1)
	assert.Equal(t, int64(9), body.Assignments[0].AgentID)
	assert.True(t, body.Assignments[0].AssignForReceive)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name          string
		bookingNumber string
		err           error
		wantStatus    int
	}{
		{name: "bad number", bookingNumber: "x", wantStatus: http.StatusBadRequest},
		{name: "not found", bookingNumber: "100", err: bookings.ErrBookingNotFound, wantStatus: http.StatusNotFound},
		{name: "internal", bookingNumber: "100", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, tt.bookingNumber)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
