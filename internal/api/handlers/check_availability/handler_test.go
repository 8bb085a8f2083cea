package check_availability

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalDispatchService/internal/domain"
	"github.com/m04kA/SMC-RentalDispatchService/internal/service/availability"
	"github.com/m04kA/SMC-RentalDispatchService/internal/service/availability/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeResolver struct {
	carID  int64
	from   time.Time
	days   int
	result *models.Result
	err    error
}

func (f *fakeResolver) Check(_ context.Context, carID int64, fromDate time.Time, days int) (*models.Result, error) {
	f.carID, f.from, f.days = carID, fromDate, days
	return f.result, f.err
}

func serve(resolver *fakeResolver, carID, query string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cars/"+carID+"/availability?"+query, nil)
	req = mux.SetURLVars(req, map[string]string{"carId": carID})
	NewHandler(resolver, nopLogger{}).Handle(rec, req)
	return rec
}

var from = time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

func TestHandle_Available(t *testing.T) {
	resolver := &fakeResolver{result: &models.Result{
		CarID: 7, From: from, To: from.AddDate(0, 0, 3), Available: true,
	}}

	rec := serve(resolver, "7", "fromDate=2026-05-01&days=3")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), resolver.carID)
	assert.Equal(t, from, resolver.from)
	assert.Equal(t, 3, resolver.days)

	var body models.AvailabilityResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, body.Available)
	assert.Equal(t, "2026-05-04", body.ToDate)
	assert.Nil(t, body.Conflict)
}

func TestHandle_ConflictIsNotAnError(t *testing.T) {
	resolver := &fakeResolver{result: &models.Result{
		CarID: 7, From: from, To: from.AddDate(0, 0, 3),
		Conflict: &domain.Booking{
			BookingNumber: 1001,
			FromTime:      from.AddDate(0, 0, 2),
			ToTime:        from.AddDate(0, 0, 5),
			TripStatus:    domain.TripStatusUpcoming,
		},
	}}

	rec := serve(resolver, "7", "fromDate=2026-05-01&days=3")

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.AvailabilityResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.False(t, body.Available)
	require.NotNil(t, body.Conflict)
	assert.Equal(t, int64(1001), body.Conflict.BookingNumber)
	assert.Equal(t, "upcoming", body.Conflict.TripStatus)
}

func TestHandle_BadRequests(t *testing.T) {
	tests := []struct {
		name  string
		carID string
		query string
		err   error
	}{
		{name: "car id", carID: "abc", query: "fromDate=2026-05-01&days=3"},
		{name: "missing fromDate", carID: "7", query: "days=3"},
		{name: "bad date", carID: "7", query: "fromDate=01.05.2026&days=3"},
		{name: "days not a number", carID: "7", query: "fromDate=2026-05-01&days=three"},
		{name: "rejected window", carID: "7", query: "fromDate=2026-05-01&days=0", err: availability.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeResolver{err: tt.err}, tt.carID, tt.query)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandle_ResolverFailure(t *testing.T) {
	rec := serve(&fakeResolver{err: errors.New("connection reset")}, "7", "fromDate=2026-05-01&days=3")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
