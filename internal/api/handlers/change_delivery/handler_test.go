package change_delivery

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

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
	got *models.ChangeDeliveryRequest
	err error
}

func (f *fakeService) ChangeDeliveryDetails(_ context.Context, bookingNumber int64, req *models.ChangeDeliveryRequest) (*models.BookingResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{BookingNumber: bookingNumber, DeliveryAddress: req.DeliveryAddress}, nil
}

func serve(svc *fakeService, bookingNumber, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/"+bookingNumber+"/delivery", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"bookingNumber": bookingNumber})
	NewHandler(svc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandle_Changed(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, "100", `{"deliveryAddress":"Main st. 1","deliveryTime":"2026-05-01T09:30"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got.DeliveryAddress)
	assert.Equal(t, "Main st. 1", *svc.got.DeliveryAddress)
	require.NotNil(t, svc.got.DeliveryTime)
	assert.Equal(t, time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC), *svc.got.DeliveryTime)
}

func TestHandle_AddressOnly(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, "100", `{"deliveryAddress":"Main st. 1"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.got.DeliveryTime)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "bad body", body: `[]`, wantStatus: http.StatusBadRequest},
		{name: "bad time", body: `{"deliveryTime":"tomorrow"}`, wantStatus: http.StatusBadRequest},
		{name: "not found", body: `{}`, err: bookings.ErrBookingNotFound, wantStatus: http.StatusNotFound},
		{name: "invalid", body: `{}`, err: bookings.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "closed", body: `{}`, err: bookings.ErrBookingClosed, wantStatus: http.StatusConflict},
		{name: "concurrent update", body: `{}`, err: bookings.ErrConcurrentUpdate, wantStatus: http.StatusConflict},
		{name: "internal", body: `{}`, err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, "100", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
