package list_bookings

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalDispatchService/internal/domain"
	"github.com/m04kA/SMC-RentalDispatchService/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	got   *domain.BookingQuery
	err   error
	calls int
}

func (f *fakeService) List(_ context.Context, q domain.BookingQuery) (*models.BookingListResponse, error) {
	f.calls++
	f.got = &q
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingListResponse{Bookings: []models.BookingResponse{}, Limit: q.Limit, Page: q.Page}, nil
}

func serve(svc *fakeService, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_TypedFilters(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, "/api/v1/bookings?car_id=7&trip_status=upcoming,inprogress&sort=-from_time&limit=50&page=2")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got)
	assert.Equal(t, int64(7), *svc.got.CarID)
	assert.Equal(t, []domain.TripStatus{domain.TripStatusUpcoming, domain.TripStatusInProgress}, svc.got.TripStatuses)
	assert.Equal(t, domain.SortByFromTime, svc.got.SortBy)
	assert.True(t, svc.got.SortDesc)
	assert.Equal(t, 50, svc.got.Limit)
	assert.Equal(t, 50, svc.got.Offset())
}

func TestHandle_RejectsUnknownFilter(t *testing.T) {
	svc := &fakeService{}

	for _, target := range []string{
		"/api/v1/bookings?password=1",
		"/api/v1/bookings?sort=user_id",
		"/api/v1/bookings?limit=1000",
		"/api/v1/bookings?trip_status=lost",
	} {
		rec := serve(svc, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
	assert.Zero(t, svc.calls)
}

func TestHandle_ServiceError(t *testing.T) {
	rec := serve(&fakeService{err: errors.New("db down")}, "/api/v1/bookings")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
