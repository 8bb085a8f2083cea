package get_cancellation_policy

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalDispatchService/internal/service/cancellation/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	tiers []models.TierResponse
	err   error
}

func (f *fakeService) GetPolicy(_ context.Context, companyID int64) (*models.PolicyResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.PolicyResponse{CompanyID: companyID, Tiers: f.tiers}, nil
}

func serve(svc *fakeService, companyID string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/companies/"+companyID+"/cancellation-policy", nil)
	req = mux.SetURLVars(req, map[string]string{"companyId": companyID})
	NewHandler(svc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandle_Tiers(t *testing.T) {
	svc := &fakeService{tiers: []models.TierResponse{
		{HoursThreshold: 24, RatePercent: 50},
		{HoursThreshold: 72, RatePercent: 20},
	}}

	rec := serve(svc, "2")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"companyId":2,"tiers":[{"hours":24,"rate":50},{"hours":72,"rate":20}]}`, rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, "abc").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&fakeService{err: errors.New("boom")}, "2").Code)
}
