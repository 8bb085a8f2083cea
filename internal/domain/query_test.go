package domain

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBookingQuery_Defaults(t *testing.T) {
	q, err := ParseBookingQuery(url.Values{})
	require.NoError(t, err)

	assert.Equal(t, SortByBookingNumber, q.SortBy)
	assert.True(t, q.SortDesc)
	assert.Equal(t, DefaultPageLimit, q.Limit)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 0, q.Offset())
}

func TestParseBookingQuery_AllFilters(t *testing.T) {
	values, err := url.ParseQuery("car_id=7&user_id=3&company_id=2&agent_id=11&trip_status=upcoming,inprogress" +
		"&from_after=2026-05-01&from_before=2026-05-31&sort=from_time&limit=50&page=3")
	require.NoError(t, err)

	q, err := ParseBookingQuery(values)
	require.NoError(t, err)

	assert.Equal(t, int64(7), *q.CarID)
	assert.Equal(t, int64(3), *q.UserID)
	assert.Equal(t, int64(2), *q.CompanyID)
	assert.Equal(t, int64(11), *q.AgentID)
	assert.Equal(t, []TripStatus{TripStatusUpcoming, TripStatusInProgress}, q.TripStatuses)
	assert.Equal(t, SortByFromTime, q.SortBy)
	assert.False(t, q.SortDesc)
	assert.Equal(t, 100, q.Offset())
}

func TestParseBookingQuery_Rejects(t *testing.T) {
	tests := map[string]string{
		"unknown param":       "password=1",
		"unknown sort":        "sort=-user_email",
		"bad status":          "trip_status=parked",
		"limit over max":      "limit=1000",
		"negative id":         "car_id=-1",
		"bad date":            "from_after=01.05.2026",
		"inverted date range": "from_after=2026-06-01&from_before=2026-05-01",
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			values, err := url.ParseQuery(raw)
			require.NoError(t, err)

			_, err = ParseBookingQuery(values)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}
