package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Параметры пагинации списка бронирований
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Фильтруемые поля списка бронирований
const (
	FilterCarID      = "car_id"
	FilterUserID     = "user_id"
	FilterCompanyID  = "company_id"
	FilterTripStatus = "trip_status"
	FilterAgentID    = "agent_id"
	FilterFromAfter  = "from_after"
	FilterFromBefore = "from_before"
)

// Служебные параметры запроса
const (
	ParamSort  = "sort"
	ParamLimit = "limit"
	ParamPage  = "page"
)

// SortField поле сортировки списка бронирований
type SortField string

const (
	SortByBookingNumber SortField = "booking_number"
	SortByFromTime      SortField = "from_time"
	SortByToTime        SortField = "to_time"
	SortByCreatedAt     SortField = "created_at"
)

var sortFields = map[SortField]struct{}{
	SortByBookingNumber: {},
	SortByFromTime:      {},
	SortByToTime:        {},
	SortByCreatedAt:     {},
}

var queryParams = map[string]struct{}{
	FilterCarID:      {},
	FilterUserID:     {},
	FilterCompanyID:  {},
	FilterTripStatus: {},
	FilterAgentID:    {},
	FilterFromAfter:  {},
	FilterFromBefore: {},
	ParamSort:        {},
	ParamLimit:       {},
	ParamPage:        {},
}

// BookingQuery типизированный запрос списка бронирований.
// Поддерживаются только перечисленные фильтры и поля сортировки.
type BookingQuery struct {
	CarID        *int64
	UserID       *int64
	CompanyID    *int64
	AgentID      *int64 // агент на любой из ролей
	TripStatuses []TripStatus
	FromAfter    *time.Time
	FromBefore   *time.Time

	SortBy   SortField
	SortDesc bool
	Limit    int
	Page     int // с 1
}

// Offset смещение для текущей страницы
func (q BookingQuery) Offset() int {
	if q.Page <= 1 {
		return 0
	}
	return (q.Page - 1) * q.Limit
}

// ParseBookingQuery строит BookingQuery из параметров запроса (url.Values).
// Неизвестные параметры и поля сортировки отклоняются.
//
// Пример: car_id=7&trip_status=upcoming,inprogress&sort=-from_time&limit=50&page=2
func ParseBookingQuery(params map[string][]string) (BookingQuery, error) {
	q := BookingQuery{
		SortBy:   SortByBookingNumber,
		SortDesc: true,
		Limit:    DefaultPageLimit,
		Page:     1,
	}

	for key, values := range params {
		if _, ok := queryParams[key]; !ok {
			return q, fmt.Errorf("%w: unsupported query parameter %q", ErrValidation, key)
		}
		if len(values) == 0 || values[0] == "" {
			continue
		}
		value := values[0]

		var err error
		switch key {
		case FilterCarID:
			q.CarID, err = parsePositiveID(key, value)
		case FilterUserID:
			q.UserID, err = parsePositiveID(key, value)
		case FilterCompanyID:
			q.CompanyID, err = parsePositiveID(key, value)
		case FilterAgentID:
			q.AgentID, err = parsePositiveID(key, value)
		case FilterTripStatus:
			for _, raw := range strings.Split(value, ",") {
				status, parseErr := ParseTripStatus(strings.TrimSpace(raw))
				if parseErr != nil {
					return q, fmt.Errorf("%w: %s=%q", ErrValidation, key, raw)
				}
				q.TripStatuses = append(q.TripStatuses, status)
			}
		case FilterFromAfter:
			q.FromAfter, err = parseDate(key, value)
		case FilterFromBefore:
			q.FromBefore, err = parseDate(key, value)
		case ParamSort:
			desc := strings.HasPrefix(value, "-")
			field := SortField(strings.TrimPrefix(value, "-"))
			if _, ok := sortFields[field]; !ok {
				return q, fmt.Errorf("%w: unsupported sort field %q", ErrValidation, field)
			}
			q.SortBy, q.SortDesc = field, desc
		case ParamLimit:
			q.Limit, err = parseBoundedInt(key, value, 1, MaxPageLimit)
		case ParamPage:
			q.Page, err = parseBoundedInt(key, value, 1, 1<<20)
		}
		if err != nil {
			return q, err
		}
	}

	if q.FromAfter != nil && q.FromBefore != nil && q.FromBefore.Before(*q.FromAfter) {
		return q, fmt.Errorf("%w: from_before must not be earlier than from_after", ErrValidation)
	}

	return q, nil
}

func parsePositiveID(key, value string) (*int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%w: %s must be a positive integer", ErrValidation, key)
	}
	return &id, nil
}

func parseDate(key, value string) (*time.Time, error) {
	t, err := time.Parse(DateFormat, value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be YYYY-MM-DD", ErrValidation, key)
	}
	return &t, nil
}

func parseBoundedInt(key, value string, lo, hi int) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < lo || n > hi {
		return 0, fmt.Errorf("%w: %s must be in %d..%d", ErrValidation, key, lo, hi)
	}
	return n, nil
}
