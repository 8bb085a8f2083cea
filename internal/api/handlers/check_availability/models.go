package check_availability

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-RentalDispatchService/internal/api/handlers"
)

// Query параметры проверки доступности
type Query struct {
	FromDate time.Time
	Days     int
}

// ParseQuery разбирает fromDate и days из query параметров
func ParseQuery(values url.Values) (*Query, error) {
	fromStr := values.Get("fromDate")
	if fromStr == "" {
		return nil, fmt.Errorf("fromDate is required")
	}

	fromDate, err := handlers.ParseDateTime(fromStr)
	if err != nil {
		return nil, err
	}

	days, err := strconv.Atoi(values.Get("days"))
	if err != nil {
		return nil, fmt.Errorf("days must be an integer: %v", err)
	}

	return &Query{FromDate: fromDate, Days: days}, nil
}
