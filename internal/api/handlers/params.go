package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalDispatchService/internal/domain"
)

var (
	ErrInvalidPathParam = errors.New("invalid path parameter")
	ErrInvalidDateTime  = errors.New("invalid date or time")
)

// dateTimeLayouts поддерживаемые форматы даты и времени в запросах
var dateTimeLayouts = []string{
	time.RFC3339,
	domain.DateTimeFormat,
	domain.DateFormat,
}

// PathInt64 извлекает положительный int64 из параметра пути
func PathInt64(r *http.Request, name string) (int64, error) {
	value, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidPathParam, name)
	}
	return value, nil
}

// ParseDateTime разбирает "2026-05-01T10:00:00Z", "2026-05-01T10:00" или "2026-05-01" (UTC)
func ParseDateTime(value string) (time.Time, error) {
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateTime, value)
}

// ParseOptionalDateTime разбирает необязательное значение; nil для пустой строки
func ParseOptionalDateTime(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := ParseDateTime(*value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
