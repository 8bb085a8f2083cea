package domain

import (
	"errors"
	"fmt"
)

// Базовые категории ошибок. Ошибки пакетов оборачивают одну из них,
// поэтому вызывающий код может проверять как конкретную ошибку, так и категорию.
var (
	// ErrValidation некорректные входные данные, отклонены до изменения состояния
	ErrValidation = errors.New("validation error")

	// ErrConflict пересечение окна аренды или роль занята другим агентом
	ErrConflict = errors.New("conflict")

	// ErrNotFound неизвестный автомобиль, бронирование или агент
	ErrNotFound = errors.New("not found")

	// ErrStaleTransition операция над бронированием в терминальном или несовместимом статусе
	ErrStaleTransition = errors.New("stale transition")

	// ErrPolicy нарушение правил: некорректная политика отмены, заблокированный клиент
	ErrPolicy = errors.New("policy error")
)

var (
	ErrInvalidTripStatus = fmt.Errorf("%w: unknown trip status", ErrValidation)
	ErrInvalidRole       = fmt.Errorf("%w: role must be handover or receive", ErrValidation)
)

// ConflictError конфликт с конкретным бронированием или агентом.
// Позволяет клиенту предложить "выберите другие даты".
type ConflictError struct {
	Booking      *Booking // пересекающееся бронирование (проверка доступности)
	OtherAgentID *int64   // агент, уже держащий роль (назначение)
	Reason       string
}

func (e *ConflictError) Error() string {
	switch {
	case e.Booking != nil:
		return fmt.Sprintf("conflict: %s (booking_number=%d, %s - %s)", e.Reason, e.Booking.BookingNumber,
			e.Booking.FromTime.Format(DateTimeFormat), e.Booking.ToTime.Format(DateTimeFormat))
	case e.OtherAgentID != nil:
		return fmt.Sprintf("conflict: %s (agent_id=%d)", e.Reason, *e.OtherAgentID)
	case e.Reason != "":
		return "conflict: " + e.Reason
	default:
		return "conflict"
	}
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// AsConflict извлекает ConflictError из цепочки ошибок
func AsConflict(err error) (*ConflictError, bool) {
	var target *ConflictError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
