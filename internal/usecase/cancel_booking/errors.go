package cancel_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalDispatchService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("cancel_booking: booking %w", domain.ErrNotFound)

	// ErrCannotCancel возвращается, когда бронирование уже отменено или в статусе без отмены
	ErrCannotCancel = fmt.Errorf("cancel_booking: %w: booking cannot be cancelled in current status", domain.ErrStaleTransition)

	// ErrConcurrentUpdate возвращается, когда бронирование изменили параллельно
	ErrConcurrentUpdate = fmt.Errorf("cancel_booking: %w: booking was modified concurrently, retry", domain.ErrStaleTransition)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("cancel_booking: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
