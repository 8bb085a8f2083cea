package extend_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalDispatchService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("extend_booking: booking %w", domain.ErrNotFound)

	// ErrNotInProgress возвращается, когда бронирование не в статусе inprogress
	ErrNotInProgress = fmt.Errorf("extend_booking: %w: only bookings in progress can be extended", domain.ErrStaleTransition)

	// ErrConcurrentUpdate возвращается, когда бронирование изменили параллельно
	ErrConcurrentUpdate = fmt.Errorf("extend_booking: %w: booking was modified concurrently, retry", domain.ErrStaleTransition)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("extend_booking: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("extend_booking: internal error")
)
