package bookings

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalDispatchService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("bookings: booking %w", domain.ErrNotFound)

	// ErrInvalidTransition возвращается, когда переход статуса не разрешён графом
	ErrInvalidTransition = fmt.Errorf("bookings: %w: transition not allowed", domain.ErrStaleTransition)

	// ErrBookingClosed возвращается при изменении завершённого или отменённого бронирования
	ErrBookingClosed = fmt.Errorf("bookings: %w: booking is finished or cancelled", domain.ErrStaleTransition)

	// ErrConcurrentUpdate возвращается, когда бронирование изменили параллельно
	ErrConcurrentUpdate = fmt.Errorf("bookings: %w: booking was modified concurrently, retry", domain.ErrStaleTransition)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("bookings: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
