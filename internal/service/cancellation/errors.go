package cancellation

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalDispatchService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("cancellation: booking %w", domain.ErrNotFound)

	// ErrCannotCancel возвращается, когда бронирование нельзя отменить в текущем статусе
	ErrCannotCancel = fmt.Errorf("cancellation: %w: booking cannot be cancelled in current status", domain.ErrStaleTransition)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("cancellation: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("cancellation: internal error")
)
