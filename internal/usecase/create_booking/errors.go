package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalDispatchService/internal/domain"
)

var (
	// ErrCarNotFound возвращается, когда автомобиль не найден в автопарке
	ErrCarNotFound = fmt.Errorf("create_booking: car %w", domain.ErrNotFound)

	// ErrCarInactive возвращается, когда автомобиль снят с аренды
	ErrCarInactive = fmt.Errorf("create_booking: %w: car is not available for rent", domain.ErrValidation)

	// ErrUserNotFound возвращается, когда клиент не найден
	ErrUserNotFound = fmt.Errorf("create_booking: user %w", domain.ErrNotFound)

	// ErrUserBlocked возвращается, когда клиенту запрещено бронировать
	ErrUserBlocked = fmt.Errorf("create_booking: %w: user is blocked", domain.ErrPolicy)

	// ErrInvalidDate возвращается, когда дата начала аренды в прошлом
	ErrInvalidDate = fmt.Errorf("create_booking: %w: fromDate must not be in the past", domain.ErrValidation)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("create_booking: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
