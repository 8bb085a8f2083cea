package claim_assignment

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalDispatchService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("claim_assignment: booking %w", domain.ErrNotFound)

	// ErrAgentNotFound возвращается, когда агент не найден в автопарке
	ErrAgentNotFound = fmt.Errorf("claim_assignment: agent %w", domain.ErrNotFound)

	// ErrAgentInactive возвращается, когда агент отключён
	ErrAgentInactive = fmt.Errorf("claim_assignment: %w: agent is inactive", domain.ErrValidation)

	// ErrBookingClosed возвращается при назначении на завершённое или отменённое бронирование
	ErrBookingClosed = fmt.Errorf("claim_assignment: %w: booking is finished or cancelled", domain.ErrStaleTransition)

	// ErrConcurrentUpdate возвращается, когда бронирование изменили параллельно
	ErrConcurrentUpdate = fmt.Errorf("claim_assignment: %w: booking was modified concurrently, retry", domain.ErrStaleTransition)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("claim_assignment: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("claim_assignment: internal error")
)
