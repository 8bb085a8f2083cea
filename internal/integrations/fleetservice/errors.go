package fleetservice

import "errors"

var (
	// ErrCarNotFound возвращается, когда автомобиль не найден в автопарке
	ErrCarNotFound = errors.New("car not found")

	// ErrAgentNotFound возвращается, когда агент не найден
	ErrAgentNotFound = errors.New("agent not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("fleetservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("fleetservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что FleetService недоступен и проверка агента пропущена
	ErrServiceDegraded = errors.New("fleetservice unavailable: graceful degradation applied")
)
