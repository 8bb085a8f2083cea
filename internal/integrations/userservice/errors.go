package userservice

import "errors"

var (
	// ErrUserNotFound возвращается, когда клиент не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("userservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("userservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что UserService недоступен и проверка клиента пропущена
	ErrServiceDegraded = errors.New("userservice unavailable: graceful degradation applied")
)
