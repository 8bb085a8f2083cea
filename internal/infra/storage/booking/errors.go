package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrWindowOverlap возвращается, когда условная запись не применена из-за пересечения окна
	ErrWindowOverlap = errors.New("booking.repository: window overlaps active booking")

	// ErrStatusMismatch возвращается, когда статус бронирования изменился до записи
	ErrStatusMismatch = errors.New("booking.repository: trip status does not match")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")

	// ErrInvalidRole возвращается при попытке взять неизвестную роль
	ErrInvalidRole = errors.New("booking.repository: invalid role")
)
