package assignment

import "errors"

var (
	// ErrAssignmentNotFound возвращается, когда назначение агента не найдено
	ErrAssignmentNotFound = errors.New("assignment.repository: assignment not found")

	ErrBuildQuery = errors.New("assignment.repository: failed to build query")
	ErrExecQuery  = errors.New("assignment.repository: failed to execute query")
	ErrScanRow    = errors.New("assignment.repository: failed to scan row")
)
