package domain

import "time"

// Role dispatch role an agent can claim on a booking
type Role string

const (
	RoleHandover Role = "handover" // агент передаёт автомобиль клиенту
	RoleReceive  Role = "receive"  // агент забирает автомобиль у клиента
)

// ParseRole конвертирует строку в Role с валидацией
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleHandover, RoleReceive:
		return Role(s), nil
	default:
		return "", ErrInvalidRole
	}
}

// AssignmentStatus progress of the agent on the assignment
type AssignmentStatus string

const (
	AssignmentStatusAssign   AssignmentStatus = "assign"
	AssignmentStatusHandover AssignmentStatus = "handover"
	AssignmentStatusReceive  AssignmentStatus = "receive"
)

// AgentAssignment detail record of an agent bound to a booking role.
// The role flags on Booking are the source of truth; this row is bookkeeping.
type AgentAssignment struct {
	ID               int64
	AgentID          int64
	CarID            int64
	BookingNumber    int64
	AssignFor        Role
	AssignForReceive bool // агент, взявший handover, взял и receive на той же строке
	Status           AssignmentStatus
	TripStatus       TripStatus // зеркало статуса бронирования
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Covers returns true if this row represents the given role
func (a *AgentAssignment) Covers(role Role) bool {
	if a.AssignFor == role {
		return true
	}
	return role == RoleReceive && a.AssignForReceive
}

// ClaimOutcome результат попытки взять роль
type ClaimOutcome string

const (
	ClaimOutcomeClaimed         ClaimOutcome = "claimed"
	ClaimOutcomeAlreadyAssigned ClaimOutcome = "already_assigned"
	ClaimOutcomeNotFound        ClaimOutcome = "not_found"
)

// AssignmentStatusOnEnter статус назначения роли при входе бронирования в status.
// Возвращает false, если переход не меняет прогресс агента.
func AssignmentStatusOnEnter(status TripStatus) (Role, AssignmentStatus, bool) {
	switch status {
	case TripStatusInProgress:
		return RoleHandover, AssignmentStatusHandover, true
	case TripStatusFinished:
		return RoleReceive, AssignmentStatusReceive, true
	default:
		return "", "", false
	}
}
