package domain

import "time"

// TripStatus represents the lifecycle stage of a booking
type TripStatus string

const (
	TripStatusUpcoming   TripStatus = "upcoming"
	TripStatusDelivering TripStatus = "delivering"
	TripStatusInProgress TripStatus = "inprogress"
	TripStatusReturn     TripStatus = "return"
	TripStatusReturning  TripStatus = "returning"
	TripStatusFinished   TripStatus = "finished"
	TripStatusCancelled  TripStatus = "cancelled"
)

// transitions граф допустимых переходов статуса поездки.
// inprogress -> finished допустим для возврата автомобиля клиентом без агента.
var transitions = map[TripStatus][]TripStatus{
	TripStatusUpcoming:   {TripStatusDelivering, TripStatusCancelled},
	TripStatusDelivering: {TripStatusInProgress},
	TripStatusInProgress: {TripStatusReturn, TripStatusFinished, TripStatusCancelled},
	TripStatusReturn:     {TripStatusReturning},
	TripStatusReturning:  {TripStatusFinished},
	TripStatusFinished:   {},
	TripStatusCancelled:  {},
}

// IsValid returns true if the status is one of the known trip statuses
func (s TripStatus) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// IsTerminal returns true for cancelled and finished
func (s TripStatus) IsTerminal() bool {
	return s == TripStatusCancelled || s == TripStatusFinished
}

// CanTransitionTo returns true if next is a legal successor of s
func (s TripStatus) CanTransitionTo(next TripStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Successors returns the legal next statuses
func (s TripStatus) Successors() []TripStatus {
	next := transitions[s]
	out := make([]TripStatus, len(next))
	copy(out, next)
	return out
}

// ParseTripStatus конвертирует строку в TripStatus с валидацией
func ParseTripStatus(s string) (TripStatus, error) {
	status := TripStatus(s)
	if !status.IsValid() {
		return "", ErrInvalidTripStatus
	}
	return status, nil
}

// Booking represents a car rental reservation
type Booking struct {
	ID            int64
	BookingNumber int64 // Внешний последовательный номер бронирования
	CarID         int64
	UserID        int64
	CompanyID     int64

	FromTime     time.Time
	ToTime       time.Time
	Days         int
	ExtendedDays int // Суммарное количество дней продления

	BookingRent        float64 // Стоимость суток аренды
	TotalBookingAmount float64
	Deposit            float64
	VAT                float64
	Coupon             float64

	TripStatus TripStatus

	AgentAssignForHandover bool
	HandoverByAgentID      *int64
	AgentAssignForReceive  bool
	ReceiveByAgentID       *int64

	DeliveryAddress *string
	DeliveryTime    *time.Time

	CancelDate         *time.Time
	CancelReason       *string
	CancellationCharge *float64
	RefundAmount       *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its car
func (b *Booking) IsActive() bool {
	return !b.TripStatus.IsTerminal()
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.TripStatus.CanTransitionTo(TripStatusCancelled)
}

// CanBeExtended returns true while the car is with the customer
func (b *Booking) CanBeExtended() bool {
	return b.TripStatus == TripStatusInProgress
}

// TotalDays returns booked plus extended days
func (b *Booking) TotalDays() int {
	return b.Days + b.ExtendedDays
}

// AgentFor returns the agent bound to the role, if the role is claimed
func (b *Booking) AgentFor(role Role) (int64, bool) {
	switch role {
	case RoleHandover:
		if b.AgentAssignForHandover && b.HandoverByAgentID != nil {
			return *b.HandoverByAgentID, true
		}
	case RoleReceive:
		if b.AgentAssignForReceive && b.ReceiveByAgentID != nil {
			return *b.ReceiveByAgentID, true
		}
	}
	return 0, false
}

// WindowEnd вычисляет конец окна аренды: from + days суток
func WindowEnd(from time.Time, days int) time.Time {
	return from.AddDate(0, 0, days)
}

// BoundaryPolicy определяет, пересекаются ли окна, касающиеся концами
type BoundaryPolicy string

const (
	// BoundaryInclusive: existing.from <= to && existing.to >= from.
	// Бронирования "день в день" (конец одного = начало другого) конфликтуют.
	BoundaryInclusive BoundaryPolicy = "inclusive"
	// BoundaryExclusive: existing.from < to && existing.to > from
	BoundaryExclusive BoundaryPolicy = "exclusive"
)

// Overlaps проверяет пересечение окна [from, to) с существующим бронированием
func (p BoundaryPolicy) Overlaps(existingFrom, existingTo, from, to time.Time) bool {
	if p == BoundaryExclusive {
		return existingFrom.Before(to) && existingTo.After(from)
	}
	return !existingFrom.After(to) && !existingTo.Before(from)
}
