package domain

import "time"

// EventType тип доменного события для шлюза уведомлений
type EventType string

const (
	EventBookingCreated         EventType = "booking_created"
	EventBookingExtended        EventType = "booking_extended"
	EventBookingCancelled       EventType = "booking_cancelled"
	EventBookingStatusChanged   EventType = "booking_status_changed"
	EventBookingDeliveryChanged EventType = "booking_delivery_changed"
	EventAgentAssigned          EventType = "agent_assigned"
)

// DomainEvent событие об изменении бронирования
type DomainEvent struct {
	ID            string
	BookingNumber int64
	UserID        int64
	Type          EventType
	OldStatus     TripStatus
	NewStatus     TripStatus
	Message       string
	OccurredAt    time.Time
}

// NewBookingEvent событие по бронированию; NewStatus берётся из b
func NewBookingEvent(eventType EventType, b *Booking, oldStatus TripStatus, message string) DomainEvent {
	return DomainEvent{
		BookingNumber: b.BookingNumber,
		UserID:        b.UserID,
		Type:          eventType,
		OldStatus:     oldStatus,
		NewStatus:     b.TripStatus,
		Message:       message,
	}
}
