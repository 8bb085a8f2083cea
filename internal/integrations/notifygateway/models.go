package notifygateway

import "time"

// Notification тело запроса к шлюзу уведомлений (push/SMS/email)
type Notification struct {
	BookingNumber int64     `json:"booking_number"`
	UserID        int64     `json:"user_id"`
	EventType     string    `json:"event_type"`
	Message       string    `json:"message"`
	OldStatus     string    `json:"old_status,omitempty"`
	NewStatus     string    `json:"new_status,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}
