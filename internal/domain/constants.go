package domain

// Business validation constants
const (
	MinBookingDays           = 1
	MaxBookingDays           = 365
	MaxExtensionDays         = 90
	MaxCancelReasonLength    = 500
	MaxDeliveryAddressLength = 500
)

// Time format constants
const (
	DateFormat     = "2006-01-02"       // YYYY-MM-DD
	DateTimeFormat = "2006-01-02T15:04" // YYYY-MM-DDTHH:MM
)

// InactiveStatuses статусы, при которых бронирование не занимает автомобиль.
// Используется при поиске пересекающихся бронирований.
var InactiveStatuses = []TripStatus{
	TripStatusCancelled,
	TripStatusFinished,
}

// ActiveStatuses статусы, при которых бронирование занимает автомобиль
var ActiveStatuses = []TripStatus{
	TripStatusUpcoming,
	TripStatusDelivering,
	TripStatusInProgress,
	TripStatusReturn,
	TripStatusReturning,
}

// StatusStrings конвертирует список статусов в строки (для SQL IN)
func StatusStrings(statuses []TripStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
