package fleetservice

// Car модель автомобиля из FleetService
type Car struct {
	ID           int64   `json:"id"`
	CompanyID    int64   `json:"company_id"`
	Brand        string  `json:"brand"`
	Model        string  `json:"model"`
	LicensePlate string  `json:"license_plate"`
	DailyRate    float64 `json:"daily_rate"`
	IsActive     bool    `json:"is_active"`
}

// Agent модель агента доставки из FleetService
type Agent struct {
	ID        int64  `json:"id"`
	CompanyID int64  `json:"company_id"`
	Name      string `json:"name"`
	IsActive  bool   `json:"is_active"`
}

// ErrorResponse модель ошибки от FleetService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
