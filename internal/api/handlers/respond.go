package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalDispatchService/internal/domain"
)

const (
	msgInternalError = "внутренняя ошибка сервера"
	msgConflict      = "конфликт с существующим бронированием"
	msgValidation    = "некорректные данные запроса"
	msgForbidden     = "операция запрещена правилами сервиса"
	msgNotFound      = "ресурс не найден"
	msgStale         = "операция невозможна в текущем статусе бронирования"
)

// maxBodyBytes ограничение размера тела запроса
const maxBodyBytes = 1 << 20

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ConflictResponse тело ответа 409 с деталями конфликта
type ConflictResponse struct {
	Code         int              `json:"code"`
	Message      string           `json:"message"`
	Booking      *ConflictBooking `json:"booking,omitempty"`
	OtherAgentID *int64           `json:"otherAgentId,omitempty"`
}

// ConflictBooking бронирование, с которым пересеклось окно
type ConflictBooking struct {
	BookingNumber int64  `json:"bookingNumber"`
	FromTime      string `json:"fromTime"`
	ToTime        string `json:"toTime"`
	TripStatus    string `json:"tripStatus"`
}

// DecodeJSON читает JSON тело запроса; неизвестные поля отклоняются
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

// RespondJSON пишет JSON ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// RespondError пишет ответ с ошибкой
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Code: status, Message: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondConflict пишет 409; при наличии деталей добавляет пересекающееся
// бронирование или агента, держащего роль
func RespondConflict(w http.ResponseWriter, message string, err error) {
	resp := ConflictResponse{Code: http.StatusConflict, Message: message}
	if resp.Message == "" {
		resp.Message = msgConflict
	}

	if conflict, ok := domain.AsConflict(err); ok {
		if conflict.Booking != nil {
			resp.Booking = &ConflictBooking{
				BookingNumber: conflict.Booking.BookingNumber,
				FromTime:      conflict.Booking.FromTime.Format(domain.DateTimeFormat),
				ToTime:        conflict.Booking.ToTime.Format(domain.DateTimeFormat),
				TripStatus:    string(conflict.Booking.TripStatus),
			}
		}
		resp.OtherAgentID = conflict.OtherAgentID
	}

	RespondJSON(w, http.StatusConflict, resp)
}

// StatusFor HTTP статус по категории доменной ошибки
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrPolicy):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrStaleTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RespondDomainError общий ответ для ошибок, не разобранных обработчиком:
// статус по категории, всё прочее 500
func RespondDomainError(w http.ResponseWriter, err error) {
	switch status := StatusFor(err); status {
	case http.StatusBadRequest:
		RespondBadRequest(w, msgValidation)
	case http.StatusForbidden:
		RespondError(w, status, msgForbidden)
	case http.StatusNotFound:
		RespondNotFound(w, msgNotFound)
	case http.StatusConflict:
		if errors.Is(err, domain.ErrConflict) {
			RespondConflict(w, "", err)
			return
		}
		RespondError(w, status, msgStale)
	default:
		RespondInternalError(w)
	}
}
