package change_delivery

import (
	"github.com/m04kA/SMC-RentalDispatchService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalDispatchService/internal/service/bookings/models"
)

// ChangeDeliveryRequest HTTP request model
type ChangeDeliveryRequest struct {
	DeliveryAddress *string `json:"deliveryAddress,omitempty"`
	DeliveryTime    *string `json:"deliveryTime,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *ChangeDeliveryRequest) ToServiceRequest() (*models.ChangeDeliveryRequest, error) {
	deliveryTime, err := handlers.ParseOptionalDateTime(r.DeliveryTime)
	if err != nil {
		return nil, err
	}

	return &models.ChangeDeliveryRequest{
		DeliveryAddress: r.DeliveryAddress,
		DeliveryTime:    deliveryTime,
	}, nil
}
