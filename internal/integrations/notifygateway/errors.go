package notifygateway

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifygateway client: internal error")

	// ErrDeliveryRejected возвращается, когда шлюз не принял уведомление
	ErrDeliveryRejected = errors.New("notifygateway client: delivery rejected")

	// ErrRateLimited возвращается, когда ожидание лимита прервано контекстом
	ErrRateLimited = errors.New("notifygateway client: rate limit wait aborted")
)
