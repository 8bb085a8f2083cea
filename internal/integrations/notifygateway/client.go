package notifygateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-RentalDispatchService/internal/domain"
)

const idempotencyHeader = "Idempotency-Key"

// Client отправляет доменные события во внешний шлюз уведомлений.
// Реализует events.Subscriber.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        Logger
}

// NewClient создает клиент шлюза. ratePerSec <= 0 отключает ограничение.
func NewClient(baseURL string, timeout time.Duration, ratePerSec float64, burst int, log Logger) *Client {
	limit := rate.Inf
	if ratePerSec > 0 {
		limit = rate.Limit(ratePerSec)
	}
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(limit, burst),
		log:     log,
	}
}

// Handle отправляет событие. ID события передаётся как Idempotency-Key,
// поэтому повторная доставка не создаёт дубликат уведомления.
func (c *Client) Handle(ctx context.Context, event domain.DomainEvent) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	}

	body, err := json.Marshal(Notification{
		BookingNumber: event.BookingNumber,
		UserID:        event.UserID,
		EventType:     string(event.Type),
		Message:       event.Message,
		OldStatus:     string(event.OldStatus),
		NewStatus:     string(event.NewStatus),
		OccurredAt:    event.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to encode notification: %v", ErrInternal, err)
	}

	url := fmt.Sprintf("%s/internal/notifications", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(idempotencyHeader, event.ID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: status %d: %s", ErrDeliveryRejected, resp.StatusCode, string(respBody))
	}

	c.log.Info("Notification %s delivered: %s booking=%d user=%d", event.ID, event.Type, event.BookingNumber, event.UserID)
	return nil
}
