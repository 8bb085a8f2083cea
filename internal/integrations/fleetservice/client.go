package fleetservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с FleetService (автомобили и агенты доставки)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента FleetService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetCar получает автомобиль по ID
func (c *Client) GetCar(ctx context.Context, carID int64) (*Car, error) {
	var car Car
	url := fmt.Sprintf("%s/internal/cars/%d", c.baseURL, carID)
	if err := c.get(ctx, url, ErrCarNotFound, &car); err != nil {
		return nil, err
	}
	return &car, nil
}

// GetAgent получает агента доставки по ID
func (c *Client) GetAgent(ctx context.Context, agentID int64) (*Agent, error) {
	var agent Agent
	url := fmt.Sprintf("%s/internal/agents/%d", c.baseURL, agentID)
	if err := c.get(ctx, url, ErrAgentNotFound, &agent); err != nil {
		return nil, err
	}
	return &agent, nil
}

// GetAgentWithGracefulDegradation получает агента с graceful degradation.
// При недоступности FleetService возвращает ErrServiceDegraded, и назначение
// выполняется без проверки агента.
func (c *Client) GetAgentWithGracefulDegradation(ctx context.Context, agentID int64) (*Agent, error) {
	agent, err := c.GetAgent(ctx, agentID)
	if err != nil {
		if errors.Is(err, ErrAgentNotFound) {
			c.log.Info("Agent id=%d not found in fleet service", agentID)
			return nil, err
		}

		c.log.Error("FleetService unavailable, applying graceful degradation for agent_id=%d: %v", agentID, err)
		return nil, fmt.Errorf("%w: agent_id=%d, error=%v", ErrServiceDegraded, agentID, err)
	}

	return agent, nil
}

func (c *Client) get(ctx context.Context, url string, notFound error, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusBadRequest:
		return fmt.Errorf("%w: invalid id format", ErrInvalidResponse)
	case http.StatusNotFound:
		return notFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
