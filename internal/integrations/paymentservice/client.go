package paymentservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с платежным сервисом
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента платежного сервиса
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetDeposit получает депозит клиента по услуге
func (c *Client) GetDeposit(ctx context.Context, clientID, serviceID int64) (*Deposit, error) {
	url := fmt.Sprintf("%s/internal/clients/%d/services/%d/deposit", c.baseURL, clientID, serviceID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrDepositNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var deposit Deposit
	if err := json.NewDecoder(resp.Body).Decode(&deposit); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &deposit, nil
}

// VerifyDeposit проверяет наличие оплаченного депозита с graceful degradation
// При недоступности платежного сервиса возвращает ErrServiceDegraded:
// бронирование в этом случае создается без подтвержденного депозита,
// а не отклоняется
func (c *Client) VerifyDeposit(ctx context.Context, clientID, serviceID int64) (bool, error) {
	c.log.Info("Verifying deposit for client_id=%d, service_id=%d", clientID, serviceID)

	deposit, err := c.GetDeposit(ctx, clientID, serviceID)
	if err != nil {
		// Отсутствие депозита - бизнес-ответ, а не сбой
		if err == ErrDepositNotFound {
			c.log.Info("No deposit found for client_id=%d, service_id=%d", clientID, serviceID)
			return false, nil
		}

		// Для остальных ошибок (недоступность, timeout, ошибки парсинга)
		// применяем graceful degradation
		c.log.Error("PaymentService unavailable, applying graceful degradation for client_id=%d: %v", clientID, err)
		return false, fmt.Errorf("%w: client_id=%d, error=%v", ErrServiceDegraded, clientID, err)
	}

	c.log.Info("Deposit found for client_id=%d, service_id=%d, status=%s", clientID, serviceID, deposit.Status)
	return deposit.IsPaid(), nil
}
