package alert

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"stocktake/internal/config"
)

// Client delivers low-stock notifications to an external endpoint.
type Client interface {
	SendLowStockAlert(ctx context.Context, alert LowStockAlert) error
}

// LowStockProduct is one product at or below the stock threshold.
type LowStockProduct struct {
	Name            string  `json:"name"`
	CurrentQuantity float64 `json:"currentQuantity"`
	Unit            string  `json:"unit"`
}

// LowStockAlert is the webhook payload posted after a snapshot run.
type LowStockAlert struct {
	Date     time.Time         `json:"date"`
	Products []LowStockProduct `json:"products"`
}

// WebhookClient is a resty-backed implementation of Client that POSTs
// alerts to the configured webhook URL.
type WebhookClient struct {
	httpClient *resty.Client
	webhookURL string
}

// NewClient builds an alert webhook client from configuration.
func NewClient(cfg config.AlertConfig) *WebhookClient {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &WebhookClient{
		httpClient: restyClient,
		webhookURL: cfg.WebhookURL,
	}
}

// SendLowStockAlert posts the alert payload, treating any non-2xx
// response as a failure.
func (c *WebhookClient) SendLowStockAlert(ctx context.Context, alert LowStockAlert) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(alert).
		Post(c.webhookURL)
	if err != nil {
		return fmt.Errorf("send low stock alert: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("alert webhook error: status=%d, body=%s", resp.StatusCode(), resp.String())
	}
	return nil
}
