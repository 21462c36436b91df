// Package alerts posts stock alerts to an operator-configured webhook. Alerts
// are advisory: delivery failures are logged by callers, never retried and
// never block the sale that triggered them.
package alerts

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Severity labels for stock alerts.
const (
	SeverityLow      = "low"
	SeverityCritical = "critical"
)

// StockAlert is the webhook payload sent when a sale leaves a product below
// the restock threshold.
type StockAlert struct {
	Product   string    `json:"product"`
	Remaining int       `json:"remaining"`
	Severity  string    `json:"severity"`
	At        time.Time `json:"at"`
}

// Notifier delivers stock alerts.
type Notifier interface {
	NotifyStockAlert(ctx context.Context, alert StockAlert) error
}

// WebhookNotifier is a resty-backed Notifier posting JSON to a single URL.
type WebhookNotifier struct {
	httpClient *resty.Client
	url        string
	logger     *zap.Logger
}

// NewWebhookNotifier builds a notifier for the given webhook URL.
func NewWebhookNotifier(webhookURL string, logger *zap.Logger) *WebhookNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}

	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(10 * time.Second)

	return &WebhookNotifier{
		httpClient: restyClient,
		url:        webhookURL,
		logger:     logger,
	}
}

// NotifyStockAlert posts the alert payload to the configured webhook.
func (n *WebhookNotifier) NotifyStockAlert(ctx context.Context, alert StockAlert) error {
	resp, err := n.httpClient.R().
		SetContext(ctx).
		SetBody(alert).
		Post(n.url)
	if err != nil {
		return fmt.Errorf("post stock alert: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("post stock alert: unexpected status %s", resp.Status())
	}

	n.logger.Debug("stock alert delivered",
		zap.String("product", alert.Product),
		zap.Int("remaining", alert.Remaining),
		zap.String("severity", alert.Severity))
	return nil
}
