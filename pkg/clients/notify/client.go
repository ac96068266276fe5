package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Jakababa94/mandazi-metrics/internal/config"
	"github.com/Jakababa94/mandazi-metrics/internal/domain/models"
)

// Client pushes daily financial reports to an external webhook.
type Client interface {
	SendDailyReport(ctx context.Context, report models.DailyReport) error
}

// WebhookClient is a resty-backed implementation of Client.
type WebhookClient struct {
	httpClient *resty.Client
	url        string
}

// NewClient builds a webhook client using the provided configuration values.
func NewClient(cfg config.NotifyConfig) *WebhookClient {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	if cfg.AuthToken != "" {
		restyClient.SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.AuthToken))
	}

	return &WebhookClient{
		httpClient: restyClient,
		url:        cfg.WebhookURL,
	}
}

// SendDailyReport posts the report as JSON and treats any non-2xx status as
// a failure.
func (c *WebhookClient) SendDailyReport(ctx context.Context, report models.DailyReport) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(report).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("send daily report: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("report webhook error: status=%d, body=%s", resp.StatusCode(), resp.String())
	}
	return nil
}
