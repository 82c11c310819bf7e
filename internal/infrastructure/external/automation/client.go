package automation

import (
	"context"
	"fmt"
	"net/http"

	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/external/rest"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

// TokenHeader carries the shared secret the automation rule checks
const TokenHeader = "X-Automation-Webhook-Token"

// Client triggers the tracker's automation webhook
type Client struct {
	rest *rest.Client
}

// NewClient creates a webhook client from configuration
func NewClient(cfg *config.AutomationConfig) *Client {
	token := cfg.WebhookToken
	return &Client{
		rest: rest.New(rest.Options{
			Service: "automation",
			BaseURL: cfg.WebhookURL,
			Decorate: func(r *http.Request) {
				r.Header.Set(TokenHeader, token)
			},
			MaxRetries: 2,
		}),
	}
}

type reminderRequest struct {
	Issues []string `json:"issues"`
}

// TriggerReminders asks the automation rule to remind assignees of issues
func (c *Client) TriggerReminders(ctx context.Context, issues []string) error {
	if c.rest.BaseURL() == "" {
		return fmt.Errorf("automation webhook URL is not configured")
	}
	return c.rest.Do(ctx, http.MethodPost, "", nil, reminderRequest{Issues: issues}, nil)
}
