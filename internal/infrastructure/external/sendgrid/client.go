package sendgrid

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/external/rest"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

// Message is a single transactional email
type Message struct {
	To      []string
	CC      []string
	From    string
	Subject string
	Text    string
	HTML    string
}

// Client sends mail through the SendGrid v3 API
type Client struct {
	rest *rest.Client
	from string
}

// NewClient creates a SendGrid client from configuration
func NewClient(cfg *config.SendGridConfig) *Client {
	apiKey := cfg.APIKey
	return &Client{
		from: cfg.FromEmail,
		rest: rest.New(rest.Options{
			Service: "sendgrid",
			BaseURL: cfg.BaseURL,
			Decorate: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+apiKey)
			},
			MaxRetries: 2,
		}),
	}
}

type address struct {
	Email string `json:"email"`
}

type personalization struct {
	To []address `json:"to"`
	CC []address `json:"cc,omitempty"`
}

type content struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sendRequest struct {
	Personalizations []personalization `json:"personalizations"`
	From             address           `json:"from"`
	Subject          string            `json:"subject"`
	Content          []content         `json:"content"`
}

// Send delivers msg; the configured sender is used when msg.From is empty
func (c *Client) Send(ctx context.Context, msg Message) error {
	to := addresses(msg.To)
	if len(to) == 0 {
		return fmt.Errorf("sendgrid: at least one recipient is required")
	}
	from := msg.From
	if from == "" {
		from = c.from
	}
	if from == "" {
		return fmt.Errorf("sendgrid: sender address is not configured")
	}

	// Text must precede HTML in the content list
	var body []content
	if msg.Text != "" {
		body = append(body, content{Type: "text/plain", Value: msg.Text})
	}
	if msg.HTML != "" {
		body = append(body, content{Type: "text/html", Value: msg.HTML})
	}
	if len(body) == 0 {
		return fmt.Errorf("sendgrid: message body is empty")
	}

	req := sendRequest{
		Personalizations: []personalization{{To: to, CC: dedupeCC(addresses(msg.CC), to)}},
		From:             address{Email: from},
		Subject:          msg.Subject,
		Content:          body,
	}
	return c.rest.Do(ctx, http.MethodPost, "/v3/mail/send", nil, req, nil)
}

func addresses(emails []string) []address {
	var out []address
	for _, e := range emails {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, address{Email: e})
		}
	}
	return out
}

// dedupeCC drops CC entries already in To; the API rejects duplicates
func dedupeCC(cc, to []address) []address {
	seen := make(map[string]struct{}, len(to)+len(cc))
	for _, a := range to {
		seen[strings.ToLower(a.Email)] = struct{}{}
	}
	var out []address
	for _, a := range cc {
		k := strings.ToLower(a.Email)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, a)
	}
	return out
}
