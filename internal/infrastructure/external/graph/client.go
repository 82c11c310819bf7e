package graph

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/external/rest"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

// Client talks to Microsoft Graph on behalf of the signed-in organizer
type Client struct {
	rest       *rest.Client
	configured bool
}

// NewClient creates a Graph client authenticated with a static bearer token
func NewClient(cfg *config.GraphConfig) *Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.AccessToken, TokenType: "Bearer"})
	httpClient := oauth2.NewClient(context.Background(), ts)
	httpClient.Timeout = 30 * time.Second

	return &Client{
		configured: cfg.AccessToken != "",
		rest: rest.New(rest.Options{
			Service:    "graph",
			BaseURL:    cfg.BaseURL,
			HTTPClient: httpClient,
			MaxRetries: 2,
		}),
	}
}

// Configured reports whether an access token is available
func (c *Client) Configured() bool {
	return c.configured
}

type emailAddress struct {
	Address string `json:"address"`
	Name    string `json:"name,omitempty"`
}

type recipient struct {
	EmailAddress emailAddress `json:"emailAddress"`
	Type         string       `json:"type,omitempty"`
}

type dateTimeTZ struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

type itemBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

type event struct {
	ID            string      `json:"id,omitempty"`
	Subject       string      `json:"subject"`
	Body          *itemBody   `json:"body,omitempty"`
	Start         dateTimeTZ  `json:"start"`
	End           dateTimeTZ  `json:"end"`
	Organizer     *recipient  `json:"organizer,omitempty"`
	Attendees     []recipient `json:"attendees"`
	IsOnline      bool        `json:"isOnlineMeeting,omitempty"`
	OnlineMeeting *struct {
		JoinURL string `json:"joinUrl"`
	} `json:"onlineMeeting,omitempty"`
}

// EventInput describes a meeting to schedule
type EventInput struct {
	Subject   string
	BodyHTML  string
	Start     string // local date-time, e.g. 2026-10-20T10:00:00
	End       string
	TimeZone  string
	Attendees []string
	Online    bool
}

// CreateEvent schedules a meeting in the organizer's calendar
func (c *Client) CreateEvent(ctx context.Context, in EventInput) (*entities.Event, error) {
	req := event{
		Subject:  in.Subject,
		Body:     &itemBody{ContentType: "HTML", Content: in.BodyHTML},
		Start:    dateTimeTZ{DateTime: in.Start, TimeZone: in.TimeZone},
		End:      dateTimeTZ{DateTime: in.End, TimeZone: in.TimeZone},
		IsOnline: in.Online,
	}
	for _, a := range in.Attendees {
		req.Attendees = append(req.Attendees, recipient{EmailAddress: emailAddress{Address: a}, Type: "required"})
	}

	var out event
	if err := c.rest.Do(ctx, http.MethodPost, "/v1.0/me/events", nil, req, &out); err != nil {
		return nil, err
	}
	ev := toEvent(out)
	return &ev, nil
}

type eventList struct {
	Value []event `json:"value"`
}

// ListEvents lists calendar events using OData filter and ordering
func (c *Client) ListEvents(ctx context.Context, filter, orderBy string) ([]entities.Event, error) {
	q := url.Values{}
	if filter != "" {
		q.Set("$filter", filter)
	}
	if orderBy != "" {
		q.Set("$orderby", orderBy)
	}
	q.Set("$top", "50")

	var out eventList
	if err := c.rest.Do(ctx, http.MethodGet, "/v1.0/me/events", q, nil, &out); err != nil {
		return nil, err
	}
	events := make([]entities.Event, 0, len(out.Value))
	for _, ev := range out.Value {
		events = append(events, toEvent(ev))
	}
	return events, nil
}

func toEvent(ev event) entities.Event {
	out := entities.Event{
		ID:        ev.ID,
		Subject:   ev.Subject,
		StartTime: ev.Start.DateTime,
		EndTime:   ev.End.DateTime,
		TimeZone:  ev.Start.TimeZone,
		Attendees: make([]string, 0, len(ev.Attendees)),
		JoinURL:   entities.NoJoinURL,
	}
	if ev.Organizer != nil {
		out.Organizer = ev.Organizer.EmailAddress.Address
	}
	for _, a := range ev.Attendees {
		out.Attendees = append(out.Attendees, a.EmailAddress.Address)
	}
	if ev.OnlineMeeting != nil && ev.OnlineMeeting.JoinURL != "" {
		out.JoinURL = ev.OnlineMeeting.JoinURL
	}
	return out
}

type userList struct {
	Value []struct {
		DisplayName string `json:"displayName"`
		Mail        string `json:"mail"`
	} `json:"value"`
}

// ListUsers returns the organisation directory
func (c *Client) ListUsers(ctx context.Context) ([]entities.DirectoryUser, error) {
	q := url.Values{"$select": {"displayName,mail"}}

	var out userList
	if err := c.rest.Do(ctx, http.MethodGet, "/v1.0/users", q, nil, &out); err != nil {
		return nil, err
	}
	users := make([]entities.DirectoryUser, 0, len(out.Value))
	for _, u := range out.Value {
		users = append(users, entities.DirectoryUser{DisplayName: u.DisplayName, Mail: u.Mail})
	}
	return users, nil
}

// Attachment is a file sent with a mail
type Attachment struct {
	Name        string
	ContentType string
	Content     []byte
}

// Mail is a message sent from the organizer's mailbox
type Mail struct {
	To          []entities.Attendee
	Subject     string
	Body        string
	HTML        bool
	Attachments []Attachment
}

type fileAttachment struct {
	ODataType    string `json:"@odata.type"`
	Name         string `json:"name"`
	ContentType  string `json:"contentType"`
	ContentBytes string `json:"contentBytes"`
}

type sendMailRequest struct {
	Message struct {
		Subject      string           `json:"subject"`
		Body         itemBody         `json:"body"`
		ToRecipients []recipient      `json:"toRecipients"`
		Attachments  []fileAttachment `json:"attachments,omitempty"`
	} `json:"message"`
	SaveToSentItems bool `json:"saveToSentItems"`
}

// SendMail sends a mail with optional file attachments
func (c *Client) SendMail(ctx context.Context, m Mail) error {
	if len(m.To) == 0 {
		return fmt.Errorf("graph: at least one recipient is required")
	}

	var req sendMailRequest
	req.SaveToSentItems = true
	req.Message.Subject = m.Subject
	req.Message.Body = itemBody{ContentType: "Text", Content: m.Body}
	if m.HTML {
		req.Message.Body.ContentType = "HTML"
	}
	for _, a := range m.To {
		req.Message.ToRecipients = append(req.Message.ToRecipients, recipient{
			EmailAddress: emailAddress{Address: a.Email, Name: a.Name},
		})
	}
	for _, att := range m.Attachments {
		req.Message.Attachments = append(req.Message.Attachments, fileAttachment{
			ODataType:    "#microsoft.graph.fileAttachment",
			Name:         att.Name,
			ContentType:  att.ContentType,
			ContentBytes: base64.StdEncoding.EncodeToString(att.Content),
		})
	}

	return c.rest.Do(ctx, http.MethodPost, "/v1.0/me/sendMail", nil, req, nil)
}
