package sendgrid

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

func TestSend(t *testing.T) {
	var got sendRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/mail/send", r.URL.Path)
		assert.Equal(t, "Bearer sg-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer ts.Close()

	c := NewClient(&config.SendGridConfig{APIKey: "sg-key", FromEmail: "noreply@example.com", BaseURL: ts.URL})
	err := c.Send(context.Background(), Message{
		To:      []string{"lead@example.com", " "},
		CC:      []string{"LEAD@example.com", "pm@example.com"},
		Subject: "Task ID OPS-1: Missing Fields Alert",
		Text:    "plain",
		HTML:    "<p>html</p>",
	})
	require.NoError(t, err)

	require.Len(t, got.Personalizations, 1)
	assert.Equal(t, []address{{Email: "lead@example.com"}}, got.Personalizations[0].To)
	assert.Equal(t, []address{{Email: "pm@example.com"}}, got.Personalizations[0].CC)
	assert.Equal(t, "noreply@example.com", got.From.Email)
	assert.Equal(t, "text/plain", got.Content[0].Type)
	assert.Equal(t, "text/html", got.Content[1].Type)
}

func TestSend_Validation(t *testing.T) {
	c := NewClient(&config.SendGridConfig{BaseURL: "http://127.0.0.1:0"})

	assert.Error(t, c.Send(context.Background(), Message{Text: "x"}))
	assert.Error(t, c.Send(context.Background(), Message{To: []string{"a@b.c"}, Text: "x"}))
	assert.Error(t, c.Send(context.Background(), Message{To: []string{"a@b.c"}, From: "f@b.c"}))
}

func TestSend_ProviderError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errors":[{"message":"invalid from"}]}`))
	}))
	defer ts.Close()

	c := NewClient(&config.SendGridConfig{FromEmail: "f@b.c", BaseURL: ts.URL})
	err := c.Send(context.Background(), Message{To: []string{"a@b.c"}, Text: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid from")
}
