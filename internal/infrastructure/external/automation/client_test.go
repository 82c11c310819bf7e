package automation

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

func TestTriggerReminders(t *testing.T) {
	var got reminderRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/hooks/abc", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get(TokenHeader))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	c := NewClient(&config.AutomationConfig{WebhookURL: ts.URL + "/hooks/abc", WebhookToken: "secret"})
	require.NoError(t, c.TriggerReminders(context.Background(), []string{"OPS-1", "OPS-2"}))
	assert.Equal(t, []string{"OPS-1", "OPS-2"}, got.Issues)
}

func TestTriggerReminders_NotConfigured(t *testing.T) {
	c := NewClient(&config.AutomationConfig{})
	assert.Error(t, c.TriggerReminders(context.Background(), []string{"OPS-1"}))
}
