package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_ErrorString(t *testing.T) {
	err := ErrNotFound("Project")
	assert.Equal(t, "[NOT_FOUND] Project not found", err.Error())

	wrapped := ErrJiraFailed("search", fmt.Errorf("boom"))
	assert.Equal(t, "[INTEGRATION_JIRA_FAILED] Jira operation failed: search: boom", wrapped.Error())
}

func TestAppError_WithDetailDoesNotShareMap(t *testing.T) {
	base := ErrMinutesNotFound("m-1")
	other := base.WithDetail("extra", "x")

	assert.Equal(t, "m-1", other.Details["meeting_id"])
	assert.Equal(t, http.StatusNotFound, other.HTTPCode)
}

func TestAppError_AsThroughWrapping(t *testing.T) {
	cause := stdErrors.New("dial tcp: refused")
	err := fmt.Errorf("send: %w", ErrEmailFailed(cause))

	var appErr AppError
	assert.True(t, stdErrors.As(err, &appErr))
	assert.Equal(t, ErrorCode_INTEGRATION_EMAIL_FAILED, appErr.Code)
	assert.True(t, stdErrors.Is(err, cause))
}

func TestErrorCode_String(t *testing.T) {
	assert.Equal(t, "MINUTES_NOT_FOUND", ErrorCode_MINUTES_NOT_FOUND.String())
	assert.Equal(t, "UNKNOWN", ErrorCode(42).String())
}
