package handler

import (
	stdErrors "errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/errors"
	usecaseErrors "github.com/johnquangdev/meeting-minutes/internal/usecase/errors"
)

// maxBodyBytes bounds raw request bodies read outside of c.Bind
const maxBodyBytes = 1 << 20

// Response shapes
type success struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errs struct {
	Code    interface{}       `json:"code,omitempty"`
	Message string            `json:"message,omitempty"`
	Info    string            `json:"info,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	return c.Request().Header.Get("X-Request-ID")
}

// readBody returns the raw request body
func readBody(c echo.Context) ([]byte, error) {
	return io.ReadAll(io.LimitReader(c.Request().Body, maxBodyBytes))
}

// isJSON reports whether the request declares a JSON body
func isJSON(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
}

// toAppError translates use case sentinels into API errors
func toAppError(c echo.Context, err error) error {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}

	switch {
	case stdErrors.Is(err, usecaseErrors.ErrMinutesNotFound):
		return errors.ErrMinutesNotFound(c.Param("meeting_id"))
	case stdErrors.Is(err, usecaseErrors.ErrMinutesAlreadyExists):
		return errors.ErrMinutesAlreadyExists(c.Param("meeting_id"))
	case stdErrors.Is(err, usecaseErrors.ErrMissingMinutes),
		stdErrors.Is(err, usecaseErrors.ErrMissingOrganizer):
		return errors.ErrMinutesInvalid(err.Error())
	case stdErrors.Is(err, usecaseErrors.ErrMeetingTasksNotFound):
		return errors.ErrNotFound("meeting tasks")
	case stdErrors.Is(err, usecaseErrors.ErrNotFound):
		return errors.ErrNotFound("Jira resource")
	case stdErrors.Is(err, usecaseErrors.ErrInvalidInput),
		stdErrors.Is(err, usecaseErrors.ErrNoFieldsToUpdate),
		stdErrors.Is(err, usecaseErrors.ErrNoIssues):
		return errors.ErrInvalidArgument(err.Error())
	case stdErrors.Is(err, usecaseErrors.ErrCalendarUnavailable):
		return errors.ErrCalendarNotConfigured()
	case stdErrors.Is(err, usecaseErrors.ErrCalendarFailed):
		return errors.ErrCalendarFailed(c.Path(), err)
	case stdErrors.Is(err, usecaseErrors.ErrTrackerFailed):
		return errors.ErrJiraFailed(c.Path(), err)
	case stdErrors.Is(err, usecaseErrors.ErrEmailFailed):
		return errors.ErrEmailFailed(err)
	case stdErrors.Is(err, usecaseErrors.ErrReminderFailed):
		return errors.ErrReminderFailed(err)
	case stdErrors.Is(err, usecaseErrors.ErrSummaryFailed):
		return errors.ErrAISummaryFailed(err)
	case stdErrors.Is(err, usecaseErrors.ErrInvalidModelOutput):
		return errors.ErrAIInvalidOutput(err)
	case stdErrors.Is(err, usecaseErrors.ErrStorageUnavailable):
		return errors.ErrStorageFailed("list archive", err)
	}
	return errors.ErrInternal(err)
}

// HandleSuccess writes a standardized success response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	return respond(logger, c, http.StatusOK, data)
}

// HandleCreated writes a standardized 201 response
func HandleCreated(logger *zap.Logger, c echo.Context, data interface{}) error {
	return respond(logger, c, http.StatusCreated, data)
}

func respond(logger *zap.Logger, c echo.Context, status int, data interface{}) error {
	resp := success{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(status, resp)
}

// HandleError centralizes error handling and logging using provided logger
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)

	var appErr errors.AppError
	if !stdErrors.As(toAppError(c, err), &appErr) {
		appErr = errors.ErrInternal(err)
	}

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Any("app_code", appErr.Code),
			zap.Error(err),
		)
	}

	info := ""
	if appErr.Raw != nil {
		info = appErr.Raw.Error()
	}

	body := errs{
		Code:    appErr.Code,
		Message: appErr.Message,
		Info:    info,
		Details: appErr.Details,
	}

	return c.JSON(appErr.HTTPCode, body)
}
