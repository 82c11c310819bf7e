package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/errors"
	"github.com/johnquangdev/meeting-minutes/internal/adapter/dto/notify"
	notifyUsecase "github.com/johnquangdev/meeting-minutes/internal/usecase/notify"
)

// Notify handles alert and reminder HTTP requests
type Notify struct {
	svc    notifyUsecase.Service
	tasks  notifyUsecase.TaskLister
	logger *zap.Logger
}

// NewNotifyHandler creates a new notify handler. tasks supplies the
// tracker tasks checked when /detect is called without a task list.
func NewNotifyHandler(svc notifyUsecase.Service, tasks notifyUsecase.TaskLister, logger *zap.Logger) *Notify {
	return &Notify{svc: svc, tasks: tasks, logger: logger}
}

// SendEmail handles POST /send-email
// @Summary      Send a missing-fields alert
// @Tags         Notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      notify.SendEmailRequest  true  "Alert"
// @Success      200      {object}  common.MessageResponse
// @Failure      502      {object}  map[string]interface{}  "Error sending email"
// @Router       /send-email [post]
func (h *Notify) SendEmail(c echo.Context) error {
	var req notify.SendEmailRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidationFailed(err))
	}

	err := h.svc.SendMissingFieldsAlert(c.Request().Context(), notifyUsecase.AlertInput{
		To:            req.To,
		TaskID:        req.TaskID,
		MissingFields: req.MissingFields,
		CC:            req.CC,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]string{"message": "Email sent successfully"})
}

// Detect handles POST /detect
// @Summary      Detect tasks with missing fields
// @Description  Checks the given tasks, or every tracker task when none are given, and alerts the organizer and assignees
// @Tags         Notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      notify.DetectRequest  false  "Tasks to check"
// @Success      200      {array}   notifyUsecase.Detection
// @Router       /detect [post]
func (h *Notify) Detect(c echo.Context) error {
	var req notify.DetectRequest
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
		}
	}

	list := req.Tasks
	if len(list) == 0 {
		all, err := h.tasks.All(c.Request().Context())
		if err != nil {
			return HandleError(h.logger, c, err)
		}
		list = all
	}

	detections, err := h.svc.DetectMissingFields(c.Request().Context(), list)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, detections)
}

// SendReminders handles POST /send-mail-to-assignee
// @Summary      Remind assignees of issues
// @Tags         Notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      notify.ReminderRequest  true  "Issue keys"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  map[string]interface{}  "No issues provided"
// @Failure      502      {object}  map[string]interface{}  "Reminder webhook failed"
// @Router       /send-mail-to-assignee [post]
func (h *Notify) SendReminders(c echo.Context) error {
	var req notify.ReminderRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}

	if err := h.svc.SendReminders(c.Request().Context(), req.Issues); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{
		"success": true,
		"issues":  req.Issues,
	})
}
