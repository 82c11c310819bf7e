package handler

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/errors"
	"github.com/johnquangdev/meeting-minutes/internal/adapter/dto/meetings"
	meetingsUsecase "github.com/johnquangdev/meeting-minutes/internal/usecase/meetings"
)

// Meetings handles calendar HTTP requests
type Meetings struct {
	svc    meetingsUsecase.Service
	logger *zap.Logger
	now    func() time.Time
}

// NewMeetingsHandler creates a new meetings handler
func NewMeetingsHandler(svc meetingsUsecase.Service, logger *zap.Logger) *Meetings {
	return &Meetings{svc: svc, logger: logger, now: time.Now}
}

// Schedule handles POST /meetings/schedule-meeting
// @Summary      Schedule a meeting
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      meetings.ScheduleMeetingRequest  true  "Meeting"
// @Success      200      {object}  entities.Event
// @Failure      400      {object}  map[string]interface{}  "Access token is required"
// @Failure      502      {object}  map[string]interface{}  "Calendar operation failed"
// @Router       /meetings/schedule-meeting [post]
func (h *Meetings) Schedule(c echo.Context) error {
	var req meetings.ScheduleMeetingRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidationFailed(err))
	}

	ev, err := h.svc.Schedule(c.Request().Context(), meetingsUsecase.ScheduleRequest{
		Subject:   req.Subject,
		Body:      req.Body,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		TimeZone:  req.TimeZone,
		Attendees: req.Attendees,
		Online:    req.IsOnlineMeeting,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, ev)
}

// Upcoming handles GET /meetings/upcoming-events
// @Summary      List upcoming meetings
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   entities.Event
// @Router       /meetings/upcoming-events [get]
func (h *Meetings) Upcoming(c echo.Context) error {
	events, err := h.svc.Upcoming(c.Request().Context(), h.now())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, events)
}

// Past handles GET /meetings/past-events
// @Summary      List past meetings
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   entities.Event
// @Router       /meetings/past-events [get]
func (h *Meetings) Past(c echo.Context) error {
	events, err := h.svc.Past(c.Request().Context(), h.now())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, events)
}

// Users handles GET /meetings/fetch-users
// @Summary      List directory users
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   entities.DirectoryUser
// @Router       /meetings/fetch-users [get]
func (h *Meetings) Users(c echo.Context) error {
	users, err := h.svc.Users(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, users)
}

// FollowUp handles POST /meetings/follow-up/:meeting_id
// @Summary      Schedule a follow-up meeting
// @Description  Generates an agenda from the stored minutes and schedules a meeting with it. Duration defaults to 30 minutes
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        meeting_id  path      string                    true  "Meeting ID"
// @Param        request     body      meetings.FollowUpRequest  true  "Follow-up"
// @Success      200         {object}  meetingsUsecase.FollowUp
// @Failure      404         {object}  map[string]interface{}  "Meeting ID not found"
// @Router       /meetings/follow-up/{meeting_id} [post]
func (h *Meetings) FollowUp(c echo.Context) error {
	var req meetings.FollowUpRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidationFailed(err))
	}

	res, err := h.svc.ScheduleFollowUp(c.Request().Context(), c.Param("meeting_id"), meetingsUsecase.FollowUpRequest{
		Subject:         req.Subject,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		TimeZone:        req.TimeZone,
		Attendees:       req.Attendees,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, res)
}
