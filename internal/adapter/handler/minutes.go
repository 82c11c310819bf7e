package handler

import (
	"encoding/json"
	stdErrors "errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/errors"
	"github.com/johnquangdev/meeting-minutes/internal/adapter/dto/minutes"
	"github.com/johnquangdev/meeting-minutes/internal/adapter/presenter"
	usecaseErrors "github.com/johnquangdev/meeting-minutes/internal/usecase/errors"
	minutesUsecase "github.com/johnquangdev/meeting-minutes/internal/usecase/minutes"
	"github.com/johnquangdev/meeting-minutes/pkg/mom"
)

// Minutes handles minutes-of-meeting HTTP requests
type Minutes struct {
	svc    minutesUsecase.Service
	logger *zap.Logger
}

// NewMinutesHandler creates a new minutes handler
func NewMinutesHandler(svc minutesUsecase.Service, logger *zap.Logger) *Minutes {
	return &Minutes{svc: svc, logger: logger}
}

// meetingErr names the meeting in not-found and conflict errors when
// the id came from the body rather than the path
func meetingErr(err error, meetingID string) error {
	switch {
	case stdErrors.Is(err, usecaseErrors.ErrMinutesNotFound):
		return errors.ErrMinutesNotFound(meetingID)
	case stdErrors.Is(err, usecaseErrors.ErrMinutesAlreadyExists):
		return errors.ErrMinutesAlreadyExists(meetingID)
	}
	return err
}

// Create handles POST /mom
// @Summary      Store meeting minutes
// @Description  Stores the minutes of a meeting. mom_data may be a bare record or a {"mom_data": ...} envelope
// @Tags         Minutes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      minutes.CreateMinutesRequest  true  "Minutes to store"
// @Success      201      {object}  minutes.MinutesResponse
// @Failure      400      {object}  map[string]interface{}  "Invalid request or missing organizer"
// @Failure      409      {object}  map[string]interface{}  "Minutes already exist for this meeting"
// @Router       /mom [post]
func (h *Minutes) Create(c echo.Context) error {
	var req minutes.CreateMinutesRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidationFailed(err))
	}

	record, err := h.svc.Create(c.Request().Context(), minutesUsecase.CreateInput{
		MeetingID: req.MeetingID,
		EventID:   req.EventID,
		Subject:   req.Subject,
		MomData:   req.MomData,
		Attendees: req.Attendees,
	})
	if err != nil {
		return HandleError(h.logger, c, meetingErr(err, req.MeetingID))
	}
	return HandleCreated(h.logger, c, presenter.ToMinutesResponse(record))
}

// Get handles GET /mom/:meeting_id
// @Summary      Get meeting minutes
// @Tags         Minutes
// @Produce      json
// @Security     BearerAuth
// @Param        meeting_id  path      string  true  "Meeting ID"
// @Success      200         {object}  minutes.MinutesResponse
// @Failure      404         {object}  map[string]interface{}  "Meeting ID not found"
// @Router       /mom/{meeting_id} [get]
func (h *Minutes) Get(c echo.Context) error {
	record, err := h.svc.Get(c.Request().Context(), c.Param("meeting_id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMinutesResponse(record))
}

// List handles GET /mom
// @Summary      List meeting minutes
// @Tags         Minutes
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  minutes.MinutesResponse
// @Router       /mom [get]
func (h *Minutes) List(c echo.Context) error {
	records, err := h.svc.List(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, errors.ErrDBQueryFailed("list minutes", err))
	}
	return HandleSuccess(h.logger, c, presenter.ToMinutesListResponse(records))
}

// Update handles PUT /mom/:meeting_id
// @Summary      Replace meeting minutes
// @Description  Body is a bare minutes record or a {"mom_data": ...} envelope
// @Tags         Minutes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        meeting_id  path      string  true  "Meeting ID"
// @Success      200         {object}  minutes.MinutesResponse
// @Failure      400         {object}  map[string]interface{}  "Invalid minutes"
// @Failure      404         {object}  map[string]interface{}  "Meeting ID not found"
// @Router       /mom/{meeting_id} [put]
func (h *Minutes) Update(c echo.Context) error {
	body, err := readBody(c)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}
	record, err := h.svc.Update(c.Request().Context(), c.Param("meeting_id"), json.RawMessage(body))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMinutesResponse(record))
}

// Text handles GET /mom/:meeting_id/text
// @Summary      Get minutes as editable text
// @Tags         Minutes
// @Produce      plain
// @Security     BearerAuth
// @Param        meeting_id  path      string  true  "Meeting ID"
// @Success      200         {string}  string  "Minutes text"
// @Failure      404         {object}  map[string]interface{}  "Meeting ID not found"
// @Router       /mom/{meeting_id}/text [get]
func (h *Minutes) Text(c echo.Context) error {
	text, err := h.svc.Text(c.Request().Context(), c.Param("meeting_id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.String(http.StatusOK, text)
}

// readText accepts a text/plain body or a {"text": ...} JSON body
func readText(c echo.Context) (string, error) {
	if isJSON(c) {
		var req minutes.TextRequest
		if err := c.Bind(&req); err != nil {
			return "", err
		}
		return req.Text, nil
	}
	body, err := readBody(c)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// UpdateText handles PUT /mom/:meeting_id/text
// @Summary      Replace minutes from edited text
// @Description  Parses the edited text and stores the result. Unrecognised lines are dropped
// @Tags         Minutes
// @Accept       plain,json
// @Produce      json
// @Security     BearerAuth
// @Param        meeting_id  path      string  true  "Meeting ID"
// @Success      200         {object}  mom.Envelope
// @Failure      404         {object}  map[string]interface{}  "Meeting ID not found"
// @Router       /mom/{meeting_id}/text [put]
func (h *Minutes) UpdateText(c echo.Context) error {
	text, err := readText(c)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}
	env, err := h.svc.UpdateFromText(c.Request().Context(), c.Param("meeting_id"), text)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, env)
}

// Format handles POST /mom/format
// @Summary      Render minutes as text
// @Description  Body is a bare minutes record or a {"mom_data": ...} envelope
// @Tags         Minutes
// @Accept       json
// @Produce      json
// @Param        request  body      mom.Envelope  true  "Minutes"
// @Success      200      {object}  minutes.TextResponse
// @Failure      400      {object}  map[string]interface{}  "Malformed JSON"
// @Router       /mom/format [post]
func (h *Minutes) Format(c echo.Context) error {
	body, err := readBody(c)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}
	text, err := mom.FormatJSON(body)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}
	return HandleSuccess(h.logger, c, minutes.TextResponse{Text: text})
}

// Parse handles POST /mom/parse
// @Summary      Parse minutes text
// @Tags         Minutes
// @Accept       plain,json
// @Produce      json
// @Param        request  body      minutes.TextRequest  true  "Minutes text"
// @Success      200      {object}  mom.Envelope
// @Router       /mom/parse [post]
func (h *Minutes) Parse(c echo.Context) error {
	text, err := readText(c)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}
	return HandleSuccess(h.logger, c, mom.Parse(text))
}

// Send handles POST /mom/send
// @Summary      Mail minutes to attendees
// @Description  Archives minutes.txt and minutes.html and mails them to the attendees. Stored attendees are used when none are given
// @Tags         Minutes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      minutes.SendMinutesRequest  true  "Recipients"
// @Success      200      {object}  minutesUsecase.SendResult
// @Failure      404      {object}  map[string]interface{}  "Meeting ID not found"
// @Failure      502      {object}  map[string]interface{}  "Error sending email"
// @Router       /mom/send [post]
func (h *Minutes) Send(c echo.Context) error {
	var req minutes.SendMinutesRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidationFailed(err))
	}

	res, err := h.svc.Send(c.Request().Context(), strings.TrimSpace(req.MeetingID), req.Attendees)
	if err != nil {
		return HandleError(h.logger, c, meetingErr(err, req.MeetingID))
	}
	return HandleSuccess(h.logger, c, res)
}

// CreateTasks handles POST /mom/:meeting_id/tasks
// @Summary      Create tracker tasks from action items
// @Tags         Minutes
// @Produce      json
// @Security     BearerAuth
// @Param        meeting_id  path      string  true  "Meeting ID"
// @Success      200         {object}  minutesUsecase.TasksResult
// @Failure      400         {object}  map[string]interface{}  "Minutes have no action items"
// @Failure      404         {object}  map[string]interface{}  "Meeting ID not found"
// @Router       /mom/{meeting_id}/tasks [post]
func (h *Minutes) CreateTasks(c echo.Context) error {
	res, err := h.svc.CreateTasks(c.Request().Context(), c.Param("meeting_id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, res)
}

// Summary handles GET /mom/:meeting_id/summary
// @Summary      Summarize stored minutes
// @Tags         Minutes
// @Produce      json
// @Security     BearerAuth
// @Param        meeting_id  path      string  true  "Meeting ID"
// @Success      200         {object}  map[string]interface{}
// @Failure      404         {object}  map[string]interface{}  "Meeting ID not found"
// @Failure      500         {object}  map[string]interface{}  "Failed to generate summary"
// @Router       /mom/{meeting_id}/summary [get]
func (h *Minutes) Summary(c echo.Context) error {
	sum, err := h.svc.Summary(c.Request().Context(), c.Param("meeting_id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{"summary": sum})
}

// Archives handles GET /mom/:meeting_id/archive
// @Summary      List archived minutes documents
// @Tags         Minutes
// @Produce      json
// @Security     BearerAuth
// @Param        meeting_id  path      string  true  "Meeting ID"
// @Success      200         {array}   string
// @Failure      404         {object}  map[string]interface{}  "Meeting ID not found"
// @Router       /mom/{meeting_id}/archive [get]
func (h *Minutes) Archives(c echo.Context) error {
	files, err := h.svc.Archives(c.Request().Context(), c.Param("meeting_id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, files)
}
