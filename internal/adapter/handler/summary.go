package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/errors"
	usecaseErrors "github.com/johnquangdev/meeting-minutes/internal/usecase/errors"
	summaryUsecase "github.com/johnquangdev/meeting-minutes/internal/usecase/summary"
	"github.com/johnquangdev/meeting-minutes/pkg/mom"
)

// Summary handles AI summary HTTP requests
type Summary struct {
	svc    summaryUsecase.Service
	logger *zap.Logger
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(svc summaryUsecase.Service, logger *zap.Logger) *Summary {
	return &Summary{svc: svc, logger: logger}
}

func (h *Summary) minutes(c echo.Context) (mom.MeetingMinutes, error) {
	body, err := readBody(c)
	if err != nil {
		return mom.MeetingMinutes{}, errors.ErrInvalidPayload(err)
	}
	m, err := mom.Decode(body)
	if err != nil {
		return mom.MeetingMinutes{}, errors.ErrInvalidPayload(err)
	}
	if m.IsEmpty() {
		return mom.MeetingMinutes{}, errors.ErrInvalidArgument(usecaseErrors.ErrMissingMinutes.Error())
	}
	return m, nil
}

// Generate handles POST /generate-summary
// @Summary      Summarize minutes
// @Description  Body is a bare minutes record or a {"mom_data": ...} envelope
// @Tags         AI
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      mom.Envelope  true  "Minutes"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  map[string]interface{}  "MOM data is required in request body."
// @Failure      500      {object}  map[string]interface{}  "Failed to generate summary"
// @Router       /generate-summary [post]
func (h *Summary) Generate(c echo.Context) error {
	m, err := h.minutes(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	sum, err := h.svc.Summarize(c.Request().Context(), m)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{"summary": sum})
}

// Agenda handles POST /generate-agenda
// @Summary      Generate a follow-up agenda
// @Tags         AI
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      mom.Envelope  true  "Minutes"
// @Success      200      {object}  summaryUsecase.Agenda
// @Failure      400      {object}  map[string]interface{}  "MOM data is required in request body."
// @Router       /generate-agenda [post]
func (h *Summary) Agenda(c echo.Context) error {
	m, err := h.minutes(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	agenda, err := h.svc.Agenda(c.Request().Context(), m)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{"agenda": agenda})
}
