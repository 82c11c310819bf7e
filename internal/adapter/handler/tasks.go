package handler

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/errors"
	"github.com/johnquangdev/meeting-minutes/internal/adapter/dto/tasks"
	"github.com/johnquangdev/meeting-minutes/internal/adapter/presenter"
	taskUsecase "github.com/johnquangdev/meeting-minutes/internal/usecase/tasks"
	"github.com/johnquangdev/meeting-minutes/pkg/mom"
)

// Tasks handles issue tracker HTTP requests
type Tasks struct {
	svc    taskUsecase.Service
	logger *zap.Logger
	now    func() time.Time
}

// NewTasksHandler creates a new tasks handler
func NewTasksHandler(svc taskUsecase.Service, logger *zap.Logger) *Tasks {
	return &Tasks{svc: svc, logger: logger, now: time.Now}
}

// List handles GET /tasks
// @Summary      List tracker tasks
// @Description  Filters by status (All, To Do, In Progress, Done) and paginates. Page size defaults to 5
// @Tags         Tasks
// @Produce      json
// @Security     BearerAuth
// @Param        status     query     string  false  "Status filter"  default(All)
// @Param        page       query     int     false  "Page number"    default(1)
// @Param        page_size  query     int     false  "Page size"      default(5)
// @Success      200        {object}  tasks.TaskListResponse
// @Failure      502        {object}  map[string]interface{}  "Jira operation failed"
// @Router       /tasks [get]
func (h *Tasks) List(c echo.Context) error {
	var req tasks.ListTasksRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidationFailed(err))
	}

	page, err := h.svc.List(c.Request().Context(), taskUsecase.Query{
		Status:   req.Status,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToTaskListResponse(page))
}

// Overdue handles GET /tasks/overdue
// @Summary      List overdue tasks
// @Tags         Tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   entities.Task
// @Router       /tasks/overdue [get]
func (h *Tasks) Overdue(c echo.Context) error {
	list, err := h.svc.Overdue(c.Request().Context(), h.now())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, list)
}

// Unassigned handles GET /tasks/unassigned
// @Summary      List unassigned tasks
// @Tags         Tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   entities.Task
// @Router       /tasks/unassigned [get]
func (h *Tasks) Unassigned(c echo.Context) error {
	list, err := h.svc.Unassigned(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, list)
}

// Stats handles GET /tasks/stats
// @Summary      Task counters
// @Tags         Tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  taskUsecase.Stats
// @Router       /tasks/stats [get]
func (h *Tasks) Stats(c echo.Context) error {
	stats, err := h.svc.Stats(c.Request().Context(), h.now())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, stats)
}

// Project handles GET /project/:id
// @Summary      Get project details
// @Tags         Tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project ID or key"
// @Success      200  {object}  entities.Project
// @Failure      502  {object}  map[string]interface{}  "Jira operation failed"
// @Router       /project/{id} [get]
func (h *Tasks) Project(c echo.Context) error {
	project, err := h.svc.Project(c.Request().Context(), c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, project)
}

// CreateTasks handles POST /create-tasks
// @Summary      Create tracker tasks
// @Description  Body is an array of tasks. Each task reports success or failure on its own
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      []mom.TaskRequest  true  "Tasks to create"
// @Success      200      {array}   taskUsecase.CreateResult
// @Failure      400      {object}  map[string]interface{}  "Invalid input. Expected an array of tasks."
// @Router       /create-tasks [post]
func (h *Tasks) CreateTasks(c echo.Context) error {
	var reqs []mom.TaskRequest
	if err := c.Bind(&reqs); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("Invalid input. Expected an array of tasks."))
	}

	results, err := h.svc.CreateTasks(c.Request().Context(), reqs)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, results)
}

// UpdateMissingFields handles POST /update-missing-fields/:issueKey
// @Summary      Update tracker issue fields
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        issueKey  path      string                     true  "Issue key"
// @Param        request   body      tasks.UpdateFieldsRequest  true  "Fields to set"
// @Success      200       {object}  common.MessageResponse
// @Failure      400       {object}  map[string]interface{}  "No fields to update"
// @Router       /update-missing-fields/{issueKey} [post]
func (h *Tasks) UpdateMissingFields(c echo.Context) error {
	var req tasks.UpdateFieldsRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}

	issueKey := c.Param("issueKey")
	if err := h.svc.UpdateFields(c.Request().Context(), issueKey, req.Fields()); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]string{"message": "Issue " + issueKey + " updated"})
}

// SaveMeetingTasks handles POST /save-tasks-by-meeting-id
// @Summary      Link tracker issues to a meeting
// @Description  Creates the link when missing; issue keys already linked are skipped
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      tasks.SaveMeetingTasksRequest  true  "Meeting and issue keys"
// @Success      201      {object}  entities.MeetingTasks
// @Failure      400      {object}  map[string]interface{}  "Meeting ID, subject, and tasks array are required"
// @Router       /save-tasks-by-meeting-id [post]
func (h *Tasks) SaveMeetingTasks(c echo.Context) error {
	var req tasks.SaveMeetingTasksRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidationFailed(err))
	}

	links, err := h.svc.SaveMeetingTasks(c.Request().Context(), req.MeetingID, req.Subject, req.Tasks)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleCreated(h.logger, c, links)
}

// GetMeetingTasks handles GET /get-tasks-by-meeting-id/:meeting_id
// @Summary      Get issues linked to a meeting
// @Tags         Tasks
// @Produce      json
// @Security     BearerAuth
// @Param        meeting_id  path      string  true  "Meeting ID"
// @Success      200         {object}  entities.MeetingTasks
// @Failure      404         {object}  map[string]interface{}  "No tasks for this meeting"
// @Router       /get-tasks-by-meeting-id/{meeting_id} [get]
func (h *Tasks) GetMeetingTasks(c echo.Context) error {
	links, err := h.svc.GetMeetingTasks(c.Request().Context(), c.Param("meeting_id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, links)
}

// ListMeetingTasks handles GET /get-all-tasks
// @Summary      List all meeting task links
// @Tags         Tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  entities.MeetingTasks
// @Router       /get-all-tasks [get]
func (h *Tasks) ListMeetingTasks(c echo.Context) error {
	links, err := h.svc.ListMeetingTasks(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, links)
}
