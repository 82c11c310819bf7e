package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg             *config.Config
	minutesHandler  *Minutes
	tasksHandler    *Tasks
	notifyHandler   *Notify
	summaryHandler  *Summary
	meetingsHandler *Meetings
	auth            echo.MiddlewareFunc
}

// NewRouter creates a new router with all handlers. auth guards the /v1
// group when non-nil.
func NewRouter(
	cfg *config.Config,
	minutesHandler *Minutes,
	tasksHandler *Tasks,
	notifyHandler *Notify,
	summaryHandler *Summary,
	meetingsHandler *Meetings,
	auth echo.MiddlewareFunc,
) *Router {
	return &Router{
		cfg:             cfg,
		minutesHandler:  minutesHandler,
		tasksHandler:    tasksHandler,
		notifyHandler:   notifyHandler,
		summaryHandler:  summaryHandler,
		meetingsHandler: meetingsHandler,
		auth:            auth,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")
	if rt.auth != nil {
		v1.Use(rt.auth)
	}

	rt.setupMinutesRoutes(v1)
	rt.setupTaskRoutes(v1)
	rt.setupNotifyRoutes(v1)
	rt.setupSummaryRoutes(v1)
	rt.setupMeetingRoutes(v1)
}

// setupMinutesRoutes configures minutes-of-meeting routes
func (rt *Router) setupMinutesRoutes(g *echo.Group) {
	h := rt.minutesHandler
	if h == nil {
		g.Any("/mom*", rt.notImplemented)
		return
	}

	g.POST("/mom", h.Create)
	g.GET("/mom", h.List)
	g.POST("/mom/format", h.Format)
	g.POST("/mom/parse", h.Parse)
	g.POST("/mom/send", h.Send)
	g.GET("/mom/:meeting_id", h.Get)
	g.PUT("/mom/:meeting_id", h.Update)
	g.GET("/mom/:meeting_id/text", h.Text)
	g.PUT("/mom/:meeting_id/text", h.UpdateText)
	g.POST("/mom/:meeting_id/tasks", h.CreateTasks)
	g.GET("/mom/:meeting_id/summary", h.Summary)
	g.GET("/mom/:meeting_id/archive", h.Archives)
}

// setupTaskRoutes configures issue tracker routes
func (rt *Router) setupTaskRoutes(g *echo.Group) {
	h := rt.tasksHandler
	if h == nil {
		return
	}

	g.GET("/tasks", h.List)
	g.GET("/tasks/overdue", h.Overdue)
	g.GET("/tasks/unassigned", h.Unassigned)
	g.GET("/tasks/stats", h.Stats)
	g.GET("/project/:id", h.Project)
	g.POST("/create-tasks", h.CreateTasks)
	g.POST("/update-missing-fields/:issueKey", h.UpdateMissingFields)
	g.POST("/save-tasks-by-meeting-id", h.SaveMeetingTasks)
	g.GET("/get-tasks-by-meeting-id/:meeting_id", h.GetMeetingTasks)
	g.GET("/get-all-tasks", h.ListMeetingTasks)
}

// setupNotifyRoutes configures alert and reminder routes
func (rt *Router) setupNotifyRoutes(g *echo.Group) {
	h := rt.notifyHandler
	if h == nil {
		return
	}

	g.POST("/send-email", h.SendEmail)
	g.POST("/detect", h.Detect)
	g.POST("/send-mail-to-assignee", h.SendReminders)
}

// setupSummaryRoutes configures AI routes
func (rt *Router) setupSummaryRoutes(g *echo.Group) {
	h := rt.summaryHandler
	if h == nil {
		return
	}

	g.POST("/generate-summary", h.Generate)
	g.POST("/generate-agenda", h.Agenda)
}

// setupMeetingRoutes configures calendar routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	h := rt.meetingsHandler
	if h == nil {
		return
	}

	meetings := g.Group("/meetings")
	meetings.POST("/schedule-meeting", h.Schedule)
	meetings.GET("/upcoming-events", h.Upcoming)
	meetings.GET("/past-events", h.Past)
	meetings.GET("/fetch-users", h.Users)
	meetings.POST("/follow-up/:meeting_id", h.FollowUp)
}

// notImplemented returns 501 Not Implemented response
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]interface{}{
		"error":   "This endpoint is not yet implemented",
		"path":    c.Request().URL.Path,
		"method":  c.Request().Method,
		"message": "Please initialize the required handler in main.go",
	})
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	env := "production"
	if rt.cfg != nil {
		env = rt.cfg.Server.Environment
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": env,
	})
}
