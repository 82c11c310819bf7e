package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/external/jira"
	usecaseErrors "github.com/johnquangdev/meeting-minutes/internal/usecase/errors"
	"github.com/johnquangdev/meeting-minutes/pkg/mom"
)

// Tracker is the issue tracker the service talks to
type Tracker interface {
	SearchTasks(ctx context.Context) ([]entities.Task, error)
	GetProject(ctx context.Context, idOrKey string) (*entities.Project, error)
	FindAccountID(ctx context.Context, email string) (string, error)
	CreateIssue(ctx context.Context, in jira.IssueInput) (*jira.CreatedIssue, error)
	UpdateDueDate(ctx context.Context, issueKey, dueDate string) error
	UpdateFields(ctx context.Context, issueKey string, fields map[string]interface{}) error
}

var _ Tracker = (*jira.Client)(nil)

// Per-task creation outcomes
const (
	ResultSuccess = "success"
	ResultFailed  = "failed"

	msgInvalidEmail   = "Invalid or unrecognized email"
	msgCreationFailed = "Task creation failed"
)

// CreateResult reports what happened to one requested task. Email echoes
// the requested assignee; TaskID is set on success and Reason on failure.
type CreateResult struct {
	Email   string `json:"email"`
	Summary string `json:"summary"`
	Status  string `json:"status"`
	TaskID  string `json:"task_id,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// Service defines issue tracker operations used by the dashboard
type Service interface {
	All(ctx context.Context) ([]entities.Task, error)
	List(ctx context.Context, q Query) (*Page, error)
	Overdue(ctx context.Context, now time.Time) ([]entities.Task, error)
	Unassigned(ctx context.Context) ([]entities.Task, error)
	Stats(ctx context.Context, now time.Time) (*Stats, error)
	Project(ctx context.Context, id string) (*entities.Project, error)
	CreateTasks(ctx context.Context, reqs []mom.TaskRequest) ([]CreateResult, error)
	UpdateFields(ctx context.Context, issueKey string, fields map[string]interface{}) error
	SaveMeetingTasks(ctx context.Context, meetingID, subject string, keys []string) (*entities.MeetingTasks, error)
	GetMeetingTasks(ctx context.Context, meetingID string) (*entities.MeetingTasks, error)
	ListMeetingTasks(ctx context.Context) ([]*entities.MeetingTasks, error)
}

type tasksService struct {
	tracker    Tracker
	links      repositories.MeetingTasksRepository
	cache      cache.Store
	projectTTL time.Duration
	logger     *zap.Logger
}

// NewService creates the tasks service. cache may be nil to disable project caching.
func NewService(
	tracker Tracker,
	links repositories.MeetingTasksRepository,
	store cache.Store,
	projectTTL time.Duration,
	logger *zap.Logger,
) Service {
	return &tasksService{
		tracker:    tracker,
		links:      links,
		cache:      store,
		projectTTL: projectTTL,
		logger:     logger,
	}
}

func trackerErr(op string, err error) error {
	if errors.Is(err, jira.ErrNotFound) {
		return fmt.Errorf("%s: %w: %w", op, usecaseErrors.ErrNotFound, err)
	}
	return fmt.Errorf("%s: %w: %w", op, usecaseErrors.ErrTrackerFailed, err)
}

// All returns every task of the configured project
func (s *tasksService) All(ctx context.Context) ([]entities.Task, error) {
	tasks, err := s.tracker.SearchTasks(ctx)
	if err != nil {
		return nil, trackerErr("search tasks", err)
	}
	return tasks, nil
}

// List filters tasks by status and returns the requested page
func (s *tasksService) List(ctx context.Context, q Query) (*Page, error) {
	tasks, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	status := q.Status
	if status == "" {
		status = entities.TaskStatusAll
	}
	page := Paginate(FilterByStatus(tasks, status), q.Page, q.PageSize)
	page.Status = status
	return &page, nil
}

// Overdue returns open tasks past their due date
func (s *tasksService) Overdue(ctx context.Context, now time.Time) ([]entities.Task, error) {
	tasks, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	return Overdue(tasks, now), nil
}

// Unassigned returns tasks nobody owns
func (s *tasksService) Unassigned(ctx context.Context) ([]entities.Task, error) {
	tasks, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	return Unassigned(tasks), nil
}

// Stats returns dashboard counters
func (s *tasksService) Stats(ctx context.Context, now time.Time) (*Stats, error) {
	tasks, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	stats := ComputeStats(tasks, now)
	return &stats, nil
}

func projectCacheKey(id string) string {
	return "project:" + id
}

// Project returns project metadata, served from cache when possible
func (s *tasksService) Project(ctx context.Context, id string) (*entities.Project, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: project id is required", usecaseErrors.ErrInvalidInput)
	}

	key := projectCacheKey(id)
	if s.cache != nil {
		raw, found, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			s.warn("project cache read failed", zap.String("key", key), zap.Error(err))
		case found:
			var p entities.Project
			if err := json.Unmarshal([]byte(raw), &p); err == nil {
				return &p, nil
			}
			s.warn("project cache entry unreadable", zap.String("key", key))
		}
	}

	project, err := s.tracker.GetProject(ctx, id)
	if err != nil {
		return nil, trackerErr("get project", err)
	}

	if s.cache != nil {
		if b, err := json.Marshal(project); err == nil {
			if err := s.cache.Set(ctx, key, string(b), s.projectTTL); err != nil {
				s.warn("project cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return project, nil
}

// CreateTasks creates one tracker issue per request. A failure on one
// task is reported in its result and does not stop the others.
func (s *tasksService) CreateTasks(ctx context.Context, reqs []mom.TaskRequest) ([]CreateResult, error) {
	if len(reqs) == 0 {
		return nil, fmt.Errorf("%w: at least one task is required", usecaseErrors.ErrInvalidInput)
	}

	results := make([]CreateResult, 0, len(reqs))
	for _, req := range reqs {
		results = append(results, s.createOne(ctx, req))
	}
	return results, nil
}

func (s *tasksService) createOne(ctx context.Context, req mom.TaskRequest) CreateResult {
	summary := strings.TrimSpace(req.Summary)
	if summary == "" {
		summary = mom.DefaultSummary
	}
	res := CreateResult{Email: req.AssigneeEmail, Summary: summary, Status: ResultFailed}

	email := strings.TrimSpace(req.AssigneeEmail)
	if email == "" {
		res.Reason = msgInvalidEmail
		return res
	}
	accountID, err := s.tracker.FindAccountID(ctx, email)
	if err != nil || accountID == "" {
		if err != nil {
			s.warn("account lookup failed", zap.String("email", email), zap.Error(err))
		}
		res.Reason = msgInvalidEmail
		return res
	}

	created, err := s.tracker.CreateIssue(ctx, jira.IssueInput{
		Summary:     summary,
		Description: req.Description,
		AccountID:   accountID,
	})
	if err != nil {
		s.warn("issue creation failed", zap.String("summary", summary), zap.Error(err))
		res.Reason = msgCreationFailed
		return res
	}

	if due := strings.TrimSpace(req.DueDate); due != "" {
		if err := s.tracker.UpdateDueDate(ctx, created.Key, due); err != nil {
			s.warn("due date update failed",
				zap.String("issue", created.Key),
				zap.String("due_date", due),
				zap.Error(err),
			)
		}
	}

	if s.logger != nil {
		s.logger.Info("jira issue created", zap.String("issue", created.Key))
	}
	res.Status = ResultSuccess
	res.TaskID = created.Key
	return res
}

// UpdateFields sets arbitrary fields on an issue
func (s *tasksService) UpdateFields(ctx context.Context, issueKey string, fields map[string]interface{}) error {
	if strings.TrimSpace(issueKey) == "" {
		return fmt.Errorf("%w: issue key is required", usecaseErrors.ErrInvalidInput)
	}
	if len(fields) == 0 {
		return usecaseErrors.ErrNoFieldsToUpdate
	}
	if err := s.tracker.UpdateFields(ctx, issueKey, fields); err != nil {
		return trackerErr("update fields", err)
	}
	return nil
}

// SaveMeetingTasks links issue keys to a meeting
func (s *tasksService) SaveMeetingTasks(ctx context.Context, meetingID, subject string, keys []string) (*entities.MeetingTasks, error) {
	if strings.TrimSpace(meetingID) == "" {
		return nil, fmt.Errorf("%w: meeting_id is required", usecaseErrors.ErrInvalidInput)
	}
	links, err := s.links.AddTasks(ctx, meetingID, subject, keys)
	if err != nil {
		return nil, fmt.Errorf("failed to save meeting tasks: %w", err)
	}
	return links, nil
}

// GetMeetingTasks returns the issue keys recorded for a meeting
func (s *tasksService) GetMeetingTasks(ctx context.Context, meetingID string) (*entities.MeetingTasks, error) {
	links, err := s.links.FindByMeetingID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, entities.ErrMeetingTasksNotFound) {
			return nil, usecaseErrors.ErrMeetingTasksNotFound
		}
		return nil, fmt.Errorf("failed to get meeting tasks: %w", err)
	}
	return links, nil
}

// ListMeetingTasks returns every meeting with recorded issues
func (s *tasksService) ListMeetingTasks(ctx context.Context) ([]*entities.MeetingTasks, error) {
	links, err := s.links.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list meeting tasks: %w", err)
	}
	return links, nil
}

func (s *tasksService) warn(msg string, fields ...zap.Field) {
	if s.logger != nil {
		s.logger.Warn(msg, fields...)
	}
}
