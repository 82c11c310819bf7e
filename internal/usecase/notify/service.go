package notify

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/external/automation"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/external/sendgrid"
	usecaseErrors "github.com/johnquangdev/meeting-minutes/internal/usecase/errors"
)

// Mailer delivers transactional email
type Mailer interface {
	Send(ctx context.Context, msg sendgrid.Message) error
}

// Reminder triggers assignee reminders in the tracker
type Reminder interface {
	TriggerReminders(ctx context.Context, issues []string) error
}

var (
	_ Mailer   = (*sendgrid.Client)(nil)
	_ Reminder = (*automation.Client)(nil)
)

// noEmail is reported for tasks whose assignee has no address
const noEmail = "N/A"

// Detection is one task found with missing fields
type Detection struct {
	TaskID        string   `json:"task_id"`
	Email         string   `json:"email"`
	MissingFields []string `json:"missing_fields"`
}

// AlertInput addresses a missing-fields alert
type AlertInput struct {
	To            string
	TaskID        string
	MissingFields []string
	CC            []string
}

// Service defines notification operations
type Service interface {
	SendMissingFieldsAlert(ctx context.Context, in AlertInput) error
	NotifyAssignee(ctx context.Context, to, taskID string, missingFields []string) error
	DetectMissingFields(ctx context.Context, tasks []entities.Task) ([]Detection, error)
	SendReminders(ctx context.Context, issues []string) error
}

type notifyService struct {
	mailer    Mailer
	reminder  Reminder
	organizer string
	boardURL  func(taskID string) string
	logger    *zap.Logger
}

// NewService creates the notification service. organizer receives
// missing-field alerts; boardURL links a task on the tracker board.
func NewService(mailer Mailer, reminder Reminder, organizer string, boardURL func(string) string, logger *zap.Logger) Service {
	return &notifyService{
		mailer:    mailer,
		reminder:  reminder,
		organizer: organizer,
		boardURL:  boardURL,
		logger:    logger,
	}
}

func (s *notifyService) data(taskID string, fields []string) mailData {
	return mailData{TaskID: taskID, Fields: fields, BoardURL: s.boardURL(taskID)}
}

// SendMissingFieldsAlert mails the list of missing fields of a task
func (s *notifyService) SendMissingFieldsAlert(ctx context.Context, in AlertInput) error {
	if strings.TrimSpace(in.To) == "" || strings.TrimSpace(in.TaskID) == "" {
		return fmt.Errorf("%w: to and task_id are required", usecaseErrors.ErrInvalidInput)
	}

	d := s.data(in.TaskID, in.MissingFields)
	html, err := render(alertHTML, d)
	if err != nil {
		return fmt.Errorf("failed to render alert: %w", err)
	}

	msg := sendgrid.Message{
		To:      []string{in.To},
		CC:      in.CC,
		Subject: alertSubject(in.TaskID),
		Text:    alertText(d),
		HTML:    html,
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("%w: %w", usecaseErrors.ErrEmailFailed, err)
	}

	if s.logger != nil {
		s.logger.Info("missing fields alert sent",
			zap.String("task_id", in.TaskID),
			zap.String("to", in.To),
			zap.Strings("missing_fields", in.MissingFields),
		)
	}
	return nil
}

// NotifyAssignee tells an assignee about their task
func (s *notifyService) NotifyAssignee(ctx context.Context, to, taskID string, missingFields []string) error {
	if strings.TrimSpace(to) == "" || strings.TrimSpace(taskID) == "" {
		return fmt.Errorf("%w: to and task_id are required", usecaseErrors.ErrInvalidInput)
	}

	d := s.data(taskID, missingFields)
	html, err := render(assigneeHTML, d)
	if err != nil {
		return fmt.Errorf("failed to render notice: %w", err)
	}

	msg := sendgrid.Message{
		To:      []string{to},
		Subject: assigneeSubject(taskID),
		Text:    assigneeText(d),
		HTML:    html,
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("%w: %w", usecaseErrors.ErrEmailFailed, err)
	}
	return nil
}

// DetectMissingFields alerts the organizer and the assignee about every
// task with blank required fields. Mail failures are logged and do not
// stop detection.
func (s *notifyService) DetectMissingFields(ctx context.Context, tasks []entities.Task) ([]Detection, error) {
	detections := []Detection{}
	for _, t := range tasks {
		missing := t.MissingFields()
		if len(missing) == 0 {
			continue
		}

		taskID := taskRef(t)
		email := strings.TrimSpace(t.AssigneeEmail)

		if s.organizer != "" {
			if err := s.SendMissingFieldsAlert(ctx, AlertInput{To: s.organizer, TaskID: taskID, MissingFields: missing}); err != nil {
				s.warn("organizer alert failed", zap.String("task_id", taskID), zap.Error(err))
			}
		} else {
			s.warn("organizer email not configured, alert skipped", zap.String("task_id", taskID))
		}

		if email != "" {
			if err := s.NotifyAssignee(ctx, email, taskID, missing); err != nil {
				s.warn("assignee notice failed", zap.String("task_id", taskID), zap.Error(err))
			}
		} else {
			s.warn("task has no assignee email", zap.String("task_id", taskID))
			email = noEmail
		}

		detections = append(detections, Detection{TaskID: taskID, Email: email, MissingFields: missing})
	}
	return detections, nil
}

// SendReminders asks the tracker automation to remind the assignees of issues
func (s *notifyService) SendReminders(ctx context.Context, issues []string) error {
	keys := make([]string, 0, len(issues))
	for _, k := range issues {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return usecaseErrors.ErrNoIssues
	}
	if err := s.reminder.TriggerReminders(ctx, keys); err != nil {
		return fmt.Errorf("%w: %w", usecaseErrors.ErrReminderFailed, err)
	}
	return nil
}

// taskRef names a task by issue key, or by id when the key is unknown
func taskRef(t entities.Task) string {
	if t.Key != "" {
		return t.Key
	}
	return t.ID
}

func (s *notifyService) warn(msg string, fields ...zap.Field) {
	if s.logger != nil {
		s.logger.Warn(msg, fields...)
	}
}
