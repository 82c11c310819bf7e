package minutes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/external/graph"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/storage"
	usecaseErrors "github.com/johnquangdev/meeting-minutes/internal/usecase/errors"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/summary"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/tasks"
	"github.com/johnquangdev/meeting-minutes/pkg/mom"
)

// Archive stores rendered minutes documents
type Archive interface {
	PutText(ctx context.Context, objectName, content, contentType string) (string, error)
	ListFiles(ctx context.Context, prefix string) ([]string, error)
}

// Mailer sends mail with attachments from the organizer's mailbox
type Mailer interface {
	SendMail(ctx context.Context, m graph.Mail) error
}

// TaskCreator creates tracker tasks and links them to meetings
type TaskCreator interface {
	CreateTasks(ctx context.Context, reqs []mom.TaskRequest) ([]tasks.CreateResult, error)
	SaveMeetingTasks(ctx context.Context, meetingID, subject string, keys []string) (*entities.MeetingTasks, error)
}

var (
	_ Archive = (*storage.MinIOClient)(nil)
	_ Mailer  = (*graph.Client)(nil)
)

// Archived document names
const (
	textFileName = "minutes.txt"
	htmlFileName = "minutes.html"
)

// CreateInput is a new minutes record. MomData may be bare or enveloped.
type CreateInput struct {
	MeetingID string
	EventID   string
	Subject   string
	MomData   json.RawMessage
	Attendees []string
}

// SendResult reports where the minutes went
type SendResult struct {
	MeetingID  string   `json:"meeting_id"`
	Recipients []string `json:"recipients"`
	TextURL    string   `json:"text_url,omitempty"`
	HTMLURL    string   `json:"html_url,omitempty"`
}

// TasksResult is the outcome of turning action items into tracker tasks
type TasksResult struct {
	Results      []tasks.CreateResult   `json:"results"`
	MeetingTasks *entities.MeetingTasks `json:"meeting_tasks,omitempty"`
	LinkError    string                 `json:"link_error,omitempty"`
}

// Service defines minutes-of-meeting operations
type Service interface {
	Create(ctx context.Context, in CreateInput) (*entities.MinutesRecord, error)
	Get(ctx context.Context, meetingID string) (*entities.MinutesRecord, error)
	List(ctx context.Context) ([]*entities.MinutesRecord, error)
	Update(ctx context.Context, meetingID string, momData json.RawMessage) (*entities.MinutesRecord, error)
	Text(ctx context.Context, meetingID string) (string, error)
	UpdateFromText(ctx context.Context, meetingID, text string) (mom.Envelope, error)
	Send(ctx context.Context, meetingID string, attendees []entities.Attendee) (*SendResult, error)
	CreateTasks(ctx context.Context, meetingID string) (*TasksResult, error)
	Summary(ctx context.Context, meetingID string) (map[string]interface{}, error)
	Archives(ctx context.Context, meetingID string) ([]string, error)
}

type minutesService struct {
	repo       repositories.MinutesRepository
	archive    Archive
	mailer     Mailer
	tasks      TaskCreator
	summarizer summary.Service
	logger     *zap.Logger
}

// NewService creates the minutes service. archive may be nil when object
// storage is disabled; documents are then only attached to the mail.
func NewService(
	repo repositories.MinutesRepository,
	archive Archive,
	mailer Mailer,
	taskCreator TaskCreator,
	summarizer summary.Service,
	logger *zap.Logger,
) Service {
	return &minutesService{
		repo:       repo,
		archive:    archive,
		mailer:     mailer,
		tasks:      taskCreator,
		summarizer: summarizer,
		logger:     logger,
	}
}

func decodeMinutes(data json.RawMessage) (mom.MeetingMinutes, error) {
	m, err := mom.Decode(data)
	if err != nil {
		return mom.MeetingMinutes{}, fmt.Errorf("%w: mom_data: %v", usecaseErrors.ErrInvalidInput, err)
	}
	return m, nil
}

// Create stores the minutes of a meeting
func (s *minutesService) Create(ctx context.Context, in CreateInput) (*entities.MinutesRecord, error) {
	if strings.TrimSpace(in.MeetingID) == "" || strings.TrimSpace(in.Subject) == "" {
		return nil, fmt.Errorf("%w: meeting_id and subject are required", usecaseErrors.ErrInvalidInput)
	}
	if err := checkMeetingID(in.MeetingID); err != nil {
		return nil, err
	}
	if len(in.MomData) == 0 {
		return nil, usecaseErrors.ErrMissingMinutes
	}
	m, err := decodeMinutes(in.MomData)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(m.Organizer) == "" {
		return nil, usecaseErrors.ErrMissingOrganizer
	}

	record := entities.NewMinutesRecord(in.MeetingID, in.Subject, m, in.Attendees)
	if in.EventID != "" {
		eventID := in.EventID
		record.EventID = &eventID
	}

	if err := s.repo.Create(ctx, record); err != nil {
		if errors.Is(err, entities.ErrMinutesAlreadyExists) {
			return nil, usecaseErrors.ErrMinutesAlreadyExists
		}
		return nil, fmt.Errorf("failed to create minutes: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("minutes created", zap.String("meeting_id", record.MeetingID))
	}
	return record, nil
}

// Get returns the stored minutes of a meeting
func (s *minutesService) Get(ctx context.Context, meetingID string) (*entities.MinutesRecord, error) {
	record, err := s.repo.FindByMeetingID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, entities.ErrMinutesNotFound) {
			return nil, usecaseErrors.ErrMinutesNotFound
		}
		return nil, fmt.Errorf("failed to get minutes: %w", err)
	}
	return record, nil
}

// List returns every stored record, newest first
func (s *minutesService) List(ctx context.Context) ([]*entities.MinutesRecord, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list minutes: %w", err)
	}
	return records, nil
}

func (s *minutesService) replace(ctx context.Context, meetingID string, m mom.MeetingMinutes) (*entities.MinutesRecord, error) {
	record, err := s.Get(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	record.SetMinutes(m)
	if err := s.repo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to update minutes: %w", err)
	}
	return record, nil
}

// Update replaces the minutes of a meeting
func (s *minutesService) Update(ctx context.Context, meetingID string, momData json.RawMessage) (*entities.MinutesRecord, error) {
	if len(momData) == 0 {
		return nil, usecaseErrors.ErrMissingMinutes
	}
	m, err := decodeMinutes(momData)
	if err != nil {
		return nil, err
	}
	return s.replace(ctx, meetingID, m)
}

// Text renders the stored minutes in their editable text form
func (s *minutesService) Text(ctx context.Context, meetingID string) (string, error) {
	record, err := s.Get(ctx, meetingID)
	if err != nil {
		return "", err
	}
	return mom.Format(record.Minutes()), nil
}

// UpdateFromText parses edited text and stores the result
func (s *minutesService) UpdateFromText(ctx context.Context, meetingID, text string) (mom.Envelope, error) {
	env := mom.Parse(text)
	record, err := s.replace(ctx, meetingID, env.MomData)
	if err != nil {
		return mom.Envelope{}, err
	}
	return mom.Wrap(record.Minutes()), nil
}

// checkMeetingID rejects ids that would escape their archive prefix
func checkMeetingID(meetingID string) error {
	if strings.ContainsAny(meetingID, `/\`) || meetingID == "." || meetingID == ".." {
		return fmt.Errorf("%w: meeting_id must be a single path segment", usecaseErrors.ErrInvalidInput)
	}
	return nil
}

func archiveDir(meetingID string) string {
	return path.Join("minutes", meetingID) + "/"
}

func archivePath(meetingID, name string) string {
	return archiveDir(meetingID) + name
}

// Send archives the rendered minutes and mails them to the attendees.
// With no attendees given, the stored attendee list is used.
func (s *minutesService) Send(ctx context.Context, meetingID string, attendees []entities.Attendee) (*SendResult, error) {
	record, err := s.Get(ctx, meetingID)
	if err != nil {
		return nil, err
	}

	if len(attendees) == 0 {
		for _, email := range record.Attendees {
			attendees = append(attendees, entities.Attendee{Email: email})
		}
	}
	if len(attendees) == 0 {
		return nil, fmt.Errorf("%w: at least one attendee is required", usecaseErrors.ErrInvalidInput)
	}

	m := record.Minutes()
	text := mom.Format(m)
	html, err := mom.FormatHTML(record.Subject, m)
	if err != nil {
		return nil, fmt.Errorf("failed to render minutes: %w", err)
	}

	result := &SendResult{MeetingID: meetingID}
	if s.archive != nil {
		if err := checkMeetingID(meetingID); err != nil {
			return nil, err
		}
		if result.TextURL, err = s.archive.PutText(ctx, archivePath(meetingID, textFileName), text, "text/plain; charset=utf-8"); err != nil {
			return nil, fmt.Errorf("failed to archive minutes: %w", err)
		}
		if result.HTMLURL, err = s.archive.PutText(ctx, archivePath(meetingID, htmlFileName), html, "text/html; charset=utf-8"); err != nil {
			return nil, fmt.Errorf("failed to archive minutes: %w", err)
		}
	}

	mail := graph.Mail{
		To:      attendees,
		Subject: "Minutes of Meeting: " + record.Subject,
		Body:    text,
		Attachments: []graph.Attachment{
			{Name: textFileName, ContentType: "text/plain", Content: []byte(text)},
			{Name: htmlFileName, ContentType: "text/html", Content: []byte(html)},
		},
	}
	if err := s.mailer.SendMail(ctx, mail); err != nil {
		return nil, fmt.Errorf("%w: %w", usecaseErrors.ErrEmailFailed, err)
	}

	for _, a := range attendees {
		result.Recipients = append(result.Recipients, a.Email)
	}
	if s.logger != nil {
		s.logger.Info("minutes sent",
			zap.String("meeting_id", meetingID),
			zap.Int("recipients", len(result.Recipients)),
		)
	}
	return result, nil
}

// CreateTasks turns the stored action items into tracker tasks and links
// the created issues to the meeting
func (s *minutesService) CreateTasks(ctx context.Context, meetingID string) (*TasksResult, error) {
	record, err := s.Get(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	items := record.Minutes().ActionItems
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: minutes have no action items", usecaseErrors.ErrInvalidInput)
	}

	results, err := s.tasks.CreateTasks(ctx, mom.ToTaskRequests(items))
	if err != nil {
		return nil, err
	}

	var keys []string
	for _, r := range results {
		if r.Status == tasks.ResultSuccess {
			keys = append(keys, r.TaskID)
		}
	}
	out := &TasksResult{Results: results}
	if len(keys) == 0 {
		return out, nil
	}

	// The issues already exist in the tracker; a failed link must not hide them
	links, err := s.tasks.SaveMeetingTasks(ctx, meetingID, record.Subject, keys)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("failed to link tasks to meeting",
				zap.String("meeting_id", meetingID),
				zap.Strings("task_keys", keys),
				zap.Error(err),
			)
		}
		out.LinkError = "Tasks were created but could not be linked to the meeting"
		return out, nil
	}
	out.MeetingTasks = links
	return out, nil
}

// Summary generates an AI summary of the stored minutes
func (s *minutesService) Summary(ctx context.Context, meetingID string) (map[string]interface{}, error) {
	record, err := s.Get(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	return s.summarizer.Summarize(ctx, record.Minutes())
}

// Archives lists the archived documents of a meeting
func (s *minutesService) Archives(ctx context.Context, meetingID string) ([]string, error) {
	if s.archive == nil {
		return nil, usecaseErrors.ErrStorageUnavailable
	}
	if err := checkMeetingID(meetingID); err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, meetingID); err != nil {
		return nil, err
	}
	files, err := s.archive.ListFiles(ctx, archiveDir(meetingID))
	if err != nil {
		return nil, fmt.Errorf("failed to list archive: %w", err)
	}
	if files == nil {
		files = []string{}
	}
	return files, nil
}
