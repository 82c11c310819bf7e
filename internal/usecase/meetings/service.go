package meetings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/external/graph"
	usecaseErrors "github.com/johnquangdev/meeting-minutes/internal/usecase/errors"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/summary"
)

// Calendar is the organizer's calendar and directory
type Calendar interface {
	Configured() bool
	CreateEvent(ctx context.Context, in graph.EventInput) (*entities.Event, error)
	ListEvents(ctx context.Context, filter, orderBy string) ([]entities.Event, error)
	ListUsers(ctx context.Context) ([]entities.DirectoryUser, error)
}

var _ Calendar = (*graph.Client)(nil)

// DefaultFollowUpDuration is used when a follow-up request sets no duration
const DefaultFollowUpDuration = 30 * time.Minute

// localLayout is the zone-less date-time the calendar API expects
const localLayout = "2006-01-02T15:04:05"

// ScheduleRequest describes a meeting to put on the calendar
type ScheduleRequest struct {
	Subject   string
	Body      string
	StartTime string
	EndTime   string
	TimeZone  string
	Attendees []string
	Online    bool
}

// FollowUpRequest describes a follow-up meeting for stored minutes
type FollowUpRequest struct {
	Subject         string
	StartTime       string
	DurationMinutes int
	TimeZone        string
	Attendees       []string
}

// FollowUp is a scheduled follow-up meeting with its generated agenda
type FollowUp struct {
	Event  *entities.Event `json:"event"`
	Agenda *summary.Agenda `json:"agenda"`
}

// Service defines calendar operations
type Service interface {
	Schedule(ctx context.Context, req ScheduleRequest) (*entities.Event, error)
	Upcoming(ctx context.Context, now time.Time) ([]entities.Event, error)
	Past(ctx context.Context, now time.Time) ([]entities.Event, error)
	Users(ctx context.Context) ([]entities.DirectoryUser, error)
	ScheduleFollowUp(ctx context.Context, meetingID string, req FollowUpRequest) (*FollowUp, error)
}

type meetingsService struct {
	calendar        Calendar
	minutes         repositories.MinutesRepository
	summarizer      summary.Service
	defaultTimeZone string
	logger          *zap.Logger
}

// NewService creates the meetings service
func NewService(
	calendar Calendar,
	minutes repositories.MinutesRepository,
	summarizer summary.Service,
	defaultTimeZone string,
	logger *zap.Logger,
) Service {
	return &meetingsService{
		calendar:        calendar,
		minutes:         minutes,
		summarizer:      summarizer,
		defaultTimeZone: defaultTimeZone,
		logger:          logger,
	}
}

func calendarErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, usecaseErrors.ErrCalendarFailed, err)
}

func (s *meetingsService) ready() error {
	if !s.calendar.Configured() {
		return usecaseErrors.ErrCalendarUnavailable
	}
	return nil
}

// Schedule creates a calendar event
func (s *meetingsService) Schedule(ctx context.Context, req ScheduleRequest) (*entities.Event, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Subject) == "" || req.StartTime == "" || req.EndTime == "" {
		return nil, fmt.Errorf("%w: subject, start_time and end_time are required", usecaseErrors.ErrInvalidInput)
	}
	tz := req.TimeZone
	if tz == "" {
		tz = s.defaultTimeZone
	}

	ev, err := s.calendar.CreateEvent(ctx, graph.EventInput{
		Subject:   req.Subject,
		BodyHTML:  req.Body,
		Start:     req.StartTime,
		End:       req.EndTime,
		TimeZone:  tz,
		Attendees: req.Attendees,
		Online:    req.Online,
	})
	if err != nil {
		return nil, calendarErr("create event", err)
	}

	if s.logger != nil {
		s.logger.Info("meeting scheduled", zap.String("event_id", ev.ID), zap.String("subject", ev.Subject))
	}
	return ev, nil
}

func graphTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05Z")
}

// Upcoming lists events starting from now, soonest first
func (s *meetingsService) Upcoming(ctx context.Context, now time.Time) ([]entities.Event, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	events, err := s.calendar.ListEvents(ctx,
		fmt.Sprintf("start/dateTime ge '%s'", graphTime(now)),
		"start/dateTime asc",
	)
	if err != nil {
		return nil, calendarErr("list upcoming events", err)
	}
	return events, nil
}

// Past lists events that have ended, most recent first
func (s *meetingsService) Past(ctx context.Context, now time.Time) ([]entities.Event, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	events, err := s.calendar.ListEvents(ctx,
		fmt.Sprintf("end/dateTime le '%s'", graphTime(now)),
		"start/dateTime desc",
	)
	if err != nil {
		return nil, calendarErr("list past events", err)
	}
	return events, nil
}

// Users lists the organisation directory
func (s *meetingsService) Users(ctx context.Context) ([]entities.DirectoryUser, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	users, err := s.calendar.ListUsers(ctx)
	if err != nil {
		return nil, calendarErr("list users", err)
	}
	return users, nil
}

func parseStart(v string) (time.Time, error) {
	if t, err := time.Parse(localLayout, v); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: start_time must be YYYY-MM-DDTHH:MM:SS", usecaseErrors.ErrInvalidInput)
	}
	return t, nil
}

// ScheduleFollowUp generates an agenda from stored minutes and schedules
// a follow-up meeting with it as the invitation body
func (s *meetingsService) ScheduleFollowUp(ctx context.Context, meetingID string, req FollowUpRequest) (*FollowUp, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	start, err := parseStart(req.StartTime)
	if err != nil {
		return nil, err
	}

	record, err := s.minutes.FindByMeetingID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, entities.ErrMinutesNotFound) {
			return nil, usecaseErrors.ErrMinutesNotFound
		}
		return nil, fmt.Errorf("failed to get minutes: %w", err)
	}

	attendees := req.Attendees
	if len(attendees) == 0 {
		attendees = record.Attendees
	}
	if len(attendees) == 0 {
		return nil, fmt.Errorf("%w: no attendees given or stored for this meeting", usecaseErrors.ErrInvalidInput)
	}

	duration := DefaultFollowUpDuration
	if req.DurationMinutes > 0 {
		duration = time.Duration(req.DurationMinutes) * time.Minute
	}
	subject := req.Subject
	if subject == "" {
		subject = "Follow-up: " + record.Subject
	}

	agenda, err := s.summarizer.Agenda(ctx, record.Minutes())
	if err != nil {
		return nil, err
	}

	ev, err := s.Schedule(ctx, ScheduleRequest{
		Subject:   subject,
		Body:      agenda.HTMLAgenda,
		StartTime: start.Format(localLayout),
		EndTime:   start.Add(duration).Format(localLayout),
		TimeZone:  req.TimeZone,
		Attendees: attendees,
		Online:    true,
	})
	if err != nil {
		return nil, err
	}
	return &FollowUp{Event: ev, Agenda: agenda}, nil
}
