package repositories

import (
	"context"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// MinutesRepository defines the interface for minutes data access
type MinutesRepository interface {
	// Create stores a new record; duplicate meeting IDs return entities.ErrMinutesAlreadyExists
	Create(ctx context.Context, record *entities.MinutesRecord) error

	// FindByMeetingID returns entities.ErrMinutesNotFound when absent
	FindByMeetingID(ctx context.Context, meetingID string) (*entities.MinutesRecord, error)

	// List returns all records, newest first
	List(ctx context.Context) ([]*entities.MinutesRecord, error)

	// Update saves an existing record
	Update(ctx context.Context, record *entities.MinutesRecord) error
}

// MeetingTasksRepository defines the interface for meeting task links
type MeetingTasksRepository interface {
	// AddTasks creates the link row if needed and adds keys not already present
	AddTasks(ctx context.Context, meetingID, subject string, keys []string) (*entities.MeetingTasks, error)

	// FindByMeetingID returns entities.ErrMeetingTasksNotFound when absent
	FindByMeetingID(ctx context.Context, meetingID string) (*entities.MeetingTasks, error)

	// List returns all links, newest first
	List(ctx context.Context) ([]*entities.MeetingTasks, error)
}
