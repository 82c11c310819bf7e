package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
)

// meetingTasksRepository implements the MeetingTasksRepository interface
type meetingTasksRepository struct {
	db *gorm.DB
}

// NewMeetingTasksRepository creates a new meeting tasks repository
func NewMeetingTasksRepository(db *gorm.DB) repositories.MeetingTasksRepository {
	return &meetingTasksRepository{db: db}
}

// AddTasks upserts the link row and merges keys in one transaction
func (r *meetingTasksRepository) AddTasks(ctx context.Context, meetingID, subject string, keys []string) (*entities.MeetingTasks, error) {
	var result entities.MeetingTasks

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Create the row if missing so the lock below always has something to hold
		seed := entities.MeetingTasks{
			ID:        uuid.New(),
			MeetingID: meetingID,
			Subject:   subject,
			TaskKeys:  []string{},
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
			return err
		}

		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("meeting_id = ?", meetingID).
			First(&result).Error; err != nil {
			return err
		}

		result.AddKeys(keys...)
		if subject != "" {
			result.Subject = subject
		}
		return tx.Save(&result).Error
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// FindByMeetingID retrieves the task links of a meeting
func (r *meetingTasksRepository) FindByMeetingID(ctx context.Context, meetingID string) (*entities.MeetingTasks, error) {
	var mt entities.MeetingTasks
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		First(&mt).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entities.ErrMeetingTasksNotFound
	}
	if err != nil {
		return nil, err
	}
	return &mt, nil
}

// List retrieves all meeting task links
func (r *meetingTasksRepository) List(ctx context.Context) ([]*entities.MeetingTasks, error) {
	var out []*entities.MeetingTasks
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}
