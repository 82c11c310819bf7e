package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
)

// minutesRepository implements the MinutesRepository interface
type minutesRepository struct {
	db *gorm.DB
}

// NewMinutesRepository creates a new minutes repository
func NewMinutesRepository(db *gorm.DB) repositories.MinutesRepository {
	return &minutesRepository{db: db}
}

// Create creates a new minutes record
func (r *minutesRepository) Create(ctx context.Context, record *entities.MinutesRecord) error {
	err := r.db.WithContext(ctx).Create(record).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return entities.ErrMinutesAlreadyExists
	}
	return err
}

// FindByMeetingID retrieves minutes by meeting ID
func (r *minutesRepository) FindByMeetingID(ctx context.Context, meetingID string) (*entities.MinutesRecord, error) {
	var record entities.MinutesRecord
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		First(&record).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entities.ErrMinutesNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// List retrieves all minutes records
func (r *minutesRepository) List(ctx context.Context) ([]*entities.MinutesRecord, error) {
	var records []*entities.MinutesRecord
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}

// Update updates an existing record
func (r *minutesRepository) Update(ctx context.Context, record *entities.MinutesRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}
