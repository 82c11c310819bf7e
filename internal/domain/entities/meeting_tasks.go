package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MeetingTasks links tracker issues to the meeting they came from
type MeetingTasks struct {
	ID        uuid.UUID                   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MeetingID string                      `gorm:"type:varchar(255);uniqueIndex;not null" json:"meeting_id"`
	Subject   string                      `gorm:"type:varchar(500);not null" json:"subject"`
	TaskKeys  datatypes.JSONSlice[string] `gorm:"type:jsonb;not null;default:'[]'" json:"tasks"`
	CreatedAt time.Time                   `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time                   `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for MeetingTasks
func (MeetingTasks) TableName() string {
	return "meeting_tasks"
}

// AddKeys appends keys not already present, keeping first-seen order.
// It returns the number of keys added.
func (m *MeetingTasks) AddKeys(keys ...string) int {
	seen := make(map[string]struct{}, len(m.TaskKeys))
	for _, k := range m.TaskKeys {
		seen[k] = struct{}{}
	}
	added := 0
	for _, k := range keys {
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		m.TaskKeys = append(m.TaskKeys, k)
		added++
	}
	return added
}
