package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/johnquangdev/meeting-minutes/pkg/mom"
)

// MinutesRecord is the stored minutes of one meeting
type MinutesRecord struct {
	ID        uuid.UUID                              `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MeetingID string                                 `gorm:"type:varchar(255);uniqueIndex;not null" json:"meeting_id"`
	EventID   *string                                `gorm:"type:varchar(255)" json:"event_id,omitempty"`
	Subject   string                                 `gorm:"type:varchar(500);not null" json:"subject"`
	MomData   datatypes.JSONType[mom.MeetingMinutes] `gorm:"type:jsonb;not null" json:"mom_data"`
	Attendees datatypes.JSONSlice[string]            `gorm:"type:jsonb;not null;default:'[]'" json:"attendees"`
	CreatedAt time.Time                              `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time                              `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for MinutesRecord
func (MinutesRecord) TableName() string {
	return "minutes"
}

// NewMinutesRecord builds a record with normalized minutes
func NewMinutesRecord(meetingID, subject string, m mom.MeetingMinutes, attendees []string) *MinutesRecord {
	if attendees == nil {
		attendees = []string{}
	}
	return &MinutesRecord{
		ID:        uuid.New(),
		MeetingID: meetingID,
		Subject:   subject,
		MomData:   datatypes.NewJSONType(mom.Normalize(m)),
		Attendees: datatypes.JSONSlice[string](attendees),
	}
}

// Minutes returns the normalized minutes
func (r *MinutesRecord) Minutes() mom.MeetingMinutes {
	return mom.Normalize(r.MomData.Data())
}

// SetMinutes replaces the stored minutes
func (r *MinutesRecord) SetMinutes(m mom.MeetingMinutes) {
	r.MomData = datatypes.NewJSONType(mom.Normalize(m))
}
