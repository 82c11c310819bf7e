package minutes

import (
	"time"

	"github.com/johnquangdev/meeting-minutes/pkg/mom"
)

// MinutesResponse represents stored minutes in API responses
type MinutesResponse struct {
	ID        string             `json:"id"`
	MeetingID string             `json:"meeting_id"`
	EventID   *string            `json:"event_id,omitempty"`
	Subject   string             `json:"subject"`
	MomData   mom.MeetingMinutes `json:"mom_data"`
	Attendees []string           `json:"attendees"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// TextResponse carries the editable text form
type TextResponse struct {
	Text string `json:"text"`
}
