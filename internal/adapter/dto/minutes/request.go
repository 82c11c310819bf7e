package minutes

import (
	"encoding/json"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// CreateMinutesRequest represents the request to store the minutes of a meeting
type CreateMinutesRequest struct {
	MeetingID string          `json:"meeting_id" validate:"required,max=255,excludesall=/\\"`
	EventID   string          `json:"event_id,omitempty" validate:"omitempty,max=255"`
	Subject   string          `json:"subject" validate:"required,max=500"`
	MomData   json.RawMessage `json:"mom_data" validate:"required"`
	Attendees []string        `json:"attendees,omitempty" validate:"omitempty,dive,email"`
}

// TextRequest carries minutes in their editable text form
type TextRequest struct {
	Text string `json:"text"`
}

// SendMinutesRequest represents the request to mail minutes to attendees
type SendMinutesRequest struct {
	MeetingID string              `json:"meeting_id" validate:"required"`
	Attendees []entities.Attendee `json:"attendees" validate:"omitempty,dive"`
}
