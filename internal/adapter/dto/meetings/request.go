package meetings

// ScheduleMeetingRequest represents a meeting to create on the calendar
type ScheduleMeetingRequest struct {
	Subject         string   `json:"subject" validate:"required"`
	Body            string   `json:"body"`
	StartTime       string   `json:"start_time" validate:"required"`
	EndTime         string   `json:"end_time" validate:"required"`
	TimeZone        string   `json:"time_zone,omitempty"`
	Attendees       []string `json:"attendees" validate:"omitempty,dive,email"`
	IsOnlineMeeting bool     `json:"is_online_meeting"`
}

// FollowUpRequest represents a follow-up meeting for stored minutes
type FollowUpRequest struct {
	Subject         string   `json:"subject,omitempty"`
	StartTime       string   `json:"start_time" validate:"required"`
	DurationMinutes int      `json:"duration_minutes,omitempty" validate:"omitempty,min=1,max=1440"`
	TimeZone        string   `json:"time_zone,omitempty"`
	Attendees       []string `json:"attendees,omitempty" validate:"omitempty,dive,email"`
}
