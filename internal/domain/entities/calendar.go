package entities

// Event is a calendar meeting as shown on the dashboard
type Event struct {
	ID        string   `json:"id"`
	Subject   string   `json:"subject"`
	StartTime string   `json:"start_time"`
	EndTime   string   `json:"end_time"`
	TimeZone  string   `json:"time_zone,omitempty"`
	Organizer string   `json:"organizer"`
	Attendees []string `json:"attendees"`
	JoinURL   string   `json:"join_url"`
}

// NoJoinURL is shown for events without an online meeting
const NoJoinURL = "#"

// DirectoryUser is a person from the organisation directory
type DirectoryUser struct {
	DisplayName string `json:"display_name"`
	Mail        string `json:"mail"`
}

// Attendee is a mail recipient
type Attendee struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"required,email"`
}
