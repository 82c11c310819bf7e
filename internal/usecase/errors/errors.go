package errors

import "errors"

// Common errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrNotConfigured = errors.New("integration not configured")
)

// Minutes errors
var (
	ErrMinutesNotFound      = errors.New("meeting ID not found")
	ErrMinutesAlreadyExists = errors.New("minutes already exist for this meeting")
	ErrMissingOrganizer     = errors.New("mom_data.organizer is required")
	ErrMissingMinutes       = errors.New("MOM data is required in request body.")
	ErrStorageUnavailable   = errors.New("object storage not configured")
)

// Task errors
var (
	ErrMeetingTasksNotFound = errors.New("no tasks recorded for this meeting")
	ErrNoFieldsToUpdate     = errors.New("no fields to update")
	ErrNoIssues             = errors.New("no issues provided")
)

// Integration errors
var (
	ErrTrackerFailed       = errors.New("issue tracker request failed")
	ErrEmailFailed         = errors.New("email delivery failed")
	ErrCalendarFailed      = errors.New("calendar request failed")
	ErrCalendarUnavailable = errors.New("calendar access token is not configured")
	ErrReminderFailed      = errors.New("reminder webhook failed")
	ErrSummaryFailed       = errors.New("summary generation failed")
	ErrInvalidModelOutput  = errors.New("model returned invalid JSON")
)
