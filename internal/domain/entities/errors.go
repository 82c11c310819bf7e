package entities

import "errors"

// Domain errors
var (
	// Minutes errors
	ErrMinutesNotFound      = errors.New("minutes not found")
	ErrMinutesAlreadyExists = errors.New("minutes already exist")

	// Meeting task errors
	ErrMeetingTasksNotFound = errors.New("meeting tasks not found")
)
