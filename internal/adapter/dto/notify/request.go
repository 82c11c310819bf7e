package notify

import "github.com/johnquangdev/meeting-minutes/internal/domain/entities"

// SendEmailRequest represents a missing-fields alert to send
type SendEmailRequest struct {
	To            string   `json:"to" validate:"required,email"`
	TaskID        string   `json:"task_id" validate:"required"`
	MissingFields []string `json:"missing_fields"`
	CC            []string `json:"cc,omitempty" validate:"omitempty,dive,email"`
}

// DetectRequest optionally names the tasks to check; empty means all tracker tasks
type DetectRequest struct {
	Tasks []entities.Task `json:"tasks,omitempty"`
}

// ReminderRequest lists the issues whose assignees get a reminder
type ReminderRequest struct {
	Issues []string `json:"issues" validate:"required,min=1"`
}
