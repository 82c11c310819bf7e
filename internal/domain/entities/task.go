package entities

import (
	"strings"
	"time"
)

// Tracker task statuses used for filtering
const (
	TaskStatusAll        = "All"
	TaskStatusToDo       = "To Do"
	TaskStatusInProgress = "In Progress"
	TaskStatusDone       = "Done"
)

// systemAssignee is the placeholder assignee the tracker uses for automation
const systemAssignee = "System"

// Task is the dashboard view of a tracker issue
type Task struct {
	ID                string `json:"id"`
	Key               string `json:"key"`
	Summary           string `json:"summary"`
	Description       string `json:"description"`
	Status            string `json:"status"`
	AssigneeName      string `json:"assignee_name,omitempty"`
	AssigneeEmail     string `json:"assignee_email,omitempty"`
	AssigneeAccountID string `json:"assignee_account_id,omitempty"`
	DueDate           string `json:"due_date,omitempty"`
}

// Due parses the due date; ok is false when it is unset or unreadable
func (t Task) Due() (time.Time, bool) {
	d := strings.TrimSpace(t.DueDate)
	if d == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if parsed, err := time.Parse(layout, d); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// IsOverdue reports whether the task is past due and not done
func (t Task) IsOverdue(now time.Time) bool {
	due, ok := t.Due()
	if !ok {
		return false
	}
	return due.Before(now) && t.Status != TaskStatusDone
}

// IsUnassigned reports whether nobody real owns the task
func (t Task) IsUnassigned() bool {
	return (t.AssigneeName == "" && t.AssigneeAccountID == "") || t.AssigneeName == systemAssignee
}

// MissingFields lists the required fields that are blank
func (t Task) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(t.DueDate) == "" {
		missing = append(missing, "due_date")
	}
	if strings.TrimSpace(t.Summary) == "" {
		missing = append(missing, "summary")
	}
	if strings.TrimSpace(t.Description) == "" {
		missing = append(missing, "description")
	}
	if strings.TrimSpace(t.AssigneeEmail) == "" {
		missing = append(missing, "email")
	}
	return missing
}

// Project is tracker project metadata
type Project struct {
	ID          string `json:"id"`
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	LeadName    string `json:"lead_name,omitempty"`
	TypeKey     string `json:"project_type_key,omitempty"`
}
