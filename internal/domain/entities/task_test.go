package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTask_IsOverdue(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		task Task
		want bool
	}{
		{"past and open", Task{DueDate: "2026-10-15", Status: TaskStatusToDo}, true},
		{"past but done", Task{DueDate: "2026-10-15", Status: TaskStatusDone}, false},
		{"future", Task{DueDate: "2026-10-17", Status: TaskStatusInProgress}, false},
		{"no due date", Task{Status: TaskStatusToDo}, false},
		{"unreadable due date", Task{DueDate: "tomorrow", Status: TaskStatusToDo}, false},
		{"rfc3339", Task{DueDate: "2026-10-16T08:00:00Z", Status: TaskStatusToDo}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.task.IsOverdue(now))
		})
	}
}

func TestTask_IsUnassigned(t *testing.T) {
	assert.True(t, Task{}.IsUnassigned())
	assert.True(t, Task{AssigneeName: "System", AssigneeAccountID: "abc"}.IsUnassigned())
	assert.False(t, Task{AssigneeName: "Priya", AssigneeAccountID: "abc"}.IsUnassigned())
}

func TestTask_MissingFields(t *testing.T) {
	assert.Equal(t, []string{"due_date", "summary", "description", "email"}, Task{}.MissingFields())
	assert.Empty(t, Task{DueDate: "2026-01-01", Summary: "s", Description: "d", AssigneeEmail: "a@b.c"}.MissingFields())
	assert.Equal(t, []string{"description"}, Task{DueDate: "2026-01-01", Summary: "s", Description: "  ", AssigneeEmail: "a@b.c"}.MissingFields())
}

func TestMeetingTasks_AddKeys(t *testing.T) {
	mt := &MeetingTasks{TaskKeys: []string{"OPS-1"}}

	added := mt.AddKeys("OPS-2", "OPS-1", "", "OPS-2", "OPS-3")

	assert.Equal(t, 2, added)
	assert.Equal(t, []string{"OPS-1", "OPS-2", "OPS-3"}, []string(mt.TaskKeys))
}
