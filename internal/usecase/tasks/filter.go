package tasks

import (
	"strings"
	"time"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// Paging defaults
const (
	DefaultPageSize = 5
	MaxPageSize     = 100
)

// Query selects a page of tasks
type Query struct {
	Status   string
	Page     int
	PageSize int
}

// Page is one page of filtered tasks
type Page struct {
	Tasks      []entities.Task `json:"tasks"`
	Status     string          `json:"status"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalItems int             `json:"total_items"`
	TotalPages int             `json:"total_pages"`
}

// Stats are the dashboard counters
type Stats struct {
	Total      int            `json:"total"`
	ToDo       int            `json:"to_do"`
	InProgress int            `json:"in_progress"`
	Done       int            `json:"done"`
	Unassigned int            `json:"unassigned"`
	Overdue    int            `json:"overdue"`
	ByAssignee map[string]int `json:"by_assignee"`
}

// FilterByStatus keeps tasks with the given status; empty or "All" keeps everything
func FilterByStatus(tasks []entities.Task, status string) []entities.Task {
	status = strings.TrimSpace(status)
	if status == "" || strings.EqualFold(status, entities.TaskStatusAll) {
		return tasks
	}
	out := make([]entities.Task, 0, len(tasks))
	for _, t := range tasks {
		if strings.EqualFold(t.Status, status) {
			out = append(out, t)
		}
	}
	return out
}

// Paginate slices tasks into a page. Page numbers start at 1 and pages
// past the end are empty.
func Paginate(tasks []entities.Task, page, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	if page < 1 {
		page = 1
	}

	total := len(tasks)
	p := Page{
		Tasks:      []entities.Task{},
		Page:       page,
		PageSize:   size,
		TotalItems: total,
		TotalPages: (total + size - 1) / size,
	}

	if page > p.TotalPages {
		return p
	}
	start := (page - 1) * size
	end := start + size
	if end > total {
		end = total
	}
	p.Tasks = append(p.Tasks, tasks[start:end]...)
	return p
}

// Overdue returns open tasks whose due date has passed
func Overdue(tasks []entities.Task, now time.Time) []entities.Task {
	out := []entities.Task{}
	for _, t := range tasks {
		if t.IsOverdue(now) {
			out = append(out, t)
		}
	}
	return out
}

// Unassigned returns tasks without a real assignee
func Unassigned(tasks []entities.Task) []entities.Task {
	out := []entities.Task{}
	for _, t := range tasks {
		if t.IsUnassigned() {
			out = append(out, t)
		}
	}
	return out
}

// unassignedLabel groups tasks without an owner in ByAssignee
const unassignedLabel = "Unassigned"

// ComputeStats counts tasks per status and per assignee
func ComputeStats(tasks []entities.Task, now time.Time) Stats {
	s := Stats{Total: len(tasks), ByAssignee: map[string]int{}}
	for _, t := range tasks {
		switch {
		case strings.EqualFold(t.Status, entities.TaskStatusToDo):
			s.ToDo++
		case strings.EqualFold(t.Status, entities.TaskStatusInProgress):
			s.InProgress++
		case strings.EqualFold(t.Status, entities.TaskStatusDone):
			s.Done++
		}
		if t.IsOverdue(now) {
			s.Overdue++
		}
		if t.IsUnassigned() {
			s.Unassigned++
			s.ByAssignee[unassignedLabel]++
			continue
		}
		s.ByAssignee[t.AssigneeName]++
	}
	return s
}
