package mom

// DefaultSummary is used when an action item has no description
const DefaultSummary = "No Summary Provided"

// TaskRequest is the payload for creating one tracker task
type TaskRequest struct {
	Summary       string `json:"summary" validate:"required"`
	Description   string `json:"description"`
	AssigneeEmail string `json:"assignee_email"`
	DueDate       string `json:"due_date"`
}

// ToTaskRequests maps action items to tracker task requests, keeping order
func ToTaskRequests(items []ActionItem) []TaskRequest {
	out := make([]TaskRequest, 0, len(items))
	for _, it := range items {
		summary := it.Item
		if summary == "" {
			summary = DefaultSummary
		}
		out = append(out, TaskRequest{
			Summary:       summary,
			AssigneeEmail: it.Email,
			DueDate:       it.Deadline,
		})
	}
	return out
}
