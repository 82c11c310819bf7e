package tasks

// ListTasksRequest represents query parameters for listing tracker tasks
type ListTasksRequest struct {
	Status   string `query:"status"`
	Page     int    `query:"page" validate:"omitempty,min=1"`
	PageSize int    `query:"page_size" validate:"omitempty,min=1,max=100"`
}

// UpdateFieldsRequest carries the tracker fields to set.
// fieldsToUpdate is accepted for older clients.
type UpdateFieldsRequest struct {
	FieldsToUpdate map[string]interface{} `json:"fields_to_update"`
	Legacy         map[string]interface{} `json:"fieldsToUpdate"`
}

// Fields returns whichever field map the client sent
func (r UpdateFieldsRequest) Fields() map[string]interface{} {
	if len(r.FieldsToUpdate) > 0 {
		return r.FieldsToUpdate
	}
	return r.Legacy
}

// SaveMeetingTasksRequest links tracker issues to a meeting
type SaveMeetingTasksRequest struct {
	MeetingID string   `json:"meeting_id" validate:"required"`
	Subject   string   `json:"subject" validate:"required"`
	Tasks     []string `json:"tasks" validate:"required"`
}
