package tasks

import (
	"github.com/johnquangdev/meeting-minutes/internal/adapter/dto/common"
	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// TaskListResponse is one page of tasks with its pagination metadata
type TaskListResponse struct {
	Status     string                     `json:"status"`
	Tasks      []entities.Task            `json:"tasks"`
	Pagination *common.PaginationResponse `json:"pagination"`
}
