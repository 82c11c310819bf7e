package presenter

import (
	"github.com/johnquangdev/meeting-minutes/internal/adapter/dto/common"
	"github.com/johnquangdev/meeting-minutes/internal/adapter/dto/tasks"
	taskUsecase "github.com/johnquangdev/meeting-minutes/internal/usecase/tasks"
)

// ToTaskListResponse converts a page of tasks to its DTO
func ToTaskListResponse(p *taskUsecase.Page) *tasks.TaskListResponse {
	if p == nil {
		return nil
	}
	return &tasks.TaskListResponse{
		Status: p.Status,
		Tasks:  p.Tasks,
		Pagination: &common.PaginationResponse{
			Page:       p.Page,
			PageSize:   p.PageSize,
			TotalPages: p.TotalPages,
			TotalItems: p.TotalItems,
		},
	}
}
