package presenter

import (
	"github.com/johnquangdev/meeting-minutes/internal/adapter/dto/minutes"
	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// ToMinutesResponse converts a MinutesRecord entity to MinutesResponse DTO
func ToMinutesResponse(r *entities.MinutesRecord) *minutes.MinutesResponse {
	if r == nil {
		return nil
	}
	attendees := []string(r.Attendees)
	if attendees == nil {
		attendees = []string{}
	}
	return &minutes.MinutesResponse{
		ID:        r.ID.String(),
		MeetingID: r.MeetingID,
		EventID:   r.EventID,
		Subject:   r.Subject,
		MomData:   r.Minutes(),
		Attendees: attendees,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// ToMinutesListResponse converts records to DTOs
func ToMinutesListResponse(records []*entities.MinutesRecord) []*minutes.MinutesResponse {
	out := make([]*minutes.MinutesResponse, 0, len(records))
	for _, r := range records {
		out = append(out, ToMinutesResponse(r))
	}
	return out
}
