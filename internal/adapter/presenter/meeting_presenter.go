package presenter

import (
	"github.com/CS222-UIUC/fa25-fa25-team027/internal/adapter/dto/common"
	"github.com/CS222-UIUC/fa25-fa25-team027/internal/adapter/dto/meeting"
	"github.com/CS222-UIUC/fa25-fa25-team027/internal/domain/entities"
	meetingUsecase "github.com/CS222-UIUC/fa25-fa25-team027/internal/usecase/meeting"
)

// ToMeetingResponse converts a Meeting entity to MeetingResponse DTO
func ToMeetingResponse(m *entities.Meeting) *meeting.MeetingResponse {
	if m == nil {
		return nil
	}
	return &meeting.MeetingResponse{
		ID:             m.ID,
		CreatedAt:      m.CreatedAt,
		Title:          m.Title,
		Transcript:     m.Transcript,
		SummaryHeading: m.SummaryHeading,
		KeyPoints:      nonNil(m.KeyPoints),
		Decisions:      nonNil(m.Decisions),
		ActionItems:    toActionItems(m.ActionItems),
	}
}

// ToSummaryResponse converts an extracted summary to SummaryResponse DTO
func ToSummaryResponse(s *entities.SummaryRecord) *meeting.SummaryResponse {
	if s == nil {
		return nil
	}
	return &meeting.SummaryResponse{
		SummaryHeading: s.SummaryHeading,
		KeyPoints:      nonNil(s.KeyPoints),
		Decisions:      nonNil(s.Decisions),
		ActionItems:    toActionItems(s.ActionItems),
		Fallback:       s.Fallback,
	}
}

// ToMeetingListResponse converts a history page to a ListResponse
func ToMeetingListResponse(p *meetingUsecase.Page) *common.ListResponse {
	items := make([]meeting.MeetingSummaryResponse, 0, len(p.Items))
	for _, s := range p.Items {
		items = append(items, meeting.MeetingSummaryResponse{
			ID:             s.ID,
			CreatedAt:      s.CreatedAt,
			Title:          s.Title,
			SummaryHeading: s.SummaryHeading,
			Preview:        nonNil(s.Preview),
		})
	}
	return &common.ListResponse{
		Data: items,
		Pagination: &common.PaginationResponse{
			Page:       p.Page,
			PageSize:   p.PageSize,
			TotalPages: p.TotalPages,
			TotalItems: p.TotalItems,
		},
	}
}

func toActionItems(items []entities.ActionItem) []meeting.ActionItemResponse {
	out := make([]meeting.ActionItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, meeting.ActionItemResponse{
			Assignee: it.Assignee,
			Task:     it.Task,
			Deadline: it.Deadline,
		})
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
