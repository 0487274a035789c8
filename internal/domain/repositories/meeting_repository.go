package repositories

import (
	"context"

	"github.com/CS222-UIUC/fa25-fa25-team027/internal/domain/entities"
)

// MeetingRepository defines the interface for meeting data access
type MeetingRepository interface {
	// SaveMeeting stores a meeting and its children atomically and returns the new id
	SaveMeeting(ctx context.Context, m entities.NewMeeting) (int64, error)

	// GetMeeting retrieves a meeting with its key points, decisions and action items
	GetMeeting(ctx context.Context, id int64) (*entities.Meeting, error)

	// ListMeetings returns one zero-based page of meetings, newest first, and the total count
	ListMeetings(ctx context.Context, page, pageSize int) ([]entities.MeetingSummary, int64, error)

	// DeleteMeeting removes a meeting and its children, reporting whether it existed
	DeleteMeeting(ctx context.Context, id int64) (bool, error)

	// CountMeetings returns the number of stored meetings
	CountMeetings(ctx context.Context) (int64, error)
}
