package meeting

import "time"

// ActionItemResponse represents an action item
type ActionItemResponse struct {
	Assignee string `json:"assignee"`
	Task     string `json:"task"`
	Deadline string `json:"deadline"`
}

// MeetingResponse represents a stored meeting with its summary
type MeetingResponse struct {
	ID             int64                `json:"id"`
	CreatedAt      time.Time            `json:"created_at"`
	Title          string               `json:"title"`
	Transcript     string               `json:"transcript"`
	SummaryHeading string               `json:"summary_heading"`
	KeyPoints      []string             `json:"key_points"`
	Decisions      []string             `json:"decisions"`
	ActionItems    []ActionItemResponse `json:"action_items"`
}

// MeetingSummaryResponse represents one row of the meeting history
type MeetingSummaryResponse struct {
	ID             int64     `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	Title          string    `json:"title"`
	SummaryHeading string    `json:"summary_heading"`
	Preview        []string  `json:"preview"`
}

// SummaryResponse represents an extracted summary that was not stored
type SummaryResponse struct {
	SummaryHeading string               `json:"summary_heading"`
	KeyPoints      []string             `json:"key_points"`
	Decisions      []string             `json:"decisions"`
	ActionItems    []ActionItemResponse `json:"action_items"`
	Fallback       bool                 `json:"fallback"`
}

// DeleteMeetingResponse reports whether a meeting was removed
type DeleteMeetingResponse struct {
	Deleted bool `json:"deleted"`
}
