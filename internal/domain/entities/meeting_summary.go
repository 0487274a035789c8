package entities

import "time"

// DefaultMeetingTitle is stored when a meeting is saved without a title.
const DefaultMeetingTitle = "Untitled Meeting"

// PreviewLength is the number of key points shown in a MeetingSummary.
const PreviewLength = 3

// Meeting is a stored meeting with its ordered children.
type Meeting struct {
	ID             int64        `json:"id"`
	CreatedAt      time.Time    `json:"created_at"`
	Title          string       `json:"title"`
	Transcript     string       `json:"transcript"`
	SummaryHeading string       `json:"summary_heading"`
	KeyPoints      []string     `json:"key_points"`
	Decisions      []string     `json:"decisions"`
	ActionItems    []ActionItem `json:"action_items"`
}

// NewMeeting is the input for saving a meeting.
type NewMeeting struct {
	Title          string
	Transcript     string
	SummaryHeading string
	KeyPoints      []string
	Decisions      []string
	ActionItems    []ActionItem
}

// NewMeetingFromSummary combines a transcript with its extracted summary.
func NewMeetingFromSummary(title, transcript string, s *SummaryRecord) NewMeeting {
	m := NewMeeting{Title: title, Transcript: transcript}
	if s != nil {
		m.SummaryHeading = s.SummaryHeading
		m.KeyPoints = s.KeyPoints
		m.Decisions = s.Decisions
		m.ActionItems = s.ActionItems
	}
	return m
}

// MeetingSummary is one row of the meeting history listing.
type MeetingSummary struct {
	ID             int64     `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	Title          string    `json:"title"`
	SummaryHeading string    `json:"summary_heading"`
	// Preview holds up to PreviewLength leading key points.
	Preview []string `json:"preview"`
}
