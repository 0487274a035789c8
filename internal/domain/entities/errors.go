package entities

import "errors"

// Domain errors
var (
	// Meeting errors
	ErrMeetingNotFound   = errors.New("meeting not found")
	ErrInvalidPagination = errors.New("invalid pagination")

	// Transcript errors
	ErrEmptyTranscript = errors.New("transcript is empty")

	// Generic errors
	ErrInvalidRequest = errors.New("invalid request")
)
