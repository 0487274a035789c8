package meeting

// ProcessTranscriptRequest represents the request to summarize and store a transcript
type ProcessTranscriptRequest struct {
	Title      string   `json:"title" validate:"max=255"`
	Transcript string   `json:"transcript" validate:"required"`
	Speakers   []string `json:"speakers,omitempty" validate:"omitempty,max=50,dive,max=100"`
}

// ExtractSummaryRequest represents the request to summarize without storing
type ExtractSummaryRequest struct {
	Title      string   `json:"title" validate:"max=255"`
	Transcript string   `json:"transcript" validate:"required"`
	Speakers   []string `json:"speakers,omitempty" validate:"omitempty,max=50,dive,max=100"`
}

// ProcessAudioRequest represents the form fields sent with an audio upload
type ProcessAudioRequest struct {
	Title        string   `form:"title" validate:"max=255"`
	AudioURL     string   `form:"audio_url" validate:"omitempty,url"`
	SpeakerCount int      `form:"speaker_count" validate:"gte=0,lte=10"`
	Speakers     []string `form:"speakers" validate:"omitempty,max=50,dive,max=100"`
}

// ListMeetingsRequest represents query parameters for listing meetings
type ListMeetingsRequest struct {
	Page     int `query:"page" validate:"gte=0"`
	PageSize int `query:"page_size" validate:"gte=0,lte=100"`
}
