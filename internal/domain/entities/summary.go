package entities

// SummaryRecord is the normalized result of summarizing a transcript.
type SummaryRecord struct {
	SummaryHeading string       `json:"summary_heading"`
	KeyPoints      []string     `json:"key_points"`
	Decisions      []string     `json:"decisions"`
	ActionItems    []ActionItem `json:"action_items"`
	// Fallback is set when the model output could not be parsed and the
	// record was synthesized from the transcript.
	Fallback bool `json:"fallback"`
}
