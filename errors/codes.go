package errors

// ErrorCode identifies an application error independently of its HTTP status
type ErrorCode int

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// General
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1003

	// Meetings
	ErrorCode_MEETING_NOT_FOUND  ErrorCode = 2000
	ErrorCode_INVALID_PAGINATION ErrorCode = 2001
	ErrorCode_EMPTY_TRANSCRIPT   ErrorCode = 2002
	ErrorCode_MISSING_AUDIO      ErrorCode = 2003

	// AI
	ErrorCode_AI_SERVICE_UNAVAILABLE  ErrorCode = 3000
	ErrorCode_AI_TRANSCRIPTION_FAILED ErrorCode = 3001

	// Integrations
	ErrorCode_INTEGRATION_STORAGE_FAILED ErrorCode = 4000

	// Database
	ErrorCode_DB_CONSTRAINT_VIOLATION ErrorCode = 5000
	ErrorCode_DB_SCHEMA               ErrorCode = 5001
)

var codeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                    "OK",
	ErrorCode_INTERNAL:                   "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:           "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                  "NOT_FOUND",
	ErrorCode_INVALID_PAYLOAD:            "INVALID_PAYLOAD",
	ErrorCode_MEETING_NOT_FOUND:          "MEETING_NOT_FOUND",
	ErrorCode_INVALID_PAGINATION:         "INVALID_PAGINATION",
	ErrorCode_EMPTY_TRANSCRIPT:           "EMPTY_TRANSCRIPT",
	ErrorCode_MISSING_AUDIO:              "MISSING_AUDIO",
	ErrorCode_AI_SERVICE_UNAVAILABLE:     "AI_SERVICE_UNAVAILABLE",
	ErrorCode_AI_TRANSCRIPTION_FAILED:    "AI_TRANSCRIPTION_FAILED",
	ErrorCode_INTEGRATION_STORAGE_FAILED: "INTEGRATION_STORAGE_FAILED",
	ErrorCode_DB_CONSTRAINT_VIOLATION:    "DB_CONSTRAINT_VIOLATION",
	ErrorCode_DB_SCHEMA:                  "DB_SCHEMA",
}

func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
