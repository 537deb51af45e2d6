package logger

// Canonical field names for structured logging.
const (
	FieldComponent = "component"
	FieldSessionID = "session_id"
	FieldRequestID = "request_id"
	FieldOldState  = "old_state"
	FieldNewState  = "new_state"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldURL       = "url"
)
