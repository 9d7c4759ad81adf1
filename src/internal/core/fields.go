package core

// Canonical record field names.
const (
	FieldMessage       = "message"
	FieldLog           = "log"
	FieldSource        = "source"
	FieldServiceName   = "service_name"
	FieldSourceService = "source_service"
	FieldShortMessage  = "short_message"
	FieldTimestamp     = "timestamp"
	FieldLevel         = "level"
	FieldLevelName     = "levelname"
)

const (
	// DefaultMessage fills in for records that arrive without one.
	DefaultMessage = "NO MESSAGE"

	// DefaultSource is used when neither the record nor the routing tag
	// identifies a source.
	DefaultSource = "unknown"
)
