package domain

// LogLevel is the severity of a message attached to a telemetry vertex.
type LogLevel int

const (
	// LogLevelDebug is used for per-attempt details.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo is used for resolution outcomes.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn is used when an image falls back to a placeholder.
	LogLevelWarn LogLevel = 4
	// LogLevelError is used for failures that abort a use case.
	LogLevelError LogLevel = 8
)

// String returns the upper-case level label.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}
