package domain

import "time"

// LogLevel is the severity attached to a streamed log entry.
type LogLevel string

const (
	LogLevelDebug   LogLevel = "debug"
	LogLevelInfo    LogLevel = "info"
	LogLevelWarning LogLevel = "warning"
	LogLevelError   LogLevel = "error"
	LogLevelFatal   LogLevel = "fatal"
)

// LogEntry is one log record delivered to log subscribers.
type LogEntry struct {
	Logger    string
	Level     LogLevel
	Message   string
	Timestamp time.Time
	Fields    map[string]any
}
