package types

// SampleRequest is an add-samples request as shown by the frontend.
type SampleRequest struct {
	ID          string   `json:"id"`
	Paths       []string `json:"paths"`
	RequestedAt string   `json:"requestedAt"`
}

// CommandEntry is a participant command offered in menus.
type CommandEntry struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Menu  string `json:"menu,omitempty"`
}

// ParticipantEntry describes a registered participant and its state.
type ParticipantEntry struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Version string `json:"version"`
	Author  string `json:"author,omitempty"`
	Summary string `json:"summary,omitempty"`
	State   string `json:"state"`
}

// LogEntry is a streamed log record.
type LogEntry struct {
	Logger    string         `json:"logger"`
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Timestamp string         `json:"timestamp"`
	Fields    map[string]any `json:"fields,omitempty"`
}
