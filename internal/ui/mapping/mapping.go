package mapping

import (
	"time"

	"samplehost/internal/domain"
	"samplehost/internal/host"
	"samplehost/internal/ui/types"
)

func MapSampleRequest(req domain.SampleRequest) types.SampleRequest {
	return types.SampleRequest{
		ID:          req.ID,
		Paths:       append([]string{}, req.Paths...),
		RequestedAt: FormatTimestamp(req.RequestedAt),
	}
}

func MapSampleRequests(reqs []domain.SampleRequest) []types.SampleRequest {
	out := make([]types.SampleRequest, 0, len(reqs))
	for _, req := range reqs {
		out = append(out, MapSampleRequest(req))
	}
	return out
}

func MapCommands(cmds []domain.Command) []types.CommandEntry {
	out := make([]types.CommandEntry, 0, len(cmds))
	for _, cmd := range cmds {
		out = append(out, types.CommandEntry{ID: cmd.ID, Label: cmd.Label, Menu: cmd.Menu})
	}
	return out
}

func MapParticipants(infos []host.ParticipantInfo) []types.ParticipantEntry {
	out := make([]types.ParticipantEntry, 0, len(infos))
	for _, info := range infos {
		out = append(out, types.ParticipantEntry{
			Name:    info.Descriptor.Name,
			Title:   info.Descriptor.Title,
			Version: info.Descriptor.Version,
			Author:  info.Descriptor.Author,
			Summary: info.Descriptor.Summary,
			State:   string(info.State),
		})
	}
	return out
}

func MapLogEntry(entry domain.LogEntry) types.LogEntry {
	return types.LogEntry{
		Logger:    entry.Logger,
		Level:     string(entry.Level),
		Message:   entry.Message,
		Timestamp: FormatTimestamp(entry.Timestamp),
		Fields:    entry.Fields,
	}
}

// FormatTimestamp renders t as RFC 3339 in UTC; the zero time renders empty.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
