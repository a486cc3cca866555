package telemetry

import (
	"context"
	"sync"

	"go.uber.org/zap/zapcore"

	"samplehost/internal/domain"
)

// DefaultLogBufferSize bounds each subscriber's backlog. Entries are dropped
// for subscribers that fall behind.
const DefaultLogBufferSize = 256

// LogBroadcaster fans zap entries out to in-process subscribers such as the
// desktop log panel.
type LogBroadcaster struct {
	minLevel zapcore.Level
	mu       sync.RWMutex
	subs     map[chan domain.LogEntry]struct{}
}

func NewLogBroadcaster(minLevel zapcore.Level) *LogBroadcaster {
	return &LogBroadcaster{
		minLevel: minLevel,
		subs:     make(map[chan domain.LogEntry]struct{}),
	}
}

// Core returns a zapcore.Core that publishes to the broadcaster. Tee it with
// the regular output core.
func (b *LogBroadcaster) Core() zapcore.Core {
	return &broadcastCore{broadcaster: b}
}

// Subscribe returns a channel of entries that is closed when ctx is done.
func (b *LogBroadcaster) Subscribe(ctx context.Context) <-chan domain.LogEntry {
	ch := make(chan domain.LogEntry, DefaultLogBufferSize)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, ch)
		close(ch)
		b.mu.Unlock()
	}()
	return ch
}

func (b *LogBroadcaster) publish(entry domain.LogEntry) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subs {
		select {
		case ch <- entry:
		default:
		}
	}
}

type broadcastCore struct {
	broadcaster *LogBroadcaster
	fields      []zapcore.Field
}

func (c *broadcastCore) Enabled(level zapcore.Level) bool {
	return level >= c.broadcaster.minLevel
}

func (c *broadcastCore) With(fields []zapcore.Field) zapcore.Core {
	if len(fields) == 0 {
		return c
	}
	combined := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	combined = append(combined, c.fields...)
	combined = append(combined, fields...)
	return &broadcastCore{broadcaster: c.broadcaster, fields: combined}
}

func (c *broadcastCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c *broadcastCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	encoder := zapcore.NewMapObjectEncoder()
	for _, field := range c.fields {
		field.AddTo(encoder)
	}
	for _, field := range fields {
		field.AddTo(encoder)
	}
	logger := entry.LoggerName
	if logger == "" {
		logger = "samplehost"
	}
	c.broadcaster.publish(domain.LogEntry{
		Logger:    logger,
		Level:     mapZapLevel(entry.Level),
		Message:   entry.Message,
		Timestamp: entry.Time,
		Fields:    encoder.Fields,
	})
	return nil
}

func (c *broadcastCore) Sync() error {
	return nil
}

func mapZapLevel(level zapcore.Level) domain.LogLevel {
	switch level {
	case zapcore.DebugLevel:
		return domain.LogLevelDebug
	case zapcore.InfoLevel:
		return domain.LogLevelInfo
	case zapcore.WarnLevel:
		return domain.LogLevelWarning
	case zapcore.ErrorLevel:
		return domain.LogLevelError
	case zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		return domain.LogLevelFatal
	default:
		return domain.LogLevelInfo
	}
}

var _ zapcore.Core = (*broadcastCore)(nil)
