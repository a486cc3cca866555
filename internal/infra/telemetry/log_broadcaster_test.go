package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"samplehost/internal/domain"
)

func TestLogBroadcaster_PublishesEntries(t *testing.T) {
	broadcaster := NewLogBroadcaster(zapcore.InfoLevel)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	entries := broadcaster.Subscribe(ctx)

	logger := zap.New(broadcaster.Core()).Named("sampleloader").With(ParticipantField("sampleloader"))
	logger.Debug("hidden")
	logger.Warn("selection cancelled", EventField(EventSelectionCancelled))

	select {
	case entry := <-entries:
		assert.Equal(t, "sampleloader", entry.Logger)
		assert.Equal(t, domain.LogLevelWarning, entry.Level)
		assert.Equal(t, "selection cancelled", entry.Message)
		assert.Equal(t, "sampleloader", entry.Fields[FieldParticipant])
		assert.Equal(t, EventSelectionCancelled, entry.Fields[FieldEvent])
	case <-time.After(time.Second):
		t.Fatal("no log entry published")
	}
	assert.Empty(t, entries)
}

func TestLogBroadcaster_SubscriptionClosesWithContext(t *testing.T) {
	broadcaster := NewLogBroadcaster(zapcore.DebugLevel)
	ctx, cancel := context.WithCancel(context.Background())
	entries := broadcaster.Subscribe(ctx)
	cancel()

	require.Eventually(t, func() bool {
		select {
		case _, ok := <-entries:
			return !ok
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)

	zap.New(broadcaster.Core()).Info("after close")
}

func TestMapZapLevel(t *testing.T) {
	assert.Equal(t, domain.LogLevelDebug, mapZapLevel(zapcore.DebugLevel))
	assert.Equal(t, domain.LogLevelError, mapZapLevel(zapcore.ErrorLevel))
	assert.Equal(t, domain.LogLevelFatal, mapZapLevel(zapcore.PanicLevel))
}
