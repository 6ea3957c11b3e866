package oteladapters_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/noop"

	"github.com/AntonStoeckl/library-circulation-go/eventstore/oteladapters"
)

func Test_SlogBridgeLogger_WithHandler_WritesAllLevels(t *testing.T) {
	// arrange
	var buf bytes.Buffer
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(
		slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	ctx := context.Background()

	// act
	logger.DebugContext(ctx, "debug message")
	logger.InfoContext(ctx, "info message", "item_id", "i-1")
	logger.WarnContext(ctx, "warn message")
	logger.ErrorContext(ctx, "error message")

	// assert
	output := buf.String()
	assert.Contains(t, output, `"level":"DEBUG"`)
	assert.Contains(t, output, `"msg":"info message","item_id":"i-1"`)
	assert.Contains(t, output, `"level":"WARN"`)
	assert.Contains(t, output, `"level":"ERROR"`)
}

func Test_OTelLogger_DoesNotPanic_WithNoopLogger(t *testing.T) {
	logger := oteladapters.NewOTelLogger(noop.NewLoggerProvider().Logger("test"))

	assert.NotPanics(t, func() {
		logger.InfoContext(context.Background(), "hold fulfilled", "item_id", "i-1", "dangling")
	})
}

func Test_KeyValues(t *testing.T) {
	attrs := oteladapters.KeyValues([]any{
		"item_id", "i-1",
		"count", 3,
		42, "non-string key",
		"fine_cents", int64(75),
		"err", errors.New("boom"),
		"late", true,
		"dangling",
	})

	assert.Equal(t, []log.KeyValue{
		log.String("item_id", "i-1"),
		log.Int("count", 3),
		log.Int64("fine_cents", 75),
		log.String("err", "boom"),
		log.Bool("late", true),
	}, attrs)
}
