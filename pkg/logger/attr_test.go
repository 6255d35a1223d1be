package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notedeck/notedeck/pkg/logger"
)

func TestGroup(t *testing.T) {
	attr := logger.Group("toast", slog.String("id", "1"), slog.Int("n", 2))
	require.Equal(t, "toast", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "id", g[0].Key)
	assert.Equal(t, "n", g[1].Key)
}

func TestErrors(t *testing.T) {
	err1 := errors.New("first")
	err2 := errors.New("second")

	attr := logger.Errors(err1, nil, err2)
	require.Equal(t, "errors", attr.Key)
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, err1, g[0].Value.Any())
	assert.Equal(t, err2, g[1].Value.Any())

	assert.True(t, logger.Errors(nil).Equal(slog.Attr{}))
}

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

func TestDomainAttrs(t *testing.T) {
	type variant string
	type state string

	tests := []struct {
		name  string
		attr  slog.Attr
		key   string
		value any
	}{
		{"toast id", logger.ToastID("t-1"), "toast_id", "t-1"},
		{"variant", logger.Variant(variant("error")), "variant", "error"},
		{"state", logger.State(state("paused")), "state", "paused"},
		{"remaining", logger.Remaining(700 * time.Millisecond), "remaining_ms", int64(700)},
		{"request id", logger.RequestID("abc"), "request_id", "abc"},
		{"duration", logger.Duration(time.Second), "duration", time.Second},
		{"component", logger.Component("toast"), "component", "toast"},
		{"event", logger.Event("expired"), "event", "expired"},
		{"count", logger.Count(3), "count", int64(3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.key, tt.attr.Key)
			assert.Equal(t, tt.value, tt.attr.Value.Any())
		})
	}
}

func TestEmptyIDs(t *testing.T) {
	assert.True(t, logger.ToastID("").Equal(slog.Attr{}))
	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
}
