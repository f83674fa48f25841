package testutil

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferedSlogHandler(t *testing.T) {
	t.Run("captures records", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Info("test message", slog.String("key", "value"))
		logger.Error("error message", slog.Int("code", 500))

		assert.Equal(t, 2, handler.Count())
		assert.True(t, handler.ContainsMessage("test message"))
		assert.True(t, handler.ContainsAttr("key", "value"))
		assert.True(t, handler.ContainsAttr("code", int64(500)))
		assert.False(t, handler.ContainsMessage("absent"))
	})

	t.Run("filters by level", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Debug("debug msg")
		logger.Info("info msg")
		logger.Warn("warn msg")
		logger.Error("error msg")

		assert.Len(t, handler.GetRecordsByLevel(slog.LevelInfo), 1)
		assert.Len(t, handler.GetRecordsByLevel(slog.LevelDebug), 1)
		assert.Len(t, handler.GetRecords(), 4)
	})

	t.Run("derived loggers share the buffer", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.With(slog.String("component", "loader")).Info("loaded", slog.Int("rows", 3))
		logger.Info("plain")

		require.Equal(t, 2, handler.Count())
		rec, ok := handler.FindMessage("loaded")
		require.True(t, ok)
		assert.Equal(t, "loader", rec.Attrs["component"])
		assert.Equal(t, int64(3), rec.Attrs["rows"])

		plain, ok := handler.FindMessage("plain")
		require.True(t, ok)
		assert.NotContains(t, plain.Attrs, "component")
	})
}

func TestWorkbookBuilder(t *testing.T) {
	path := NewWorkbook("Sales").
		Header("Customer_ID", "Quantity").
		Row("C1", 2).
		Row("C2", 3.5).
		Save(t, "sales.xlsx")

	rows := ReadSheet(t, path, "Sales")
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Customer_ID", "Quantity"}, rows[0])
	assert.Equal(t, []string{"C1", "2"}, rows[1])
	assert.Equal(t, []string{"C2", "3.5"}, rows[2])
}
