package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	day := time.Date(2023, 2, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		raw  string
		want time.Time
	}{
		{"2023-02-10", day},
		{" 2023-02-10 ", day},
		{"2023-02-10 00:00:00", day},
		{"2023-02-10T00:00:00", day},
		{"2023-02-10T14:30:00Z", time.Date(2023, 2, 10, 14, 30, 0, 0, time.UTC)},
		{"2023-02-10T14:30:00+03:00", time.Date(2023, 2, 10, 11, 30, 0, 0, time.UTC)},
		{"2023-02-10 14:30", time.Date(2023, 2, 10, 14, 30, 0, 0, time.UTC)},
		{"2023/02/10", day},
		{"02/10/2023", day},
		{"2/10/2023", day},
		{"10-Feb-2023", day},
		{"Feb 10, 2023", day},
		{"February 10, 2023", day},
		{"20230210", day},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseDate(tt.raw)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestParseDateInvalid(t *testing.T) {
	for _, raw := range []string{"", "   ", "not a date", "2023-13-45", "31/31/2023", "yesterday"} {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseDate(raw)
			assert.Error(t, err)
		})
	}
}
