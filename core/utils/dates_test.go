package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseCompactDate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}{
		{"DateOnly", "20250601", Date(2025, time.June, 1), false},
		{"DateTimeSuffix", "20250601T140000Z", Date(2025, time.June, 1), false},
		{"TooShort", "2025", time.Time{}, true},
		{"NotDigits", "2025junk", time.Time{}, true},
		{"Empty", "", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCompactDate(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v want %v", got, tt.want)
		})
	}
}

func TestTruncateToDay(t *testing.T) {
	in := time.Date(2025, time.July, 10, 18, 30, 12, 0, time.UTC)
	assert.Equal(t, Date(2025, time.July, 10), TruncateToDay(in))
}

func TestFormatCompactDate(t *testing.T) {
	assert.Equal(t, "20250601", FormatCompactDate(Date(2025, time.June, 1)))
}
