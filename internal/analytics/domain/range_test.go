package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testEpoch = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	testToday = time.Date(2024, 6, 30, 15, 0, 0, 0, time.UTC)
)

func TestValidateRejectsReversedRange(t *testing.T) {
	r, err := ParseDateRange("2024-06-10", "2024-06-01")
	require.NoError(t, err)

	assert.ErrorIs(t, r.Validate(testEpoch, testToday), ErrInvalidDateRange)
}

func TestValidateBounds(t *testing.T) {
	cases := []struct {
		name       string
		start, end string
		wantErr    bool
	}{
		{"single day", "2024-06-01", "2024-06-01", false},
		{"through today", "2024-06-01", "2024-06-30", false},
		{"epoch start", "2020-01-01", "2020-01-31", false},
		{"before epoch", "2019-12-31", "2020-01-31", true},
		{"future end", "2024-06-01", "2024-07-01", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := ParseDateRange(tc.start, tc.end)
			require.NoError(t, err)
			err = r.Validate(testEpoch, testToday)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDateRange)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateRejectsZeroBounds(t *testing.T) {
	assert.ErrorIs(t, DateRange{}.Validate(testEpoch, testToday), ErrInvalidDateRange)
}

func TestParseDateRangeRejectsGarbage(t *testing.T) {
	_, err := ParseDateRange("June 1st", "2024-06-02")
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestContainsIsInclusiveOfEndDay(t *testing.T) {
	r := NewDateRange(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC))

	assert.True(t, r.Contains(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, r.Contains(time.Date(2024, 6, 3, 23, 59, 59, 0, time.UTC)))
	assert.False(t, r.Contains(time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC)))
	assert.False(t, r.Contains(time.Date(2024, 5, 31, 23, 59, 59, 0, time.UTC)))
}

func TestLastDays(t *testing.T) {
	r := LastDays(testToday, 7)

	assert.Equal(t, "2024-06-24", r.StartLabel())
	assert.Equal(t, "2024-06-30", r.EndLabel())
}
