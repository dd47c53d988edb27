package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2025-03-15T18:30:00+03:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("15/03/2025")
	assert.Error(t, err)
}

func TestParseDateRange_IncludesEndDay(t *testing.T) {
	r, err := ParseDateRange("2025-03-01", "2025-03-31")
	require.NoError(t, err)

	assert.True(t, r.Contains(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, r.Contains(time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC)))
	assert.False(t, r.Contains(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, r.Contains(time.Date(2025, 2, 28, 23, 59, 0, 0, time.UTC)))

	open, err := ParseDateRange("", "")
	require.NoError(t, err)
	assert.True(t, open.Contains(time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)))

	_, err = ParseDateRange("bad", "")
	assert.Error(t, err)
}

func TestMonthRange(t *testing.T) {
	r := MonthRange(time.Date(2024, 2, 17, 10, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), r.From)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), r.To)
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, DaysUntil(now, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, DaysUntil(now, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 30, DaysUntil(now, time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 3, DaysBetween(now, time.Date(2025, 1, 4, 8, 0, 0, 0, time.UTC)))
}
