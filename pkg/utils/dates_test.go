package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, ok := ParseDate("2024-02-29")
	require.True(t, ok)
	assert.Equal(t, 29, d.Day())

	_, ok = ParseDate("")
	assert.False(t, ok)
	_, ok = ParseDate("not-a-date")
	assert.False(t, ok)
}

func TestDaysBetween(t *testing.T) {
	days, ok := DaysBetween("2024-01-01", "2024-01-11")
	require.True(t, ok)
	assert.Equal(t, 10.0, days)

	days, ok = DaysBetween("2024-01-01T00:00:00Z", "2024-01-01T12:00:00Z")
	require.True(t, ok)
	assert.Equal(t, 0.5, days)

	days, ok = DaysBetween("2024-01-11", "2024-01-01")
	require.True(t, ok)
	assert.Equal(t, -10.0, days)

	_, ok = DaysBetween("", "2024-01-01")
	assert.False(t, ok)
}

func TestMonthKey(t *testing.T) {
	k, ok := MonthKey("2023-12-31")
	require.True(t, ok)
	assert.Equal(t, "2023-12", k)

	_, ok = MonthKey("13/45/2020")
	assert.False(t, ok)
}

func TestValidateDateRange(t *testing.T) {
	assert.NoError(t, ValidateDateRange("", ""))
	assert.NoError(t, ValidateDateRange("2024-01-01", "2024-01-01"))
	assert.Error(t, ValidateDateRange("2024-02-01", "2024-01-01"))
	assert.Error(t, ValidateDateRange("yesterday", ""))
	assert.Error(t, ValidateDateBound("end", "later"))
}

func TestValidatePercent(t *testing.T) {
	assert.NoError(t, ValidatePercent("threshold", 80))
	assert.Error(t, ValidatePercent("threshold", 120))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "Vendor A", SanitizeString("Vendor\x00 A"))
}
