package utils

import (
	"testing"
	"time"

	"github.com/Dosada05/futbol5/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekdayOf(t *testing.T) {
	// 2015-03-23 was a Monday.
	monday := time.Date(2015, 3, 23, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		assert.Equal(t, models.Weekday(i), WeekdayOf(monday.AddDate(0, 0, i)))
	}
}

func TestNextOccurrence(t *testing.T) {
	monday := time.Date(2015, 3, 23, 7, 15, 0, 0, time.UTC)

	tests := []struct {
		name    string
		from    time.Time
		weekday models.Weekday
		want    time.Time
	}{
		{"same day", monday, models.Monday, monday},
		{"later this week", monday, models.Wednesday, time.Date(2015, 3, 25, 7, 15, 0, 0, time.UTC)},
		{"end of week", monday, models.Sunday, time.Date(2015, 3, 29, 7, 15, 0, 0, time.UTC)},
		{"wraps to next week", time.Date(2015, 3, 27, 7, 15, 0, 0, time.UTC), models.Monday, time.Date(2015, 3, 30, 7, 15, 0, 0, time.UTC)},
		{"across month end", time.Date(2015, 3, 31, 23, 0, 0, 0, time.UTC), models.Thursday, time.Date(2015, 4, 2, 23, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextOccurrence(tt.from, tt.weekday)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestNextOccurrenceRoundTrip(t *testing.T) {
	start := time.Date(2024, 12, 28, 18, 30, 5, 42, time.UTC)
	for d := 0; d < 14; d++ {
		from := start.AddDate(0, 0, d)
		for w := models.Monday; w <= models.Sunday; w++ {
			got, err := NextOccurrence(from, w)
			require.NoError(t, err)

			assert.Equal(t, w, WeekdayOf(got))
			assert.False(t, got.Before(from))
			assert.Less(t, got.Sub(from), 7*24*time.Hour)
			assert.Equal(t, from.Hour(), got.Hour())
			assert.Equal(t, from.Minute(), got.Minute())
			assert.Equal(t, from.Second(), got.Second())
			assert.Equal(t, from.Nanosecond(), got.Nanosecond())
		}
	}
}

func TestNextOccurrenceKeepsLocation(t *testing.T) {
	loc := time.FixedZone("ART", -3*60*60)
	from := time.Date(2015, 3, 23, 22, 0, 0, 0, loc)

	got, err := NextOccurrence(from, models.Tuesday)
	require.NoError(t, err)
	assert.Equal(t, loc, got.Location())
	assert.Equal(t, 24, got.Day())
	assert.Equal(t, 22, got.Hour())
}

func TestNextOccurrenceInvalidWeekday(t *testing.T) {
	from := time.Date(2015, 3, 23, 0, 0, 0, 0, time.UTC)
	for _, w := range []models.Weekday{-1, 7, 42} {
		_, err := NextOccurrence(from, w)
		assert.ErrorIs(t, err, models.ErrInvalidWeekday)
	}
}

func TestSetTime(t *testing.T) {
	date := time.Date(2015, 3, 25, 7, 15, 33, 999, time.UTC)
	got := SetTime(date, models.TimeOfDay{Hour: 19})

	assert.True(t, time.Date(2015, 3, 25, 19, 0, 0, 0, time.UTC).Equal(got))
	assert.Equal(t, time.UTC, got.Location())
}

func TestIsWeekend(t *testing.T) {
	tests := []struct {
		date time.Time
		want bool
	}{
		{time.Date(2015, 3, 23, 12, 0, 0, 0, time.UTC), false},
		{time.Date(2015, 3, 27, 23, 59, 59, 999999000, time.UTC), false},
		{time.Date(2015, 3, 28, 0, 0, 0, 0, time.UTC), true},
		{time.Date(2015, 3, 29, 23, 59, 59, 0, time.UTC), true},
		{time.Date(2015, 3, 30, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsWeekend(tt.date), tt.date.Format(time.RFC3339Nano))
	}
}

func TestFormatSpanish(t *testing.T) {
	assert.Equal(t, "miércoles 25/03 a las 19:00", FormatSpanish(time.Date(2015, 3, 25, 19, 0, 0, 0, time.UTC)))
	assert.Equal(t, "domingo 05/04 a las 08:05", FormatSpanish(time.Date(2015, 4, 5, 8, 5, 0, 0, time.UTC)))
}
