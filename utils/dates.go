package utils

import (
	"fmt"
	"time"

	"github.com/Dosada05/futbol5/models"
)

// WeekdayOf returns date's weekday counted from Monday.
func WeekdayOf(date time.Time) models.Weekday {
	return models.WeekdayFromTime(date.Weekday())
}

// NextOccurrence returns the first day on or after date that falls on weekday.
// The time of day and location of date are kept.
func NextOccurrence(date time.Time, weekday models.Weekday) (time.Time, error) {
	if err := weekday.Validate(); err != nil {
		return time.Time{}, err
	}
	daysAhead := int(weekday) - int(WeekdayOf(date))
	if daysAhead < 0 {
		daysAhead += 7
	}
	return date.AddDate(0, 0, daysAhead), nil
}

// SetTime replaces the clock part of date with tod.
func SetTime(date time.Time, tod models.TimeOfDay) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), tod.Hour, tod.Minute, tod.Second, tod.Nanosecond, date.Location())
}

// IsWeekend reports whether date is a Saturday or Sunday. Friday 23:59:59.999
// is not, Saturday 00:00 is.
func IsWeekend(date time.Time) bool {
	return WeekdayOf(date) > models.Friday
}

var spanishWeekdays = [...]string{"lunes", "martes", "miércoles", "jueves", "viernes", "sábado", "domingo"}

// FormatSpanish renders t like "miércoles 25/03 a las 19:00".
func FormatSpanish(t time.Time) string {
	return fmt.Sprintf("%s %02d/%02d a las %s", spanishWeekdays[WeekdayOf(t)], t.Day(), int(t.Month()), t.Format("15:04"))
}
