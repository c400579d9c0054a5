package models

import (
	"errors"
	"fmt"
	"time"
)

// Weekday is a day of the week counted from Monday (0) to Sunday (6).
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var ErrInvalidWeekday = errors.New("weekday must be between 0 (Monday) and 6 (Sunday)")

var weekdayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func (w Weekday) Valid() bool {
	return w >= Monday && w <= Sunday
}

func (w Weekday) Validate() error {
	if !w.Valid() {
		return fmt.Errorf("%w: got %d", ErrInvalidWeekday, int(w))
	}
	return nil
}

func (w Weekday) String() string {
	if !w.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(w))
	}
	return weekdayNames[w]
}

// WeekdayFromTime converts the Sunday-first numbering of the time package.
func WeekdayFromTime(d time.Weekday) Weekday {
	return Weekday((int(d) + 6) % 7)
}
