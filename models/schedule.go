package models

import (
	"fmt"
	"time"
)

// WeeklySchedule describes a match played every week on Weekday at Time,
// with invitations going out on InviteWeekday.
type WeeklySchedule struct {
	ID            int       `json:"id" db:"id"`
	Weekday       Weekday   `json:"weekday" db:"weekday"`
	Time          TimeOfDay `json:"time" db:"time"`
	Place         string    `json:"place" db:"place"`
	InviteWeekday Weekday   `json:"invite_weekday" db:"invite_weekday"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// Validate checks both weekdays and the time of day.
func (s WeeklySchedule) Validate() error {
	if err := s.Weekday.Validate(); err != nil {
		return fmt.Errorf("schedule weekday: %w", err)
	}
	if err := s.InviteWeekday.Validate(); err != nil {
		return fmt.Errorf("schedule invite weekday: %w", err)
	}
	if err := s.Time.Validate(); err != nil {
		return fmt.Errorf("schedule time: %w", err)
	}
	return nil
}

func (s WeeklySchedule) String() string {
	return fmt.Sprintf("%s %s @ %s (invites on %s)", s.Weekday, s.Time, s.Place, s.InviteWeekday)
}
