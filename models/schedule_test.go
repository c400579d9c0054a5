package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeeklyScheduleValidate(t *testing.T) {
	ok := WeeklySchedule{Weekday: Wednesday, Time: TimeOfDay{Hour: 19}, Place: "River", InviteWeekday: Monday}
	assert.NoError(t, ok.Validate())

	badWeekday := ok
	badWeekday.Weekday = 7
	assert.ErrorIs(t, badWeekday.Validate(), ErrInvalidWeekday)

	badInvite := ok
	badInvite.InviteWeekday = 9
	assert.ErrorIs(t, badInvite.Validate(), ErrInvalidWeekday)

	badTime := ok
	badTime.Time = TimeOfDay{Hour: 25}
	assert.ErrorIs(t, badTime.Validate(), ErrInvalidTimeOfDay)
}
