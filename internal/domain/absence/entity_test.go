package absence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDaysCount(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected int
	}{
		{"single day", date(2024, 3, 11), date(2024, 3, 11), 1},
		{"three days", date(2024, 3, 11), date(2024, 3, 13), 3},
		{"across month boundary", date(2024, 1, 30), date(2024, 2, 2), 4},
		{"across leap day", date(2024, 2, 28), date(2024, 3, 1), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Request{StartDate: tt.start, EndDate: tt.end}
			assert.Equal(t, tt.expected, r.DaysCount())
		})
	}
}

func TestDaysCountIgnoresTimeOfDay(t *testing.T) {
	r := Request{
		StartDate: time.Date(2024, 3, 11, 23, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 3, 13, 1, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, 3, r.DaysCount())
}

func TestPeriodDisplay(t *testing.T) {
	single := Request{StartDate: date(2024, 3, 11), EndDate: date(2024, 3, 11)}
	assert.Equal(t, "2024-03-11", single.PeriodDisplay())

	rng := Request{StartDate: date(2024, 3, 11), EndDate: date(2024, 3, 13)}
	assert.Equal(t, "2024-03-11 – 2024-03-13", rng.PeriodDisplay())
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "sick", TypeSick.String())
	assert.Equal(t, "child_care", TypeChildCare.String())
	assert.Equal(t, "vacation", TypeVacation.String())
	assert.Equal(t, "personal_leave", TypePersonalLeave.String())
	assert.Equal(t, "other", TypeOther.String())
	assert.Equal(t, "unknown(9)", Type(9).String())
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, TypeSick.Valid())
	assert.True(t, TypeOther.Valid())
	assert.False(t, Type(0).Valid())
	assert.False(t, Type(6).Valid())

	assert.True(t, DayPartFullDay.Valid())
	assert.True(t, DayPartAfternoon.Valid())
	assert.False(t, DayPart(4).Valid())

	assert.True(t, StatusSubmitted.Valid())
	assert.True(t, StatusRejected.Valid())
	assert.False(t, Status(0).Valid())
	assert.False(t, Status(4).Valid())
}

func TestHasAttachment(t *testing.T) {
	assert.False(t, Request{}.HasAttachment())

	empty := ""
	assert.False(t, Request{AttachmentPath: &empty}.HasAttachment())

	path := "absences/abc.pdf"
	assert.True(t, Request{AttachmentPath: &path}.HasAttachment())
}
