package absence

import (
	"fmt"
	"time"
)

// Type of absence. Stored as a smallint; the numeric values are part of the
// persisted data format and must not be reordered.
type Type int16

const (
	TypeSick          Type = 1
	TypeChildCare     Type = 2
	TypeVacation      Type = 3
	TypePersonalLeave Type = 4
	TypeOther         Type = 5
)

func (t Type) Valid() bool {
	return t >= TypeSick && t <= TypeOther
}

func (t Type) String() string {
	switch t {
	case TypeSick:
		return "sick"
	case TypeChildCare:
		return "child_care"
	case TypeVacation:
		return "vacation"
	case TypePersonalLeave:
		return "personal_leave"
	case TypeOther:
		return "other"
	default:
		return fmt.Sprintf("unknown(%d)", int16(t))
	}
}

// DayPart is the portion of a day the absence covers.
type DayPart int16

const (
	DayPartFullDay   DayPart = 1
	DayPartMorning   DayPart = 2
	DayPartAfternoon DayPart = 3
)

func (d DayPart) Valid() bool {
	return d >= DayPartFullDay && d <= DayPartAfternoon
}

func (d DayPart) String() string {
	switch d {
	case DayPartFullDay:
		return "full_day"
	case DayPartMorning:
		return "morning"
	case DayPartAfternoon:
		return "afternoon"
	default:
		return fmt.Sprintf("unknown(%d)", int16(d))
	}
}

// Status of an absence request.
type Status int16

const (
	StatusSubmitted Status = 1
	StatusApproved  Status = 2
	StatusRejected  Status = 3
)

func (s Status) Valid() bool {
	return s >= StatusSubmitted && s <= StatusRejected
}

func (s Status) String() string {
	switch s {
	case StatusSubmitted:
		return "submitted"
	case StatusApproved:
		return "approved"
	case StatusRejected:
		return "rejected"
	default:
		return fmt.Sprintf("unknown(%d)", int16(s))
	}
}

// DefaultApproveComment is stored when an admin approves without a comment.
const DefaultApproveComment = "Approved."

// Request entity
type Request struct {
	ID     string
	UserID string

	Type      Type
	StartDate time.Time
	EndDate   time.Time
	DayPart   DayPart

	Comment        *string
	Status         Status
	AdminComment   *string
	AttachmentPath *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined user identity (admin views)
	UserEmail *string
	UserName  *string
}

// DaysCount is the inclusive number of calendar days in the period.
func (r Request) DaysCount() int {
	start := dateOnly(r.StartDate)
	end := dateOnly(r.EndDate)
	return int(end.Sub(start).Hours()/24) + 1
}

// PeriodDisplay formats the period as a single date or a date range.
func (r Request) PeriodDisplay() string {
	start := r.StartDate.Format("2006-01-02")
	end := r.EndDate.Format("2006-01-02")
	if start == end {
		return start
	}
	return start + " – " + end
}

func (r Request) HasAttachment() bool {
	return r.AttachmentPath != nil && *r.AttachmentPath != ""
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// StatusCounts aggregates requests by status for the summary view.
type StatusCounts struct {
	Submitted int64
	Approved  int64
	Rejected  int64
}
