package absence

import (
	"strings"
	"testing"
	"time"

	"github.com/brandberg-skola/absence-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() RequestInput {
	return RequestInput{
		Type:      TypeSick,
		StartDate: time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02"),
		EndDate:   time.Now().UTC().AddDate(0, 0, 3).Format("2006-01-02"),
		DayPart:   DayPartFullDay,
	}
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	return errs.ToMap()
}

func TestRequestInputValidate(t *testing.T) {
	t.Run("valid input passes", func(t *testing.T) {
		input := validInput()
		assert.NoError(t, input.Validate())
	})

	t.Run("invalid type", func(t *testing.T) {
		input := validInput()
		input.Type = Type(9)
		details := fieldErrors(t, input.Validate())
		assert.Contains(t, details, "type")
	})

	t.Run("invalid day part", func(t *testing.T) {
		input := validInput()
		input.DayPart = DayPart(0)
		details := fieldErrors(t, input.Validate())
		assert.Contains(t, details, "day_part")
	})

	t.Run("malformed dates", func(t *testing.T) {
		input := validInput()
		input.StartDate = "11/03/2024"
		input.EndDate = "not-a-date"
		details := fieldErrors(t, input.Validate())
		assert.Contains(t, details, "start_date")
		assert.Contains(t, details, "end_date")
	})

	t.Run("end before start", func(t *testing.T) {
		input := validInput()
		input.StartDate = "2024-03-13"
		input.EndDate = "2024-03-11"
		details := fieldErrors(t, input.Validate())
		assert.Contains(t, details, "end_date")
	})

	t.Run("past dates are allowed", func(t *testing.T) {
		input := validInput()
		input.StartDate = "2020-01-06"
		input.EndDate = "2020-01-07"
		assert.NoError(t, input.Validate())
	})

	t.Run("more than a year ahead is rejected", func(t *testing.T) {
		input := validInput()
		future := time.Now().UTC().AddDate(0, 0, 366).Format("2006-01-02")
		input.StartDate = future
		input.EndDate = future
		details := fieldErrors(t, input.Validate())
		assert.Contains(t, details, "start_date")
	})

	t.Run("exactly a year ahead is allowed", func(t *testing.T) {
		input := validInput()
		future := time.Now().UTC().AddDate(0, 0, 365).Format("2006-01-02")
		input.StartDate = future
		input.EndDate = future
		assert.NoError(t, input.Validate())
	})

	t.Run("comment too long", func(t *testing.T) {
		input := validInput()
		long := strings.Repeat("a", 1001)
		input.Comment = &long
		details := fieldErrors(t, input.Validate())
		assert.Contains(t, details, "comment")
	})

	t.Run("comment limit counts characters, not bytes", func(t *testing.T) {
		input := validInput()
		atLimit := strings.Repeat("å", 1000)
		input.Comment = &atLimit
		assert.NoError(t, input.Validate())

		overLimit := strings.Repeat("å", 1001)
		input.Comment = &overLimit
		details := fieldErrors(t, input.Validate())
		assert.Contains(t, details, "comment")
	})

	t.Run("type other requires comment", func(t *testing.T) {
		input := validInput()
		input.Type = TypeOther
		details := fieldErrors(t, input.Validate())
		assert.Contains(t, details, "comment")

		blank := "   "
		input.Comment = &blank
		details = fieldErrors(t, input.Validate())
		assert.Contains(t, details, "comment")

		reason := "moving day"
		input.Comment = &reason
		assert.NoError(t, input.Validate())
	})
}

func TestApproveInputValidate(t *testing.T) {
	input := ApproveInput{}
	assert.NoError(t, input.Validate())

	long := strings.Repeat("a", 1001)
	input.AdminComment = &long
	details := fieldErrors(t, input.Validate())
	assert.Contains(t, details, "admin_comment")
}

func TestRejectInputValidate(t *testing.T) {
	t.Run("requires a comment", func(t *testing.T) {
		details := fieldErrors(t, (&RejectInput{}).Validate())
		assert.Contains(t, details, "admin_comment")
	})

	t.Run("blank comment is rejected", func(t *testing.T) {
		input := RejectInput{AdminComment: "   "}
		details := fieldErrors(t, input.Validate())
		assert.Contains(t, details, "admin_comment")
	})

	t.Run("non-blank comment passes", func(t *testing.T) {
		input := RejectInput{AdminComment: "Insufficient notice."}
		assert.NoError(t, input.Validate())
	})

	t.Run("limit counts characters, not bytes", func(t *testing.T) {
		input := RejectInput{AdminComment: strings.Repeat("ö", 1000)}
		assert.NoError(t, input.Validate())

		input.AdminComment = strings.Repeat("ö", 1001)
		details := fieldErrors(t, input.Validate())
		assert.Contains(t, details, "admin_comment")
	})
}

func TestNewRequestResponse(t *testing.T) {
	comment := "fever"
	email := "erik@example.com"
	name := "Erik Eriksson"
	path := "absences/abc.pdf"

	r := Request{
		ID:             "req-1",
		UserID:         "user-1",
		Type:           TypeSick,
		StartDate:      date(2024, 3, 11),
		EndDate:        date(2024, 3, 13),
		DayPart:        DayPartFullDay,
		Comment:        &comment,
		Status:         StatusSubmitted,
		AttachmentPath: &path,
		UserEmail:      &email,
		UserName:       &name,
		CreatedAt:      time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC),
		UpdatedAt:      time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC),
	}

	resp := NewRequestResponse(r)
	assert.Equal(t, "req-1", resp.ID)
	assert.Equal(t, "sick", resp.TypeName)
	assert.Equal(t, "2024-03-11", resp.StartDate)
	assert.Equal(t, "2024-03-11 – 2024-03-13", resp.Period)
	assert.Equal(t, 3, resp.DaysCount)
	assert.Equal(t, "full_day", resp.DayPartName)
	assert.Equal(t, "submitted", resp.StatusName)
	assert.True(t, resp.HasAttachment)
	assert.Equal(t, &email, resp.UserEmail)
}
