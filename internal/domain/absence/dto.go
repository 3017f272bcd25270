package absence

import (
	"mime/multipart"
	"time"
	"unicode/utf8"

	"github.com/brandberg-skola/absence-backend-go/internal/pkg/validator"
)

const (
	maxCommentLength = 1000
	maxFutureDays    = 365
)

// RequestInput carries the owner-editable fields of an absence request. Create
// and edit share this struct so both flows run the exact same validation.
type RequestInput struct {
	Type      Type    `json:"type"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	DayPart   DayPart `json:"day_part"`
	Comment   *string `json:"comment,omitempty"`

	// Optional multipart attachment, set by the handler
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *RequestInput) Validate() error {
	var errs validator.ValidationErrors

	if !r.Type.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of sick(1), child_care(2), vacation(3), personal_leave(4), other(5)",
		})
	}

	if !r.DayPart.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "day_part",
			Message: "day_part must be one of full_day(1), morning(2), afternoon(3)",
		})
	}

	startDate, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid date in YYYY-MM-DD format",
		})
	}

	endDate, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a valid date in YYYY-MM-DD format",
		})
	}

	if startOK && endOK && endDate.Before(startDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date cannot be before start_date",
		})
	}

	maxDate := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, maxFutureDays)
	if (startOK && startDate.After(maxDate)) || (endOK && endDate.After(maxDate)) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "dates cannot be more than 365 days in the future",
		})
	}

	// Rune count, not bytes: the column limit is 1000 characters
	if r.Comment != nil && utf8.RuneCountInString(*r.Comment) > maxCommentLength {
		errs = append(errs, validator.ValidationError{
			Field:   "comment",
			Message: "comment must not exceed 1000 characters",
		})
	}

	if r.Type == TypeOther && (r.Comment == nil || validator.IsEmpty(*r.Comment)) {
		errs = append(errs, validator.ValidationError{
			Field:   "comment",
			Message: "comment is required when type is other",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Dates returns the parsed period. Only meaningful after a successful Validate.
func (r *RequestInput) Dates() (time.Time, time.Time) {
	start, _ := validator.IsValidDate(r.StartDate)
	end, _ := validator.IsValidDate(r.EndDate)
	return start, end
}

// UpdateRequestInput adds the attachment-removal flag to the shared fields.
type UpdateRequestInput struct {
	RequestInput
	RemoveAttachment bool `json:"remove_attachment,omitempty"`
}

type ApproveInput struct {
	AdminComment *string `json:"admin_comment,omitempty"`
}

func (r *ApproveInput) Validate() error {
	var errs validator.ValidationErrors

	if r.AdminComment != nil && utf8.RuneCountInString(*r.AdminComment) > maxCommentLength {
		errs = append(errs, validator.ValidationError{
			Field:   "admin_comment",
			Message: "admin_comment must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RejectInput struct {
	AdminComment string `json:"admin_comment"`
}

func (r *RejectInput) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AdminComment) {
		errs = append(errs, validator.ValidationError{
			Field:   "admin_comment",
			Message: "admin_comment is required when rejecting a request",
		})
	}
	if utf8.RuneCountInString(r.AdminComment) > maxCommentLength {
		errs = append(errs, validator.ValidationError{
			Field:   "admin_comment",
			Message: "admin_comment must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// OwnerFilter narrows the owner's own requests. Nil fields apply no constraint.
type OwnerFilter struct {
	Month  *time.Time // first day of the month; matches period overlap
	Type   *Type
	Status *Status
}

// AdminFilter narrows the all-requests view. Nil fields apply no constraint.
type AdminFilter struct {
	Person   *string // substring over owner email, first name, last name
	FromDate *time.Time
	ToDate   *time.Time
	Type     *Type
	Status   *Status
}

type RequestResponse struct {
	ID            string  `json:"id"`
	UserID        string  `json:"user_id"`
	Type          Type    `json:"type"`
	TypeName      string  `json:"type_name"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	Period        string  `json:"period"`
	DaysCount     int     `json:"days_count"`
	DayPart       DayPart `json:"day_part"`
	DayPartName   string  `json:"day_part_name"`
	Comment       *string `json:"comment,omitempty"`
	Status        Status  `json:"status"`
	StatusName    string  `json:"status_name"`
	AdminComment  *string `json:"admin_comment,omitempty"`
	HasAttachment bool    `json:"has_attachment"`
	UserEmail     *string `json:"user_email,omitempty"`
	UserName      *string `json:"user_name,omitempty"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

func NewRequestResponse(r Request) RequestResponse {
	return RequestResponse{
		ID:            r.ID,
		UserID:        r.UserID,
		Type:          r.Type,
		TypeName:      r.Type.String(),
		StartDate:     r.StartDate.Format("2006-01-02"),
		EndDate:       r.EndDate.Format("2006-01-02"),
		Period:        r.PeriodDisplay(),
		DaysCount:     r.DaysCount(),
		DayPart:       r.DayPart,
		DayPartName:   r.DayPart.String(),
		Comment:       r.Comment,
		Status:        r.Status,
		StatusName:    r.Status.String(),
		AdminComment:  r.AdminComment,
		HasAttachment: r.HasAttachment(),
		UserEmail:     r.UserEmail,
		UserName:      r.UserName,
		CreatedAt:     r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     r.UpdatedAt.Format(time.RFC3339),
	}
}

func NewRequestResponses(requests []Request) []RequestResponse {
	responses := make([]RequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, NewRequestResponse(r))
	}
	return responses
}

type ListResponse struct {
	Requests []RequestResponse `json:"requests"`
	Total    int               `json:"total"`

	// Admin view only: number of submitted requests in the result
	PendingCount *int `json:"pending_count,omitempty"`
}

type SummaryResponse struct {
	Submitted int64             `json:"submitted"`
	Approved  int64             `json:"approved"`
	Rejected  int64             `json:"rejected"`
	Recent    []RequestResponse `json:"recent"`
}
