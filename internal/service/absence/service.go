package absence

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"time"

	"github.com/brandberg-skola/absence-backend-go/internal/domain/absence"
)

const (
	summaryWindowDays = 30

	recentLimitAdmin = 10
	recentLimitOwner = 5
)

// AttachmentStore abstracts the file service so attachment handling can be
// faked in tests.
type AttachmentStore interface {
	ValidateUpload(header *multipart.FileHeader) error
	UploadAbsenceAttachment(ctx context.Context, file io.Reader, header *multipart.FileHeader) (string, error)
	Open(ctx context.Context, path string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, path string) error
}

type Service struct {
	absence.Repository
	attachments AttachmentStore
}

func NewService(repository absence.Repository, attachments AttachmentStore) *Service {
	return &Service{
		Repository:  repository,
		attachments: attachments,
	}
}

func (s *Service) CreateRequest(ctx context.Context, actor absence.Actor, input absence.RequestInput) (absence.Request, error) {
	if err := input.Validate(); err != nil {
		return absence.Request{}, err
	}
	if input.FileHeader != nil {
		if err := s.attachments.ValidateUpload(input.FileHeader); err != nil {
			return absence.Request{}, err
		}
	}

	startDate, endDate := input.Dates()

	request := absence.Request{
		UserID:    actor.UserID,
		Type:      input.Type,
		StartDate: startDate,
		EndDate:   endDate,
		DayPart:   input.DayPart,
		Comment:   normalizeComment(input.Comment),
		Status:    absence.StatusSubmitted,
	}

	if input.FileHeader != nil {
		storedPath, err := s.attachments.UploadAbsenceAttachment(ctx, input.File, input.FileHeader)
		if err != nil {
			return absence.Request{}, err
		}
		request.AttachmentPath = &storedPath
	}

	created, err := s.Repository.Create(ctx, request)
	if err != nil {
		return absence.Request{}, fmt.Errorf("failed to create absence request: %w", err)
	}

	return created, nil
}

func (s *Service) GetRequest(ctx context.Context, actor absence.Actor, id string) (absence.Request, error) {
	request, err := s.Repository.GetByID(ctx, id)
	if err != nil {
		return absence.Request{}, err
	}

	if !actor.Admin && request.UserID != actor.UserID {
		return absence.Request{}, absence.ErrNotRequestOwner
	}

	return request, nil
}

// UpdateRequest replaces the owner-editable fields of a submitted request.
// Only the owner may edit, and only while the request is still submitted.
func (s *Service) UpdateRequest(ctx context.Context, actor absence.Actor, id string, input absence.UpdateRequestInput) (absence.Request, error) {
	request, err := s.Repository.GetByID(ctx, id)
	if err != nil {
		return absence.Request{}, err
	}

	if request.UserID != actor.UserID {
		return absence.Request{}, absence.ErrNotRequestOwner
	}
	if request.Status != absence.StatusSubmitted {
		return absence.Request{}, absence.ErrNotEditable
	}

	if err := input.Validate(); err != nil {
		return absence.Request{}, err
	}
	if input.FileHeader != nil {
		if err := s.attachments.ValidateUpload(input.FileHeader); err != nil {
			return absence.Request{}, err
		}
	}

	startDate, endDate := input.Dates()

	request.Type = input.Type
	request.StartDate = startDate
	request.EndDate = endDate
	request.DayPart = input.DayPart
	request.Comment = normalizeComment(input.Comment)

	oldAttachment := request.AttachmentPath

	switch {
	case input.FileHeader != nil:
		storedPath, err := s.attachments.UploadAbsenceAttachment(ctx, input.File, input.FileHeader)
		if err != nil {
			return absence.Request{}, err
		}
		request.AttachmentPath = &storedPath
	case input.RemoveAttachment:
		request.AttachmentPath = nil
	}

	updated, err := s.Repository.Update(ctx, request)
	if err != nil {
		return absence.Request{}, err
	}

	// The old file is removed only after the row change sticks; a leftover
	// file is preferable to a dangling attachment_path.
	if oldAttachment != nil && (input.FileHeader != nil || input.RemoveAttachment) {
		_ = s.attachments.Delete(ctx, *oldAttachment)
	}

	return updated, nil
}

// DeleteRequest removes a request. Owners may only delete requests that are
// still submitted; admins may delete any request.
func (s *Service) DeleteRequest(ctx context.Context, actor absence.Actor, id string) error {
	request, err := s.Repository.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !actor.Admin {
		if request.UserID != actor.UserID {
			return absence.ErrNotRequestOwner
		}
		if request.Status != absence.StatusSubmitted {
			return absence.ErrNotDeletable
		}
	}

	if err := s.Repository.Delete(ctx, id); err != nil {
		return err
	}

	if request.AttachmentPath != nil {
		// Best effort; the row is already gone.
		_ = s.attachments.Delete(ctx, *request.AttachmentPath)
	}

	return nil
}

func (s *Service) ApproveRequest(ctx context.Context, actor absence.Actor, id string, input absence.ApproveInput) (absence.Request, error) {
	if !actor.Admin {
		return absence.Request{}, absence.ErrAdminRequired
	}
	if err := input.Validate(); err != nil {
		return absence.Request{}, err
	}

	request, err := s.Repository.GetByID(ctx, id)
	if err != nil {
		return absence.Request{}, err
	}

	if request.Status != absence.StatusSubmitted {
		return absence.Request{}, absence.ErrAlreadyProcessed
	}

	comment := absence.DefaultApproveComment
	if normalized := normalizeComment(input.AdminComment); normalized != nil {
		comment = *normalized
	}

	request.Status = absence.StatusApproved
	request.AdminComment = &comment

	return s.Repository.Update(ctx, request)
}

func (s *Service) RejectRequest(ctx context.Context, actor absence.Actor, id string, input absence.RejectInput) (absence.Request, error) {
	if !actor.Admin {
		return absence.Request{}, absence.ErrAdminRequired
	}
	if err := input.Validate(); err != nil {
		return absence.Request{}, err
	}

	request, err := s.Repository.GetByID(ctx, id)
	if err != nil {
		return absence.Request{}, err
	}

	if request.Status != absence.StatusSubmitted {
		return absence.Request{}, absence.ErrAlreadyProcessed
	}

	request.Status = absence.StatusRejected
	request.AdminComment = &input.AdminComment

	return s.Repository.Update(ctx, request)
}

// ResetRequest returns a processed request to submitted and clears the admin
// comment. Allowed from any status.
func (s *Service) ResetRequest(ctx context.Context, actor absence.Actor, id string) (absence.Request, error) {
	if !actor.Admin {
		return absence.Request{}, absence.ErrAdminRequired
	}

	request, err := s.Repository.GetByID(ctx, id)
	if err != nil {
		return absence.Request{}, err
	}

	request.Status = absence.StatusSubmitted
	request.AdminComment = nil

	return s.Repository.Update(ctx, request)
}

func (s *Service) ListMyRequests(ctx context.Context, actor absence.Actor, filter absence.OwnerFilter) (absence.ListResponse, error) {
	requests, err := s.Repository.ListByUser(ctx, actor.UserID, filter)
	if err != nil {
		return absence.ListResponse{}, fmt.Errorf("failed to list absence requests: %w", err)
	}

	responses := absence.NewRequestResponses(requests)
	return absence.ListResponse{
		Requests: responses,
		Total:    len(responses),
	}, nil
}

func (s *Service) ListAllRequests(ctx context.Context, actor absence.Actor, filter absence.AdminFilter) (absence.ListResponse, error) {
	if !actor.Admin {
		return absence.ListResponse{}, absence.ErrAdminRequired
	}

	requests, err := s.Repository.ListAll(ctx, filter)
	if err != nil {
		return absence.ListResponse{}, fmt.Errorf("failed to list absence requests: %w", err)
	}

	pending := 0
	for _, r := range requests {
		if r.Status == absence.StatusSubmitted {
			pending++
		}
	}

	responses := absence.NewRequestResponses(requests)
	return absence.ListResponse{
		Requests:     responses,
		Total:        len(responses),
		PendingCount: &pending,
	}, nil
}

// Summary reports status counts over the last 30 days plus the most recent
// requests. Admins see all users; staff see only their own.
func (s *Service) Summary(ctx context.Context, actor absence.Actor) (absence.SummaryResponse, error) {
	var userID *string
	limit := recentLimitAdmin
	if !actor.Admin {
		userID = &actor.UserID
		limit = recentLimitOwner
	}

	since := time.Now().UTC().AddDate(0, 0, -summaryWindowDays)

	counts, err := s.Repository.CountByStatusSince(ctx, userID, since)
	if err != nil {
		return absence.SummaryResponse{}, fmt.Errorf("failed to count absence requests: %w", err)
	}

	recent, err := s.Repository.Recent(ctx, userID, limit)
	if err != nil {
		return absence.SummaryResponse{}, fmt.Errorf("failed to list recent absence requests: %w", err)
	}

	return absence.SummaryResponse{
		Submitted: counts.Submitted,
		Approved:  counts.Approved,
		Rejected:  counts.Rejected,
		Recent:    absence.NewRequestResponses(recent),
	}, nil
}

func (s *Service) OpenAttachment(ctx context.Context, actor absence.Actor, id string) (absence.Attachment, error) {
	request, err := s.Repository.GetByID(ctx, id)
	if err != nil {
		return absence.Attachment{}, err
	}

	if !actor.Admin && request.UserID != actor.UserID {
		return absence.Attachment{}, absence.ErrNotRequestOwner
	}
	if !request.HasAttachment() {
		return absence.Attachment{}, absence.ErrAttachmentNotFound
	}

	content, contentType, err := s.attachments.Open(ctx, *request.AttachmentPath)
	if err != nil {
		return absence.Attachment{}, absence.ErrAttachmentNotFound
	}

	return absence.Attachment{
		Content:     content,
		ContentType: contentType,
		FileName:    path.Base(*request.AttachmentPath),
	}, nil
}

func normalizeComment(comment *string) *string {
	if comment == nil || *comment == "" {
		return nil
	}
	return comment
}
