package absence

import (
	"context"
	"io"
)

// Actor identifies the user performing an operation. Handlers build it from the
// verified token; services re-check ownership and role against it on every call.
type Actor struct {
	UserID string
	Admin  bool
}

// Attachment is a stored file opened for download.
type Attachment struct {
	Content     io.ReadCloser
	ContentType string
	FileName    string
}

type Service interface {
	CreateRequest(ctx context.Context, actor Actor, input RequestInput) (Request, error)
	GetRequest(ctx context.Context, actor Actor, id string) (Request, error)
	UpdateRequest(ctx context.Context, actor Actor, id string, input UpdateRequestInput) (Request, error)
	DeleteRequest(ctx context.Context, actor Actor, id string) error

	ApproveRequest(ctx context.Context, actor Actor, id string, input ApproveInput) (Request, error)
	RejectRequest(ctx context.Context, actor Actor, id string, input RejectInput) (Request, error)
	ResetRequest(ctx context.Context, actor Actor, id string) (Request, error)

	ListMyRequests(ctx context.Context, actor Actor, filter OwnerFilter) (ListResponse, error)
	ListAllRequests(ctx context.Context, actor Actor, filter AdminFilter) (ListResponse, error)
	Summary(ctx context.Context, actor Actor) (SummaryResponse, error)

	OpenAttachment(ctx context.Context, actor Actor, id string) (Attachment, error)
}
