package absence

import (
	"context"
	"time"
)

// Repository - interface for the absence_requests table
type Repository interface {
	Create(ctx context.Context, request Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	ListByUser(ctx context.Context, userID string, filter OwnerFilter) ([]Request, error)
	ListAll(ctx context.Context, filter AdminFilter) ([]Request, error)
	Recent(ctx context.Context, userID *string, limit int) ([]Request, error)
	CountByStatusSince(ctx context.Context, userID *string, since time.Time) (StatusCounts, error)
	Update(ctx context.Context, request Request) (Request, error)
	Delete(ctx context.Context, id string) error
}
