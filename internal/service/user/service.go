package user

import (
	"context"
	"fmt"

	"github.com/brandberg-skola/absence-backend-go/internal/domain/absence"
	"github.com/brandberg-skola/absence-backend-go/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

// AttachmentDeleter removes stored attachment files when a user and their
// requests are deleted.
type AttachmentDeleter interface {
	Delete(ctx context.Context, path string) error
}

type UserServiceImpl struct {
	user.UserRepository
	absences    absence.Repository
	attachments AttachmentDeleter
}

func NewUserService(userRepository user.UserRepository, absenceRepository absence.Repository, attachments AttachmentDeleter) user.UserService {
	return &UserServiceImpl{
		UserRepository: userRepository,
		absences:       absenceRepository,
		attachments:    attachments,
	}
}

// CreateUser implements user.UserService.
func (s *UserServiceImpl) CreateUser(ctx context.Context, req user.CreateUserRequest) (user.User, error) {
	if err := req.Validate(); err != nil {
		return user.User{}, err
	}

	exists, err := s.UserRepository.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to check user email: %w", err)
	}
	if exists {
		return user.User{}, user.ErrUserEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to hash password: %w", err)
	}
	passwordHash := string(hash)

	newUser := user.User{
		Email:        req.Email,
		PasswordHash: &passwordHash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         req.Role,
	}

	created, err := s.UserRepository.Create(ctx, newUser)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return created, nil
}

// GetUser implements user.UserService.
func (s *UserServiceImpl) GetUser(ctx context.Context, id string) (user.User, error) {
	return s.UserRepository.GetByID(ctx, id)
}

// DeleteUser implements user.UserService. The database cascades the user's
// absence requests; their attachment files are cleaned up first, best effort.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, actingUserID, id string) error {
	if actingUserID == id {
		return user.ErrCannotDeleteSelf
	}

	if _, err := s.UserRepository.GetByID(ctx, id); err != nil {
		return err
	}

	requests, err := s.absences.ListByUser(ctx, id, absence.OwnerFilter{})
	if err != nil {
		return fmt.Errorf("failed to list absence requests for user: %w", err)
	}
	for _, r := range requests {
		if r.AttachmentPath != nil {
			_ = s.attachments.Delete(ctx, *r.AttachmentPath)
		}
	}

	return s.UserRepository.Delete(ctx, id)
}
