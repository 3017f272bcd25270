package fixtures

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/brandberg-skola/absence-backend-go/internal/domain/absence"
	"github.com/brandberg-skola/absence-backend-go/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

// SeedDemoData provisions a demo admin, two staff accounts and a handful of
// absence requests. It is a no-op when the admin account already exists.
func SeedDemoData(ctx context.Context, users user.UserRepository, absences absence.Repository) error {
	exists, err := users.ExistsByEmail(ctx, "admin@example.com")
	if err != nil {
		return fmt.Errorf("failed to check for existing demo data: %w", err)
	}
	if exists {
		slog.Info("Demo data already present, skipping seed")
		return nil
	}

	admin, err := createUser(ctx, users, "admin@example.com", "admin123", "Anna", "Andersson", user.RoleAdmin)
	if err != nil {
		return err
	}
	staff1, err := createUser(ctx, users, "erik@example.com", "staff123", "Erik", "Eriksson", user.RoleStaff)
	if err != nil {
		return err
	}
	staff2, err := createUser(ctx, users, "maria@example.com", "staff123", "Maria", "Nilsson", user.RoleStaff)
	if err != nil {
		return err
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)

	requests := []absence.Request{
		{
			UserID:    staff1.ID,
			Type:      absence.TypeSick,
			StartDate: today.AddDate(0, 0, -7),
			EndDate:   today.AddDate(0, 0, -5),
			DayPart:   absence.DayPartFullDay,
			Status:    absence.StatusApproved,
			AdminComment: func() *string {
				c := absence.DefaultApproveComment
				return &c
			}(),
		},
		{
			UserID:    staff1.ID,
			Type:      absence.TypeVacation,
			StartDate: today.AddDate(0, 0, 14),
			EndDate:   today.AddDate(0, 0, 18),
			DayPart:   absence.DayPartFullDay,
			Status:    absence.StatusSubmitted,
		},
		{
			UserID:    staff2.ID,
			Type:      absence.TypeChildCare,
			StartDate: today.AddDate(0, 0, 1),
			EndDate:   today.AddDate(0, 0, 1),
			DayPart:   absence.DayPartMorning,
			Status:    absence.StatusSubmitted,
		},
		{
			UserID:    staff2.ID,
			Type:      absence.TypeOther,
			StartDate: today.AddDate(0, 0, -2),
			EndDate:   today.AddDate(0, 0, -2),
			DayPart:   absence.DayPartAfternoon,
			Comment: func() *string {
				c := "Dentist appointment"
				return &c
			}(),
			Status: absence.StatusRejected,
			AdminComment: func() *string {
				c := "Please use personal leave for appointments."
				return &c
			}(),
		},
	}

	for _, req := range requests {
		if _, err := absences.Create(ctx, req); err != nil {
			return fmt.Errorf("failed to seed absence request: %w", err)
		}
	}

	slog.Info("Demo data seeded", "admin", admin.Email, "staff", []string{staff1.Email, staff2.Email})
	return nil
}

func createUser(ctx context.Context, users user.UserRepository, email, password, firstName, lastName string, role user.Role) (user.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to hash demo password: %w", err)
	}
	passwordHash := string(hash)

	created, err := users.Create(ctx, user.User{
		Email:        email,
		PasswordHash: &passwordHash,
		FirstName:    &firstName,
		LastName:     &lastName,
		Role:         role,
	})
	if err != nil {
		return user.User{}, fmt.Errorf("failed to seed user %s: %w", email, err)
	}
	return created, nil
}
