package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brandberg-skola/absence-backend-go/internal/domain/absence"
	"github.com/brandberg-skola/absence-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type absenceRequestRepositoryImpl struct {
	db *database.DB
}

func NewAbsenceRequestRepository(db *database.DB) absence.Repository {
	return &absenceRequestRepositoryImpl{db: db}
}

const requestColumns = `
	ar.id, ar.user_id, ar.type, ar.start_date, ar.end_date, ar.day_part,
	ar.comment, ar.status, ar.admin_comment, ar.attachment_path,
	ar.created_at, ar.updated_at
`

func scanRequest(row pgx.Row) (absence.Request, error) {
	var req absence.Request
	err := row.Scan(
		&req.ID,
		&req.UserID,
		&req.Type,
		&req.StartDate,
		&req.EndDate,
		&req.DayPart,
		&req.Comment,
		&req.Status,
		&req.AdminComment,
		&req.AttachmentPath,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	return req, err
}

func (r *absenceRequestRepositoryImpl) Create(ctx context.Context, request absence.Request) (absence.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO absence_requests (
			id, user_id, type, start_date, end_date, day_part,
			comment, status, admin_comment, attachment_path,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5,
			$6, $7, $8, $9,
			NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.UserID, request.Type, request.StartDate, request.EndDate, request.DayPart,
		request.Comment, request.Status, request.AdminComment, request.AttachmentPath,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)

	if err != nil {
		return absence.Request{}, fmt.Errorf("failed to insert absence request: %w", err)
	}

	return request, nil
}

func (r *absenceRequestRepositoryImpl) GetByID(ctx context.Context, id string) (absence.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + requestColumns + `,
			   u.email,
			   TRIM(CONCAT(COALESCE(u.first_name, ''), ' ', COALESCE(u.last_name, ''))) AS user_name
		FROM absence_requests ar
		JOIN users u ON ar.user_id = u.id
		WHERE ar.id = $1
	`

	var req absence.Request
	var userEmail, userName string

	err := q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.UserID, &req.Type, &req.StartDate, &req.EndDate, &req.DayPart,
		&req.Comment, &req.Status, &req.AdminComment, &req.AttachmentPath,
		&req.CreatedAt, &req.UpdatedAt,
		&userEmail, &userName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return absence.Request{}, absence.ErrRequestNotFound
		}
		return absence.Request{}, err
	}

	if userName == "" {
		userName = userEmail
	}
	req.UserEmail = &userEmail
	req.UserName = &userName

	return req, nil
}

// ListByUser implements the owner-scoped list. The month filter matches any
// request whose period overlaps the given calendar month.
func (r *absenceRequestRepositoryImpl) ListByUser(ctx context.Context, userID string, filter absence.OwnerFilter) ([]absence.Request, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{"ar.user_id = $1"}
	args := []interface{}{userID}
	argIdx := 2

	if filter.Month != nil {
		monthStart := time.Date(filter.Month.Year(), filter.Month.Month(), 1, 0, 0, 0, 0, time.UTC)
		monthEnd := monthStart.AddDate(0, 1, -1)
		whereClauses = append(whereClauses, fmt.Sprintf("ar.start_date <= $%d AND ar.end_date >= $%d", argIdx, argIdx+1))
		args = append(args, monthEnd, monthStart)
		argIdx += 2
	}

	if filter.Type != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("ar.type = $%d", argIdx))
		args = append(args, *filter.Type)
		argIdx++
	}

	if filter.Status != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("ar.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	query := `
		SELECT ` + requestColumns + `
		FROM absence_requests ar
		WHERE ` + strings.Join(whereClauses, " AND ") + `
		ORDER BY ar.created_at DESC
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query absence requests: %w", err)
	}
	defer rows.Close()

	var requests []absence.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan absence request: %w", err)
		}
		requests = append(requests, req)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return requests, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLikePattern neutralizes LIKE metacharacters in user-entered search
// text so "100%" matches literally instead of as a wildcard.
func escapeLikePattern(s string) string {
	return likeEscaper.Replace(s)
}

// ListAll implements the admin-scoped list, joined with user identity for
// display and the person filter.
//
// The from/to predicates intentionally use the OR form the existing views
// were built on (start >= from OR end >= from, and the mirror for to). It is
// looser than strict interval containment; kept as-is for compatibility with
// saved filter links.
func (r *absenceRequestRepositoryImpl) ListAll(ctx context.Context, filter absence.AdminFilter) ([]absence.Request, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{}
	args := []interface{}{}
	argIdx := 1

	if filter.Person != nil && *filter.Person != "" {
		whereClauses = append(whereClauses, fmt.Sprintf(
			"(u.email ILIKE $%d OR u.first_name ILIKE $%d OR u.last_name ILIKE $%d)", argIdx, argIdx, argIdx))
		args = append(args, "%"+escapeLikePattern(*filter.Person)+"%")
		argIdx++
	}

	if filter.FromDate != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("(ar.start_date >= $%d OR ar.end_date >= $%d)", argIdx, argIdx))
		args = append(args, *filter.FromDate)
		argIdx++
	}

	if filter.ToDate != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("(ar.start_date <= $%d OR ar.end_date <= $%d)", argIdx, argIdx))
		args = append(args, *filter.ToDate)
		argIdx++
	}

	if filter.Type != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("ar.type = $%d", argIdx))
		args = append(args, *filter.Type)
		argIdx++
	}

	if filter.Status != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("ar.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	whereClause := ""
	if len(whereClauses) > 0 {
		whereClause = "WHERE " + strings.Join(whereClauses, " AND ")
	}

	query := `
		SELECT ` + requestColumns + `,
			   u.email,
			   TRIM(CONCAT(COALESCE(u.first_name, ''), ' ', COALESCE(u.last_name, ''))) AS user_name
		FROM absence_requests ar
		JOIN users u ON ar.user_id = u.id
		` + whereClause + `
		ORDER BY ar.created_at DESC
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query absence requests: %w", err)
	}
	defer rows.Close()

	var requests []absence.Request
	for rows.Next() {
		var req absence.Request
		var userEmail, userName string

		err := rows.Scan(
			&req.ID, &req.UserID, &req.Type, &req.StartDate, &req.EndDate, &req.DayPart,
			&req.Comment, &req.Status, &req.AdminComment, &req.AttachmentPath,
			&req.CreatedAt, &req.UpdatedAt,
			&userEmail, &userName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan absence request: %w", err)
		}

		if userName == "" {
			userName = userEmail
		}
		req.UserEmail = &userEmail
		req.UserName = &userName
		requests = append(requests, req)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return requests, nil
}

// Recent returns the newest requests, all users when userID is nil.
func (r *absenceRequestRepositoryImpl) Recent(ctx context.Context, userID *string, limit int) ([]absence.Request, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := ""
	args := []interface{}{}
	argIdx := 1

	if userID != nil {
		whereClause = fmt.Sprintf("WHERE ar.user_id = $%d", argIdx)
		args = append(args, *userID)
		argIdx++
	}

	query := fmt.Sprintf(`
		SELECT `+requestColumns+`,
			   u.email,
			   TRIM(CONCAT(COALESCE(u.first_name, ''), ' ', COALESCE(u.last_name, ''))) AS user_name
		FROM absence_requests ar
		JOIN users u ON ar.user_id = u.id
		%s
		ORDER BY ar.created_at DESC
		LIMIT $%d
	`, whereClause, argIdx)
	args = append(args, limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent absence requests: %w", err)
	}
	defer rows.Close()

	var requests []absence.Request
	for rows.Next() {
		var req absence.Request
		var userEmail, userName string

		err := rows.Scan(
			&req.ID, &req.UserID, &req.Type, &req.StartDate, &req.EndDate, &req.DayPart,
			&req.Comment, &req.Status, &req.AdminComment, &req.AttachmentPath,
			&req.CreatedAt, &req.UpdatedAt,
			&userEmail, &userName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan absence request: %w", err)
		}

		if userName == "" {
			userName = userEmail
		}
		req.UserEmail = &userEmail
		req.UserName = &userName
		requests = append(requests, req)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return requests, nil
}

// CountByStatusSince counts requests created at or after since, grouped by
// status. All users when userID is nil.
func (r *absenceRequestRepositoryImpl) CountByStatusSince(ctx context.Context, userID *string, since time.Time) (absence.StatusCounts, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{"created_at >= $1"}
	args := []interface{}{since}

	if userID != nil {
		whereClauses = append(whereClauses, "user_id = $2")
		args = append(args, *userID)
	}

	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 1),
			COUNT(*) FILTER (WHERE status = 2),
			COUNT(*) FILTER (WHERE status = 3)
		FROM absence_requests
		WHERE ` + strings.Join(whereClauses, " AND ")

	var counts absence.StatusCounts
	err := q.QueryRow(ctx, query, args...).Scan(&counts.Submitted, &counts.Approved, &counts.Rejected)
	if err != nil {
		return absence.StatusCounts{}, fmt.Errorf("failed to count absence requests: %w", err)
	}

	return counts, nil
}

// Update overwrites all mutable columns. Last writer wins; there is no
// concurrency token on the row.
func (r *absenceRequestRepositoryImpl) Update(ctx context.Context, request absence.Request) (absence.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE absence_requests
		SET type = $1, start_date = $2, end_date = $3, day_part = $4,
			comment = $5, status = $6, admin_comment = $7, attachment_path = $8,
			updated_at = NOW()
		WHERE id = $9
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		request.Type, request.StartDate, request.EndDate, request.DayPart,
		request.Comment, request.Status, request.AdminComment, request.AttachmentPath,
		request.ID,
	).Scan(&request.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return absence.Request{}, absence.ErrRequestNotFound
		}
		return absence.Request{}, fmt.Errorf("failed to update absence request %s: %w", request.ID, err)
	}

	return request, nil
}

func (r *absenceRequestRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM absence_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return absence.ErrRequestNotFound
	}
	return nil
}
