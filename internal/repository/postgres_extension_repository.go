package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user624-47/farmflow-sub000/internal/domain"
)

// PostgresExtensionRepository implements ExtensionRepository using PostgreSQL
type PostgresExtensionRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresExtensionRepository creates a new PostgresExtensionRepository
func NewPostgresExtensionRepository(pool *pgxpool.Pool) *PostgresExtensionRepository {
	return &PostgresExtensionRepository{pool: pool}
}

const extensionColumns = `id, org_id, title, category,
	COALESCE(description, '') as description, status, scheduled_date,
	completed_date, COALESCE(location, '') as location, attendee_count,
	created_at, updated_at`

func scanExtension(row pgx.Row) (*domain.ExtensionService, error) {
	svc := &domain.ExtensionService{}
	err := row.Scan(
		&svc.ID,
		&svc.OrgID,
		&svc.Title,
		&svc.Category,
		&svc.Description,
		&svc.Status,
		&svc.ScheduledDate,
		&svc.CompletedDate,
		&svc.Location,
		&svc.AttendeeCount,
		&svc.CreatedAt,
		&svc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return svc, nil
}

// Create inserts a new extension service row
func (r *PostgresExtensionRepository) Create(ctx context.Context, org domain.OrgContext, svc *domain.ExtensionService) error {
	query := `
		INSERT INTO extension_services (id, org_id, title, category, description,
			status, scheduled_date, completed_date, location, attendee_count,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.pool.Exec(ctx, query,
		svc.ID,
		org.OrgID,
		svc.Title,
		svc.Category,
		nullStringOrValue(svc.Description),
		svc.Status,
		svc.ScheduledDate,
		svc.CompletedDate,
		nullStringOrValue(svc.Location),
		svc.AttendeeCount,
		svc.CreatedAt,
		svc.UpdatedAt,
	)
	return err
}

// GetByID retrieves an extension service by id scoped to the caller's organization
func (r *PostgresExtensionRepository) GetByID(ctx context.Context, org domain.OrgContext, id string) (*domain.ExtensionService, error) {
	query := fmt.Sprintf(`SELECT %s FROM extension_services WHERE id = $1 AND org_id = $2`, extensionColumns)
	svc, err := scanExtension(r.pool.QueryRow(ctx, query, id, org.OrgID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return svc, nil
}

// List retrieves extension services with pagination and filters
func (r *PostgresExtensionRepository) List(ctx context.Context, org domain.OrgContext, filter ExtensionFilter, page, pageSize int) ([]*domain.ExtensionService, int, error) {
	whereClause := "WHERE org_id = $1"
	args := []interface{}{org.OrgID}
	argIndex := 2

	if filter.Category != "" {
		whereClause += fmt.Sprintf(" AND category = $%d", argIndex)
		args = append(args, filter.Category)
		argIndex++
	}
	if filter.Status != "" {
		whereClause += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, filter.Status)
		argIndex++
	}
	if filter.Search != "" {
		whereClause += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", argIndex, argIndex)
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}
	if filter.ScheduledFrom != nil {
		whereClause += fmt.Sprintf(" AND scheduled_date >= $%d", argIndex)
		args = append(args, *filter.ScheduledFrom)
		argIndex++
	}
	if filter.ScheduledTo != nil {
		whereClause += fmt.Sprintf(" AND scheduled_date <= $%d", argIndex)
		args = append(args, *filter.ScheduledTo)
		argIndex++
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM extension_services %s", whereClause)
	var totalCount int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := fmt.Sprintf(`
		SELECT %s FROM extension_services
		%s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, extensionColumns, whereClause, argIndex, argIndex+1)
	args = append(args, pageSize, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	services := make([]*domain.ExtensionService, 0)
	for rows.Next() {
		svc, err := scanExtension(rows)
		if err != nil {
			return nil, 0, err
		}
		services = append(services, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return services, totalCount, nil
}

// Update merges the patch into the existing row and returns the result
func (r *PostgresExtensionRepository) Update(ctx context.Context, org domain.OrgContext, id string, patch ExtensionPatch) (*domain.ExtensionService, error) {
	query := fmt.Sprintf(`
		UPDATE extension_services
		SET title = COALESCE($3, title),
		    category = COALESCE($4, category),
		    description = COALESCE($5, description),
		    status = COALESCE($6, status),
		    scheduled_date = COALESCE($7, scheduled_date),
		    completed_date = COALESCE($8, completed_date),
		    location = COALESCE($9, location),
		    attendee_count = COALESCE($10, attendee_count),
		    updated_at = now()
		WHERE id = $1 AND org_id = $2
		RETURNING %s
	`, extensionColumns)

	svc, err := scanExtension(r.pool.QueryRow(ctx, query,
		id,
		org.OrgID,
		patch.Title,
		patch.Category,
		patch.Description,
		patch.Status,
		patch.ScheduledDate,
		patch.CompletedDate,
		patch.Location,
		patch.AttendeeCount,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return svc, nil
}

// Delete hard-deletes an extension service row
func (r *PostgresExtensionRepository) Delete(ctx context.Context, org domain.OrgContext, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM extension_services WHERE id = $1 AND org_id = $2`, id, org.OrgID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats computes aggregate counts over extension activities
func (r *PostgresExtensionRepository) Stats(ctx context.Context, org domain.OrgContext) (*domain.ExtensionStats, error) {
	stats := &domain.ExtensionStats{
		ByCategory: make(map[string]int),
		ByStatus:   make(map[string]int),
	}

	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(attendee_count), 0) FROM extension_services WHERE org_id = $1`, org.OrgID,
	).Scan(&stats.TotalServices, &stats.TotalAttendees); err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT category, COUNT(*) FROM extension_services WHERE org_id = $1 GROUP BY category`, org.OrgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var c string
		var n int
		if err := rows.Scan(&c, &n); err != nil {
			return nil, err
		}
		stats.ByCategory[c] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.pool.Query(ctx,
		`SELECT status, COUNT(*) FROM extension_services WHERE org_id = $1 GROUP BY status`, org.OrgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var s string
		var n int
		if err := rows.Scan(&s, &n); err != nil {
			return nil, err
		}
		stats.ByStatus[s] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}
