package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user624-47/farmflow-sub000/internal/domain"
)

// PostgresFarmerRepository implements FarmerRepository using PostgreSQL
type PostgresFarmerRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresFarmerRepository creates a new PostgresFarmerRepository
func NewPostgresFarmerRepository(pool *pgxpool.Pool) *PostgresFarmerRepository {
	return &PostgresFarmerRepository{pool: pool}
}

const farmerColumns = `id, org_id, first_name, last_name,
	COALESCE(phone, '') as phone, COALESCE(email, '') as email,
	COALESCE(farm_location, '') as farm_location, farm_size_ha,
	COALESCE(crop_types, '{}') as crop_types,
	COALESCE(livestock_types, '{}') as livestock_types,
	created_at, updated_at`

func scanFarmer(row pgx.Row) (*domain.Farmer, error) {
	farmer := &domain.Farmer{}
	err := row.Scan(
		&farmer.ID,
		&farmer.OrgID,
		&farmer.FirstName,
		&farmer.LastName,
		&farmer.Phone,
		&farmer.Email,
		&farmer.FarmLocation,
		&farmer.FarmSizeHa,
		&farmer.CropTypes,
		&farmer.LivestockTypes,
		&farmer.CreatedAt,
		&farmer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return farmer, nil
}

// Create inserts a new farmer row
func (r *PostgresFarmerRepository) Create(ctx context.Context, org domain.OrgContext, farmer *domain.Farmer) error {
	query := `
		INSERT INTO farmers (id, org_id, first_name, last_name, phone, email,
			farm_location, farm_size_ha, crop_types, livestock_types, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.pool.Exec(ctx, query,
		farmer.ID,
		org.OrgID,
		farmer.FirstName,
		farmer.LastName,
		nullStringOrValue(farmer.Phone),
		nullStringOrValue(farmer.Email),
		nullStringOrValue(farmer.FarmLocation),
		farmer.FarmSizeHa,
		farmer.CropTypes,
		farmer.LivestockTypes,
		farmer.CreatedAt,
		farmer.UpdatedAt,
	)
	return err
}

// GetByID retrieves a farmer by id scoped to the caller's organization
func (r *PostgresFarmerRepository) GetByID(ctx context.Context, org domain.OrgContext, id string) (*domain.Farmer, error) {
	query := fmt.Sprintf(`SELECT %s FROM farmers WHERE id = $1 AND org_id = $2`, farmerColumns)
	farmer, err := scanFarmer(r.pool.QueryRow(ctx, query, id, org.OrgID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return farmer, nil
}

// List retrieves farmers with pagination and filters
func (r *PostgresFarmerRepository) List(ctx context.Context, org domain.OrgContext, filter FarmerFilter, page, pageSize int) ([]*domain.Farmer, int, error) {
	whereClause := "WHERE org_id = $1"
	args := []interface{}{org.OrgID}
	argIndex := 2

	if filter.Search != "" {
		whereClause += fmt.Sprintf(" AND (first_name ILIKE $%d OR last_name ILIKE $%d)", argIndex, argIndex)
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}
	if filter.CropType != "" {
		whereClause += fmt.Sprintf(" AND $%d = ANY(crop_types)", argIndex)
		args = append(args, filter.CropType)
		argIndex++
	}
	if filter.LivestockType != "" {
		whereClause += fmt.Sprintf(" AND $%d = ANY(livestock_types)", argIndex)
		args = append(args, filter.LivestockType)
		argIndex++
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM farmers %s", whereClause)
	var totalCount int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := fmt.Sprintf(`
		SELECT %s FROM farmers
		%s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, farmerColumns, whereClause, argIndex, argIndex+1)
	args = append(args, pageSize, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	farmers := make([]*domain.Farmer, 0)
	for rows.Next() {
		farmer, err := scanFarmer(rows)
		if err != nil {
			return nil, 0, err
		}
		farmers = append(farmers, farmer)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return farmers, totalCount, nil
}

// Update merges the patch into the existing row and returns the result
func (r *PostgresFarmerRepository) Update(ctx context.Context, org domain.OrgContext, id string, patch FarmerPatch) (*domain.Farmer, error) {
	query := fmt.Sprintf(`
		UPDATE farmers
		SET first_name = COALESCE($3, first_name),
		    last_name = COALESCE($4, last_name),
		    phone = COALESCE($5, phone),
		    email = COALESCE($6, email),
		    farm_location = COALESCE($7, farm_location),
		    farm_size_ha = COALESCE($8, farm_size_ha),
		    crop_types = COALESCE($9, crop_types),
		    livestock_types = COALESCE($10, livestock_types),
		    updated_at = now()
		WHERE id = $1 AND org_id = $2
		RETURNING %s
	`, farmerColumns)

	farmer, err := scanFarmer(r.pool.QueryRow(ctx, query,
		id,
		org.OrgID,
		patch.FirstName,
		patch.LastName,
		patch.Phone,
		patch.Email,
		patch.FarmLocation,
		patch.FarmSizeHa,
		patch.CropTypes,
		patch.LivestockTypes,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return farmer, nil
}

// Delete hard-deletes a farmer row
func (r *PostgresFarmerRepository) Delete(ctx context.Context, org domain.OrgContext, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM farmers WHERE id = $1 AND org_id = $2`, id, org.OrgID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountReferences counts rows in other tables that still reference the farmer
func (r *PostgresFarmerRepository) CountReferences(ctx context.Context, org domain.OrgContext, id string) (int, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM livestock WHERE farmer_id = $1 AND org_id = $2) +
			(SELECT COUNT(*) FROM crops WHERE farmer_id = $1 AND org_id = $2) +
			(SELECT COUNT(*) FROM financial_services WHERE farmer_id = $1 AND org_id = $2)
	`
	var count int
	err := r.pool.QueryRow(ctx, query, id, org.OrgID).Scan(&count)
	return count, err
}

// Stats computes aggregate counts over the organization's farmers
func (r *PostgresFarmerRepository) Stats(ctx context.Context, org domain.OrgContext) (*domain.FarmerStats, error) {
	stats := &domain.FarmerStats{
		ByCropType:      make(map[string]int),
		ByLivestockType: make(map[string]int),
	}

	summary := `
		SELECT COUNT(*),
		       COALESCE(SUM(farm_size_ha), 0),
		       COUNT(*) FILTER (WHERE created_at > now() - interval '30 days')
		FROM farmers WHERE org_id = $1
	`
	if err := r.pool.QueryRow(ctx, summary, org.OrgID).Scan(
		&stats.TotalFarmers, &stats.TotalFarmAreaHa, &stats.RegisteredLast30,
	); err != nil {
		return nil, err
	}

	byCrop := `
		SELECT t, COUNT(*) FROM farmers, unnest(crop_types) AS t
		WHERE org_id = $1 GROUP BY t
	`
	rows, err := r.pool.Query(ctx, byCrop, org.OrgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var t string
		var n int
		if err := rows.Scan(&t, &n); err != nil {
			return nil, err
		}
		stats.ByCropType[t] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	byLivestock := `
		SELECT t, COUNT(*) FROM farmers, unnest(livestock_types) AS t
		WHERE org_id = $1 GROUP BY t
	`
	rows, err = r.pool.Query(ctx, byLivestock, org.OrgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var t string
		var n int
		if err := rows.Scan(&t, &n); err != nil {
			return nil, err
		}
		stats.ByLivestockType[t] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}

// nullStringOrValue returns nil for empty strings, otherwise returns the value
func nullStringOrValue(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
