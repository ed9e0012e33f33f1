package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user624-47/farmflow-sub000/internal/domain"
)

// PostgresCropRepository implements CropRepository using PostgreSQL
type PostgresCropRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresCropRepository creates a new PostgresCropRepository
func NewPostgresCropRepository(pool *pgxpool.Pool) *PostgresCropRepository {
	return &PostgresCropRepository{pool: pool}
}

const cropColumns = `id, org_id, farmer_id, name, COALESCE(variety, '') as variety,
	status, planting_date, expected_harvest_date, actual_harvest_date,
	area_ha, expected_quantity, actual_quantity,
	COALESCE(image_url, '') as image_url, created_at, updated_at`

func scanCrop(row pgx.Row) (*domain.Crop, error) {
	crop := &domain.Crop{}
	err := row.Scan(
		&crop.ID,
		&crop.OrgID,
		&crop.FarmerID,
		&crop.Name,
		&crop.Variety,
		&crop.Status,
		&crop.PlantingDate,
		&crop.ExpectedHarvestDate,
		&crop.ActualHarvestDate,
		&crop.AreaHa,
		&crop.ExpectedQuantity,
		&crop.ActualQuantity,
		&crop.ImageURL,
		&crop.CreatedAt,
		&crop.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return crop, nil
}

// Create inserts a new crop row
func (r *PostgresCropRepository) Create(ctx context.Context, org domain.OrgContext, crop *domain.Crop) error {
	query := `
		INSERT INTO crops (id, org_id, farmer_id, name, variety, status,
			planting_date, expected_harvest_date, actual_harvest_date,
			area_ha, expected_quantity, actual_quantity, image_url,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := r.pool.Exec(ctx, query,
		crop.ID,
		org.OrgID,
		crop.FarmerID,
		crop.Name,
		nullStringOrValue(crop.Variety),
		crop.Status,
		crop.PlantingDate,
		crop.ExpectedHarvestDate,
		crop.ActualHarvestDate,
		crop.AreaHa,
		crop.ExpectedQuantity,
		crop.ActualQuantity,
		nullStringOrValue(crop.ImageURL),
		crop.CreatedAt,
		crop.UpdatedAt,
	)
	return err
}

// GetByID retrieves a crop by id scoped to the caller's organization
func (r *PostgresCropRepository) GetByID(ctx context.Context, org domain.OrgContext, id string) (*domain.Crop, error) {
	query := fmt.Sprintf(`SELECT %s FROM crops WHERE id = $1 AND org_id = $2`, cropColumns)
	crop, err := scanCrop(r.pool.QueryRow(ctx, query, id, org.OrgID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return crop, nil
}

// List retrieves crops with pagination and filters
func (r *PostgresCropRepository) List(ctx context.Context, org domain.OrgContext, filter CropFilter, page, pageSize int) ([]*domain.Crop, int, error) {
	whereClause := "WHERE org_id = $1"
	args := []interface{}{org.OrgID}
	argIndex := 2

	if filter.FarmerID != "" {
		whereClause += fmt.Sprintf(" AND farmer_id = $%d", argIndex)
		args = append(args, filter.FarmerID)
		argIndex++
	}
	if filter.Status != "" {
		whereClause += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, filter.Status)
		argIndex++
	}
	if filter.Search != "" {
		whereClause += fmt.Sprintf(" AND (name ILIKE $%d OR variety ILIKE $%d)", argIndex, argIndex)
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}
	if filter.PlantedFrom != nil {
		whereClause += fmt.Sprintf(" AND planting_date >= $%d", argIndex)
		args = append(args, *filter.PlantedFrom)
		argIndex++
	}
	if filter.PlantedTo != nil {
		whereClause += fmt.Sprintf(" AND planting_date <= $%d", argIndex)
		args = append(args, *filter.PlantedTo)
		argIndex++
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM crops %s", whereClause)
	var totalCount int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := fmt.Sprintf(`
		SELECT %s FROM crops
		%s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, cropColumns, whereClause, argIndex, argIndex+1)
	args = append(args, pageSize, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	crops := make([]*domain.Crop, 0)
	for rows.Next() {
		crop, err := scanCrop(rows)
		if err != nil {
			return nil, 0, err
		}
		crops = append(crops, crop)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return crops, totalCount, nil
}

// Update merges the patch into the existing row and returns the result
func (r *PostgresCropRepository) Update(ctx context.Context, org domain.OrgContext, id string, patch CropPatch) (*domain.Crop, error) {
	query := fmt.Sprintf(`
		UPDATE crops
		SET farmer_id = COALESCE($3, farmer_id),
		    name = COALESCE($4, name),
		    variety = COALESCE($5, variety),
		    status = COALESCE($6, status),
		    planting_date = COALESCE($7, planting_date),
		    expected_harvest_date = COALESCE($8, expected_harvest_date),
		    actual_harvest_date = COALESCE($9, actual_harvest_date),
		    area_ha = COALESCE($10, area_ha),
		    expected_quantity = COALESCE($11, expected_quantity),
		    actual_quantity = COALESCE($12, actual_quantity),
		    image_url = COALESCE($13, image_url),
		    updated_at = now()
		WHERE id = $1 AND org_id = $2
		RETURNING %s
	`, cropColumns)

	crop, err := scanCrop(r.pool.QueryRow(ctx, query,
		id,
		org.OrgID,
		patch.FarmerID,
		patch.Name,
		patch.Variety,
		patch.Status,
		patch.PlantingDate,
		patch.ExpectedHarvestDate,
		patch.ActualHarvestDate,
		patch.AreaHa,
		patch.ExpectedQuantity,
		patch.ActualQuantity,
		patch.ImageURL,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return crop, nil
}

// Delete hard-deletes a crop row
func (r *PostgresCropRepository) Delete(ctx context.Context, org domain.OrgContext, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM crops WHERE id = $1 AND org_id = $2`, id, org.OrgID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats computes aggregate counts over the organization's crop records
func (r *PostgresCropRepository) Stats(ctx context.Context, org domain.OrgContext) (*domain.CropStats, error) {
	stats := &domain.CropStats{
		ByStatus: make(map[string]int),
		ByName:   make(map[string]int),
	}

	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(area_ha), 0) FROM crops WHERE org_id = $1`, org.OrgID,
	).Scan(&stats.TotalCrops, &stats.TotalAreaHa); err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT status, COUNT(*) FROM crops WHERE org_id = $1 GROUP BY status`, org.OrgID)
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

	rows, err = r.pool.Query(ctx,
		`SELECT name, COUNT(*) FROM crops WHERE org_id = $1 GROUP BY name`, org.OrgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		var n int
		if err := rows.Scan(&name, &n); err != nil {
			return nil, err
		}
		stats.ByName[name] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}
