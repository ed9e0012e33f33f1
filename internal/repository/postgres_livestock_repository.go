package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user624-47/farmflow-sub000/internal/domain"
)

// ErrRecordNotFound indicates that no embedded record with the given id
// exists in the parent's collection.
var ErrRecordNotFound = errors.New("embedded record not found")

// PostgresLivestockRepository implements LivestockRepository using PostgreSQL.
// Health, breeding and feeding histories live in JSONB array columns on the
// livestock row; array mutations run under a row lock.
type PostgresLivestockRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresLivestockRepository creates a new PostgresLivestockRepository
func NewPostgresLivestockRepository(pool *pgxpool.Pool) *PostgresLivestockRepository {
	return &PostgresLivestockRepository{pool: pool}
}

const livestockColumns = `id, org_id, farmer_id, tag_number, type,
	COALESCE(breed, '') as breed, COALESCE(gender, '') as gender, status,
	acquisition_date,
	COALESCE(health_records, '[]'::jsonb) as health_records,
	COALESCE(breeding_records, '[]'::jsonb) as breeding_records,
	COALESCE(feeding_records, '[]'::jsonb) as feeding_records,
	created_at, updated_at`

func scanLivestock(row pgx.Row) (*domain.Livestock, error) {
	animal := &domain.Livestock{}
	var healthRaw, breedingRaw, feedingRaw []byte
	err := row.Scan(
		&animal.ID,
		&animal.OrgID,
		&animal.FarmerID,
		&animal.TagNumber,
		&animal.Type,
		&animal.Breed,
		&animal.Gender,
		&animal.Status,
		&animal.AcquisitionDate,
		&healthRaw,
		&breedingRaw,
		&feedingRaw,
		&animal.CreatedAt,
		&animal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(healthRaw, &animal.HealthRecords); err != nil {
		return nil, fmt.Errorf("failed to decode health records: %w", err)
	}
	if err := json.Unmarshal(breedingRaw, &animal.BreedingRecords); err != nil {
		return nil, fmt.Errorf("failed to decode breeding records: %w", err)
	}
	if err := json.Unmarshal(feedingRaw, &animal.FeedingRecords); err != nil {
		return nil, fmt.Errorf("failed to decode feeding records: %w", err)
	}
	return animal, nil
}

// Create inserts a new livestock row with empty record collections unless
// the caller provided initial ones
func (r *PostgresLivestockRepository) Create(ctx context.Context, org domain.OrgContext, animal *domain.Livestock) error {
	healthRaw, err := marshalRecords(animal.HealthRecords)
	if err != nil {
		return err
	}
	breedingRaw, err := marshalRecords(animal.BreedingRecords)
	if err != nil {
		return err
	}
	feedingRaw, err := marshalRecords(animal.FeedingRecords)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO livestock (id, org_id, farmer_id, tag_number, type, breed, gender,
			status, acquisition_date, health_records, breeding_records, feeding_records,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err = r.pool.Exec(ctx, query,
		animal.ID,
		org.OrgID,
		animal.FarmerID,
		animal.TagNumber,
		animal.Type,
		nullStringOrValue(animal.Breed),
		nullStringOrValue(animal.Gender),
		animal.Status,
		animal.AcquisitionDate,
		healthRaw,
		breedingRaw,
		feedingRaw,
		animal.CreatedAt,
		animal.UpdatedAt,
	)
	return err
}

func marshalRecords(v interface{}) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode records: %w", err)
	}
	if string(raw) == "null" {
		raw = []byte("[]")
	}
	return raw, nil
}

// GetByID retrieves a livestock row with its embedded record collections
func (r *PostgresLivestockRepository) GetByID(ctx context.Context, org domain.OrgContext, id string) (*domain.Livestock, error) {
	query := fmt.Sprintf(`SELECT %s FROM livestock WHERE id = $1 AND org_id = $2`, livestockColumns)
	animal, err := scanLivestock(r.pool.QueryRow(ctx, query, id, org.OrgID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return animal, nil
}

// List retrieves livestock with pagination and filters
func (r *PostgresLivestockRepository) List(ctx context.Context, org domain.OrgContext, filter LivestockFilter, page, pageSize int) ([]*domain.Livestock, int, error) {
	whereClause := "WHERE org_id = $1"
	args := []interface{}{org.OrgID}
	argIndex := 2

	if filter.FarmerID != "" {
		whereClause += fmt.Sprintf(" AND farmer_id = $%d", argIndex)
		args = append(args, filter.FarmerID)
		argIndex++
	}
	if filter.Type != "" {
		whereClause += fmt.Sprintf(" AND type = $%d", argIndex)
		args = append(args, filter.Type)
		argIndex++
	}
	if filter.Status != "" {
		whereClause += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, filter.Status)
		argIndex++
	}
	if filter.Search != "" {
		whereClause += fmt.Sprintf(" AND (tag_number ILIKE $%d OR breed ILIKE $%d)", argIndex, argIndex)
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM livestock %s", whereClause)
	var totalCount int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := fmt.Sprintf(`
		SELECT %s FROM livestock
		%s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, livestockColumns, whereClause, argIndex, argIndex+1)
	args = append(args, pageSize, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	animals := make([]*domain.Livestock, 0)
	for rows.Next() {
		animal, err := scanLivestock(rows)
		if err != nil {
			return nil, 0, err
		}
		animals = append(animals, animal)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return animals, totalCount, nil
}

// Update merges the patch into the existing row and returns the result
func (r *PostgresLivestockRepository) Update(ctx context.Context, org domain.OrgContext, id string, patch LivestockPatch) (*domain.Livestock, error) {
	query := fmt.Sprintf(`
		UPDATE livestock
		SET farmer_id = COALESCE($3, farmer_id),
		    tag_number = COALESCE($4, tag_number),
		    type = COALESCE($5, type),
		    breed = COALESCE($6, breed),
		    gender = COALESCE($7, gender),
		    status = COALESCE($8, status),
		    acquisition_date = COALESCE($9, acquisition_date),
		    updated_at = now()
		WHERE id = $1 AND org_id = $2
		RETURNING %s
	`, livestockColumns)

	animal, err := scanLivestock(r.pool.QueryRow(ctx, query,
		id,
		org.OrgID,
		patch.FarmerID,
		patch.TagNumber,
		patch.Type,
		patch.Breed,
		patch.Gender,
		patch.Status,
		patch.AcquisitionDate,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return animal, nil
}

// Delete hard-deletes a livestock row
func (r *PostgresLivestockRepository) Delete(ctx context.Context, org domain.OrgContext, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM livestock WHERE id = $1 AND org_id = $2`, id, org.OrgID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// mutateRecords rewrites one JSONB record column inside a row-locked
// transaction. The column name comes from a fixed set of constants, never
// from caller input.
func (r *PostgresLivestockRepository) mutateRecords(ctx context.Context, org domain.OrgContext, parentID, column string, mutate func(raw []byte) ([]byte, error)) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var raw []byte
	selectQuery := fmt.Sprintf(
		`SELECT COALESCE(%s, '[]'::jsonb) FROM livestock WHERE id = $1 AND org_id = $2 FOR UPDATE`,
		column,
	)
	if err := tx.QueryRow(ctx, selectQuery, parentID, org.OrgID).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	updated, err := mutate(raw)
	if err != nil {
		return err
	}

	updateQuery := fmt.Sprintf(
		`UPDATE livestock SET %s = $3, updated_at = now() WHERE id = $1 AND org_id = $2`,
		column,
	)
	if _, err := tx.Exec(ctx, updateQuery, parentID, org.OrgID, updated); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// AddHealthRecord appends a record to the parent's health collection
func (r *PostgresLivestockRepository) AddHealthRecord(ctx context.Context, org domain.OrgContext, parentID string, record domain.HealthRecord) (*domain.HealthRecord, error) {
	err := r.mutateRecords(ctx, org, parentID, "health_records", func(raw []byte) ([]byte, error) {
		var records []domain.HealthRecord
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, err
		}
		records = append(records, record)
		return json.Marshal(records)
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateHealthRecord replaces fields of the matching record in place
func (r *PostgresLivestockRepository) UpdateHealthRecord(ctx context.Context, org domain.OrgContext, parentID, recordID string, patch HealthRecordPatch) (*domain.HealthRecord, error) {
	var updated domain.HealthRecord
	err := r.mutateRecords(ctx, org, parentID, "health_records", func(raw []byte) ([]byte, error) {
		var records []domain.HealthRecord
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, err
		}
		found := false
		for i := range records {
			if records[i].ID != recordID {
				continue
			}
			if patch.Date != nil {
				records[i].Date = *patch.Date
			}
			if patch.Diagnosis != nil {
				records[i].Diagnosis = *patch.Diagnosis
			}
			if patch.Treatment != nil {
				records[i].Treatment = *patch.Treatment
			}
			if patch.Medication != nil {
				records[i].Medication = *patch.Medication
			}
			if patch.Veterinarian != nil {
				records[i].Veterinarian = *patch.Veterinarian
			}
			if patch.Notes != nil {
				records[i].Notes = *patch.Notes
			}
			updated = records[i]
			found = true
			break
		}
		if !found {
			return nil, ErrRecordNotFound
		}
		return json.Marshal(records)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// RemoveHealthRecord filters the matching record out of the collection
func (r *PostgresLivestockRepository) RemoveHealthRecord(ctx context.Context, org domain.OrgContext, parentID, recordID string) error {
	return r.mutateRecords(ctx, org, parentID, "health_records", func(raw []byte) ([]byte, error) {
		var records []domain.HealthRecord
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, err
		}
		kept := records[:0]
		found := false
		for _, rec := range records {
			if rec.ID == recordID {
				found = true
				continue
			}
			kept = append(kept, rec)
		}
		if !found {
			return nil, ErrRecordNotFound
		}
		return marshalRecords(kept)
	})
}

// AddBreedingRecord appends a record to the parent's breeding collection
func (r *PostgresLivestockRepository) AddBreedingRecord(ctx context.Context, org domain.OrgContext, parentID string, record domain.BreedingRecord) (*domain.BreedingRecord, error) {
	err := r.mutateRecords(ctx, org, parentID, "breeding_records", func(raw []byte) ([]byte, error) {
		var records []domain.BreedingRecord
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, err
		}
		records = append(records, record)
		return json.Marshal(records)
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateBreedingRecord replaces fields of the matching record in place
func (r *PostgresLivestockRepository) UpdateBreedingRecord(ctx context.Context, org domain.OrgContext, parentID, recordID string, patch BreedingRecordPatch) (*domain.BreedingRecord, error) {
	var updated domain.BreedingRecord
	err := r.mutateRecords(ctx, org, parentID, "breeding_records", func(raw []byte) ([]byte, error) {
		var records []domain.BreedingRecord
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, err
		}
		found := false
		for i := range records {
			if records[i].ID != recordID {
				continue
			}
			if patch.BreedingDate != nil {
				records[i].BreedingDate = *patch.BreedingDate
			}
			if patch.Status != nil {
				records[i].Status = *patch.Status
			}
			if patch.ExpectedBirthDate != nil {
				records[i].ExpectedBirthDate = patch.ExpectedBirthDate
			}
			if patch.ActualBirthDate != nil {
				records[i].ActualBirthDate = patch.ActualBirthDate
			}
			if patch.SireTag != nil {
				records[i].SireTag = *patch.SireTag
			}
			if patch.Notes != nil {
				records[i].Notes = *patch.Notes
			}
			updated = records[i]
			found = true
			break
		}
		if !found {
			return nil, ErrRecordNotFound
		}
		return json.Marshal(records)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// RemoveBreedingRecord filters the matching record out of the collection
func (r *PostgresLivestockRepository) RemoveBreedingRecord(ctx context.Context, org domain.OrgContext, parentID, recordID string) error {
	return r.mutateRecords(ctx, org, parentID, "breeding_records", func(raw []byte) ([]byte, error) {
		var records []domain.BreedingRecord
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, err
		}
		kept := records[:0]
		found := false
		for _, rec := range records {
			if rec.ID == recordID {
				found = true
				continue
			}
			kept = append(kept, rec)
		}
		if !found {
			return nil, ErrRecordNotFound
		}
		return marshalRecords(kept)
	})
}

// AddFeedingRecord appends a record to the parent's feeding collection
func (r *PostgresLivestockRepository) AddFeedingRecord(ctx context.Context, org domain.OrgContext, parentID string, record domain.FeedingRecord) (*domain.FeedingRecord, error) {
	err := r.mutateRecords(ctx, org, parentID, "feeding_records", func(raw []byte) ([]byte, error) {
		var records []domain.FeedingRecord
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, err
		}
		records = append(records, record)
		return json.Marshal(records)
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateFeedingRecord replaces fields of the matching record in place
func (r *PostgresLivestockRepository) UpdateFeedingRecord(ctx context.Context, org domain.OrgContext, parentID, recordID string, patch FeedingRecordPatch) (*domain.FeedingRecord, error) {
	var updated domain.FeedingRecord
	err := r.mutateRecords(ctx, org, parentID, "feeding_records", func(raw []byte) ([]byte, error) {
		var records []domain.FeedingRecord
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, err
		}
		found := false
		for i := range records {
			if records[i].ID != recordID {
				continue
			}
			if patch.Date != nil {
				records[i].Date = *patch.Date
			}
			if patch.FeedType != nil {
				records[i].FeedType = *patch.FeedType
			}
			if patch.Quantity != nil {
				records[i].Quantity = *patch.Quantity
			}
			if patch.Unit != nil {
				records[i].Unit = *patch.Unit
			}
			if patch.Notes != nil {
				records[i].Notes = *patch.Notes
			}
			updated = records[i]
			found = true
			break
		}
		if !found {
			return nil, ErrRecordNotFound
		}
		return json.Marshal(records)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// RemoveFeedingRecord filters the matching record out of the collection
func (r *PostgresLivestockRepository) RemoveFeedingRecord(ctx context.Context, org domain.OrgContext, parentID, recordID string) error {
	return r.mutateRecords(ctx, org, parentID, "feeding_records", func(raw []byte) ([]byte, error) {
		var records []domain.FeedingRecord
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, err
		}
		kept := records[:0]
		found := false
		for _, rec := range records {
			if rec.ID == recordID {
				found = true
				continue
			}
			kept = append(kept, rec)
		}
		if !found {
			return nil, ErrRecordNotFound
		}
		return marshalRecords(kept)
	})
}

// Stats computes aggregate counts over the organization's herd
func (r *PostgresLivestockRepository) Stats(ctx context.Context, org domain.OrgContext) (*domain.LivestockStats, error) {
	stats := &domain.LivestockStats{
		ByType:   make(map[string]int),
		ByStatus: make(map[string]int),
	}

	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM livestock WHERE org_id = $1`, org.OrgID,
	).Scan(&stats.TotalAnimals); err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT type, COUNT(*) FROM livestock WHERE org_id = $1 GROUP BY type`, org.OrgID)
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
		stats.ByType[t] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.pool.Query(ctx,
		`SELECT status, COUNT(*) FROM livestock WHERE org_id = $1 GROUP BY status`, org.OrgID)
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
