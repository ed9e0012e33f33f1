package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user624-47/farmflow-sub000/internal/domain"
)

// PostgresFinanceRepository implements FinanceRepository using PostgreSQL
type PostgresFinanceRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresFinanceRepository creates a new PostgresFinanceRepository
func NewPostgresFinanceRepository(pool *pgxpool.Pool) *PostgresFinanceRepository {
	return &PostgresFinanceRepository{pool: pool}
}

const financeColumns = `id, org_id, farmer_id, type, amount, currency,
	interest_rate, status, application_date, approval_date, disbursement_date,
	COALESCE(notes, '') as notes, created_at, updated_at`

func scanFinance(row pgx.Row) (*domain.FinancialService, error) {
	svc := &domain.FinancialService{}
	err := row.Scan(
		&svc.ID,
		&svc.OrgID,
		&svc.FarmerID,
		&svc.Type,
		&svc.Amount,
		&svc.Currency,
		&svc.InterestRate,
		&svc.Status,
		&svc.ApplicationDate,
		&svc.ApprovalDate,
		&svc.DisbursementDate,
		&svc.Notes,
		&svc.CreatedAt,
		&svc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return svc, nil
}

// Create inserts a new financial service row
func (r *PostgresFinanceRepository) Create(ctx context.Context, org domain.OrgContext, svc *domain.FinancialService) error {
	query := `
		INSERT INTO financial_services (id, org_id, farmer_id, type, amount,
			currency, interest_rate, status, application_date, approval_date,
			disbursement_date, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := r.pool.Exec(ctx, query,
		svc.ID,
		org.OrgID,
		svc.FarmerID,
		svc.Type,
		svc.Amount,
		svc.Currency,
		svc.InterestRate,
		svc.Status,
		svc.ApplicationDate,
		svc.ApprovalDate,
		svc.DisbursementDate,
		nullStringOrValue(svc.Notes),
		svc.CreatedAt,
		svc.UpdatedAt,
	)
	return err
}

// GetByID retrieves a financial service by id scoped to the caller's organization
func (r *PostgresFinanceRepository) GetByID(ctx context.Context, org domain.OrgContext, id string) (*domain.FinancialService, error) {
	query := fmt.Sprintf(`SELECT %s FROM financial_services WHERE id = $1 AND org_id = $2`, financeColumns)
	svc, err := scanFinance(r.pool.QueryRow(ctx, query, id, org.OrgID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return svc, nil
}

// List retrieves financial services with pagination and filters
func (r *PostgresFinanceRepository) List(ctx context.Context, org domain.OrgContext, filter FinanceFilter, page, pageSize int) ([]*domain.FinancialService, int, error) {
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
	if filter.AppliedFrom != nil {
		whereClause += fmt.Sprintf(" AND application_date >= $%d", argIndex)
		args = append(args, *filter.AppliedFrom)
		argIndex++
	}
	if filter.AppliedTo != nil {
		whereClause += fmt.Sprintf(" AND application_date <= $%d", argIndex)
		args = append(args, *filter.AppliedTo)
		argIndex++
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM financial_services %s", whereClause)
	var totalCount int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := fmt.Sprintf(`
		SELECT %s FROM financial_services
		%s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, financeColumns, whereClause, argIndex, argIndex+1)
	args = append(args, pageSize, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	services := make([]*domain.FinancialService, 0)
	for rows.Next() {
		svc, err := scanFinance(rows)
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
func (r *PostgresFinanceRepository) Update(ctx context.Context, org domain.OrgContext, id string, patch FinancePatch) (*domain.FinancialService, error) {
	query := fmt.Sprintf(`
		UPDATE financial_services
		SET type = COALESCE($3, type),
		    amount = COALESCE($4, amount),
		    currency = COALESCE($5, currency),
		    interest_rate = COALESCE($6, interest_rate),
		    status = COALESCE($7, status),
		    approval_date = COALESCE($8, approval_date),
		    disbursement_date = COALESCE($9, disbursement_date),
		    notes = COALESCE($10, notes),
		    updated_at = now()
		WHERE id = $1 AND org_id = $2
		RETURNING %s
	`, financeColumns)

	svc, err := scanFinance(r.pool.QueryRow(ctx, query,
		id,
		org.OrgID,
		patch.Type,
		patch.Amount,
		patch.Currency,
		patch.InterestRate,
		patch.Status,
		patch.ApprovalDate,
		patch.DisbursementDate,
		patch.Notes,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return svc, nil
}

// Delete hard-deletes a financial service row
func (r *PostgresFinanceRepository) Delete(ctx context.Context, org domain.OrgContext, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM financial_services WHERE id = $1 AND org_id = $2`, id, org.OrgID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats computes aggregate amounts over the organization's financial records
func (r *PostgresFinanceRepository) Stats(ctx context.Context, org domain.OrgContext) (*domain.FinanceStats, error) {
	stats := &domain.FinanceStats{
		ByType:       make(map[string]int),
		ByStatus:     make(map[string]int),
		AmountByType: make(map[string]float64),
	}

	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(amount), 0) FROM financial_services WHERE org_id = $1`, org.OrgID,
	).Scan(&stats.TotalRecords, &stats.TotalAmount); err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT type, COUNT(*), COALESCE(SUM(amount), 0)
		 FROM financial_services WHERE org_id = $1 GROUP BY type`, org.OrgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var t string
		var n int
		var amount float64
		if err := rows.Scan(&t, &n, &amount); err != nil {
			return nil, err
		}
		stats.ByType[t] = n
		stats.AmountByType[t] = amount
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.pool.Query(ctx,
		`SELECT status, COUNT(*) FROM financial_services WHERE org_id = $1 GROUP BY status`, org.OrgID)
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
