package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user624-47/farmflow-sub000/internal/domain"
)

// PostgresOrganizationRepository implements OrganizationRepository using PostgreSQL
type PostgresOrganizationRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresOrganizationRepository creates a new PostgresOrganizationRepository
func NewPostgresOrganizationRepository(pool *pgxpool.Pool) *PostgresOrganizationRepository {
	return &PostgresOrganizationRepository{pool: pool}
}

const organizationColumns = `id, name, COALESCE(email, '') as email,
	COALESCE(phone, '') as phone, COALESCE(address, '') as address,
	latitude, longitude, subscription_plan, subscription_status,
	created_at, updated_at`

func scanOrganization(row pgx.Row) (*domain.Organization, error) {
	org := &domain.Organization{}
	err := row.Scan(
		&org.ID,
		&org.Name,
		&org.Email,
		&org.Phone,
		&org.Address,
		&org.Latitude,
		&org.Longitude,
		&org.SubscriptionPlan,
		&org.SubscriptionStatus,
		&org.CreatedAt,
		&org.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return org, nil
}

// GetByID retrieves an organization by id; returns nil, nil when absent
func (r *PostgresOrganizationRepository) GetByID(ctx context.Context, id string) (*domain.Organization, error) {
	query := fmt.Sprintf(`SELECT %s FROM organizations WHERE id = $1`, organizationColumns)
	org, err := scanOrganization(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return org, nil
}

// Update merges the patch into the existing row and returns the result
func (r *PostgresOrganizationRepository) Update(ctx context.Context, id string, patch OrganizationPatch) (*domain.Organization, error) {
	query := fmt.Sprintf(`
		UPDATE organizations
		SET name = COALESCE($2, name),
		    email = COALESCE($3, email),
		    phone = COALESCE($4, phone),
		    address = COALESCE($5, address),
		    latitude = COALESCE($6, latitude),
		    longitude = COALESCE($7, longitude),
		    subscription_plan = COALESCE($8, subscription_plan),
		    subscription_status = COALESCE($9, subscription_status),
		    updated_at = now()
		WHERE id = $1
		RETURNING %s
	`, organizationColumns)

	org, err := scanOrganization(r.pool.QueryRow(ctx, query,
		id,
		patch.Name,
		patch.Email,
		patch.Phone,
		patch.Address,
		patch.Latitude,
		patch.Longitude,
		patch.SubscriptionPlan,
		patch.SubscriptionStatus,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return org, nil
}
