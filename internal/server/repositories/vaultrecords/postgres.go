package vaultrecords

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/lockbox/internal/common"
	"github.com/dmitrijs2005/lockbox/internal/dbx"
	"github.com/dmitrijs2005/lockbox/internal/server/models"
)

// PostgresRepository implements record storage over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Insert(ctx context.Context, rec *models.StoredRecord) (string, error) {
	query := `
		INSERT INTO records
			(owner_id, kind, service_name, username, password_sealed,
			 notes, site_url, insurance_company, insurance_number,
			 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	var id string
	err := r.db.QueryRowContext(ctx, query,
		rec.OwnerID, rec.Kind, rec.ServiceName, rec.Username, rec.PasswordSealed,
		rec.Notes, rec.SiteURL, rec.InsuranceCompany, rec.InsuranceNumber,
		rec.CreatedAt, rec.UpdatedAt).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("db error: %w", err)
	}

	rec.ID = id
	return id, nil
}

func (r *PostgresRepository) Update(ctx context.Context, rec *models.StoredRecord) error {
	query := `
		UPDATE records SET
			kind = $1, service_name = $2, username = $3, password_sealed = $4,
			notes = $5, site_url = $6, insurance_company = $7, insurance_number = $8,
			updated_at = $9
		WHERE id = $10 AND owner_id = $11
	`

	res, err := r.db.ExecContext(ctx, query,
		rec.Kind, rec.ServiceName, rec.Username, rec.PasswordSealed,
		rec.Notes, rec.SiteURL, rec.InsuranceCompany, rec.InsuranceNumber,
		rec.UpdatedAt, rec.ID, rec.OwnerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, ownerID, id string) (*models.StoredRecord, error) {
	query := selectColumns + ` WHERE owner_id = $1 AND id = $2`

	rec := &models.StoredRecord{}
	err := r.db.QueryRowContext(ctx, query, ownerID, id).Scan(scanTargets(rec)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

func (r *PostgresRepository) SelectByOwner(ctx context.Context, ownerID string) ([]*models.StoredRecord, error) {
	query := selectColumns + `
		WHERE owner_id = $1
		ORDER BY updated_at DESC, created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.StoredRecord
	for rows.Next() {
		rec := &models.StoredRecord{}
		if err := rows.Scan(scanTargets(rec)...); err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, ownerID, id string) error {
	query := `
		DELETE FROM records
		WHERE owner_id = $1 AND id = $2
	`

	res, err := r.db.ExecContext(ctx, query, ownerID, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

const selectColumns = `
	SELECT id, owner_id, kind, service_name, username, password_sealed,
	       notes, site_url, insurance_company, insurance_number,
	       created_at, updated_at
	FROM records`

func scanTargets(rec *models.StoredRecord) []any {
	return []any{
		&rec.ID, &rec.OwnerID, &rec.Kind, &rec.ServiceName, &rec.Username,
		&rec.PasswordSealed, &rec.Notes, &rec.SiteURL,
		&rec.InsuranceCompany, &rec.InsuranceNumber,
		&rec.CreatedAt, &rec.UpdatedAt,
	}
}
