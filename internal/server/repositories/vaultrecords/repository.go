// Package vaultrecords declares the repository contract for persisted vault
// records.
package vaultrecords

import (
	"context"

	"github.com/dmitrijs2005/lockbox/internal/server/models"
)

type Repository interface {
	// Insert stores a new record and returns its assigned id.
	Insert(ctx context.Context, rec *models.StoredRecord) (string, error)

	// Update rewrites an existing record. It is owner-scoped: updating a
	// record the owner does not hold yields common.ErrorNotFound.
	Update(ctx context.Context, rec *models.StoredRecord) error

	// GetByID returns one record scoped to its owner, or
	// common.ErrorNotFound.
	GetByID(ctx context.Context, ownerID, id string) (*models.StoredRecord, error)

	// SelectByOwner returns all records of the owner, most recently
	// updated first.
	SelectByOwner(ctx context.Context, ownerID string) ([]*models.StoredRecord, error)

	// Delete removes a record scoped to its owner, or returns
	// common.ErrorNotFound when no row matches.
	Delete(ctx context.Context, ownerID, id string) error
}
