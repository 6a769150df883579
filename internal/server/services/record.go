package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/lockbox/internal/common"
	"github.com/dmitrijs2005/lockbox/internal/cryptox"
	"github.com/dmitrijs2005/lockbox/internal/grouping"
	"github.com/dmitrijs2005/lockbox/internal/records"
	"github.com/dmitrijs2005/lockbox/internal/search"
	"github.com/dmitrijs2005/lockbox/internal/server/aliases"
	"github.com/dmitrijs2005/lockbox/internal/server/config"
	"github.com/dmitrijs2005/lockbox/internal/server/models"
	"github.com/dmitrijs2005/lockbox/internal/server/repositories/repomanager"
)

// RecordService owns the lifecycle of vault records: validation, sealing of
// passwords at rest, owner-scoped persistence, and the derived group view.
type RecordService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	aliases     aliases.Store
	sealKey     []byte
}

func NewRecordService(db *sql.DB, m repomanager.RepositoryManager, st aliases.Store, cfg *config.Config) *RecordService {
	return &RecordService{
		db:          db,
		repomanager: m,
		aliases:     st,
		sealKey:     cryptox.DeriveKey(cfg.SecretKey),
	}
}

// List returns the owner's records partitioned by kind, most recently
// updated first within each kind, with passwords opened for display.
func (s *RecordService) List(ctx context.Context, ownerID string) (records.Collection, error) {
	repo := s.repomanager.Records(s.db)

	stored, err := repo.SelectByOwner(ctx, ownerID)
	if err != nil {
		return records.Collection{}, fmt.Errorf("error listing records: %w", err)
	}

	domain := make([]records.Record, 0, len(stored))
	for _, sr := range stored {
		rec, err := s.toDomain(sr)
		if err != nil {
			return records.Collection{}, err
		}
		domain = append(domain, *rec)
	}

	return records.Partition(domain), nil
}

// Search returns the owner's collection filtered by keyword. An empty
// keyword returns everything.
func (s *RecordService) Search(ctx context.Context, ownerID, keyword string) (records.Collection, error) {
	c, err := s.List(ctx, ownerID)
	if err != nil {
		return records.Collection{}, err
	}
	return search.Filter(keyword, c), nil
}

// Save validates the input and persists it. An empty id creates a new
// record; otherwise the owner's existing record is updated in place, with
// its creation timestamp preserved. Validation failures come back as
// *records.ValidationError.
func (s *RecordService) Save(ctx context.Context, ownerID, id string, kind records.Kind, in records.Input) (*records.Record, error) {
	repo := s.repomanager.Records(s.db)

	var existing *records.Record
	if id != "" {
		stored, err := repo.GetByID(ctx, ownerID, id)
		if err != nil {
			return nil, err
		}
		existing, err = s.toDomain(stored)
		if err != nil {
			return nil, err
		}
	}

	rec, err := records.Build(kind, in, existing)
	if err != nil {
		return nil, err
	}
	rec.OwnerID = ownerID

	stored, err := s.toStored(rec)
	if err != nil {
		return nil, err
	}

	if id == "" {
		newID, err := repo.Insert(ctx, stored)
		if err != nil {
			return nil, fmt.Errorf("error saving record: %w", err)
		}
		rec.ID = newID
	} else {
		if err := repo.Update(ctx, stored); err != nil {
			return nil, err
		}
	}

	return rec, nil
}

// Delete removes the owner's record by id. Deletion is immediate, there is
// no soft delete.
func (s *RecordService) Delete(ctx context.Context, ownerID, id string) error {
	repo := s.repomanager.Records(s.db)
	return repo.Delete(ctx, ownerID, id)
}

// Groups returns the owner's account records bucketed by domain, with the
// user's alias and order overrides applied.
func (s *RecordService) Groups(ctx context.Context, ownerID string) ([]grouping.Group, error) {
	c, err := s.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	aliasMap, err := s.aliases.Aliases(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error loading aliases: %w", err)
	}
	orderMap, err := s.aliases.Order(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error loading group order: %w", err)
	}

	return grouping.GroupAccounts(c.Accounts, aliasMap, orderMap), nil
}

// RenameGroup sets or clears the display alias for a domain key. Renaming
// never changes group identity, only what is rendered.
func (s *RecordService) RenameGroup(ctx context.Context, ownerID, domainKey, alias string) error {
	if domainKey == "" {
		return fmt.Errorf("%w: empty domain key", errInvalidGroupKey)
	}
	return s.aliases.SetAlias(ctx, ownerID, domainKey, alias)
}

// SetGroupOrder pins a domain group to a position in the list.
func (s *RecordService) SetGroupOrder(ctx context.Context, ownerID, domainKey string, position int) error {
	if domainKey == "" {
		return fmt.Errorf("%w: empty domain key", errInvalidGroupKey)
	}
	return s.aliases.SetOrder(ctx, ownerID, domainKey, position)
}

var errInvalidGroupKey = fmt.Errorf("%w: invalid group key", common.ErrorInvalidInput)

func (s *RecordService) toDomain(sr *models.StoredRecord) (*records.Record, error) {
	password, err := cryptox.OpenString(sr.PasswordSealed, s.sealKey)
	if err != nil {
		return nil, fmt.Errorf("error unsealing record %s: %w", sr.ID, err)
	}

	return &records.Record{
		ID:               sr.ID,
		OwnerID:          sr.OwnerID,
		Kind:             sr.Kind,
		ServiceName:      sr.ServiceName,
		Username:         sr.Username,
		Password:         password,
		Notes:            sr.Notes,
		SiteURL:          sr.SiteURL,
		InsuranceCompany: sr.InsuranceCompany,
		InsuranceNumber:  sr.InsuranceNumber,
		CreatedAt:        sr.CreatedAt,
		UpdatedAt:        sr.UpdatedAt,
	}, nil
}

func (s *RecordService) toStored(rec *records.Record) (*models.StoredRecord, error) {
	sealed, err := cryptox.SealString(rec.Password, s.sealKey)
	if err != nil {
		return nil, fmt.Errorf("error sealing record: %w", err)
	}

	return &models.StoredRecord{
		ID:               rec.ID,
		OwnerID:          rec.OwnerID,
		Kind:             rec.Kind,
		ServiceName:      rec.ServiceName,
		Username:         rec.Username,
		PasswordSealed:   sealed,
		Notes:            rec.Notes,
		SiteURL:          rec.SiteURL,
		InsuranceCompany: rec.InsuranceCompany,
		InsuranceNumber:  rec.InsuranceNumber,
		CreatedAt:        rec.CreatedAt,
		UpdatedAt:        rec.UpdatedAt,
	}, nil
}
