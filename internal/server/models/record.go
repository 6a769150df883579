package models

import "github.com/dmitrijs2005/lockbox/internal/records"

// StoredRecord is the persistence shape of a vault record. The password is
// kept sealed; the record service opens it on the way out and seals it on
// the way in.
type StoredRecord struct {
	ID      string
	OwnerID string
	Kind    records.Kind

	ServiceName      string
	Username         string
	PasswordSealed   []byte
	Notes            string
	SiteURL          string
	InsuranceCompany string
	InsuranceNumber  string

	CreatedAt int64
	UpdatedAt int64
}
