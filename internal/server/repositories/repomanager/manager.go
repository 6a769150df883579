package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/lockbox/internal/dbx"
	"github.com/dmitrijs2005/lockbox/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/lockbox/internal/server/repositories/users"
	"github.com/dmitrijs2005/lockbox/internal/server/repositories/vaultrecords"
)

// RepositoryManager vends repositories bound to a DBTX, so services can run
// the same repository code inside or outside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Records(db dbx.DBTX) vaultrecords.Repository
}
