package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/lockbox/internal/common"
	"github.com/dmitrijs2005/lockbox/internal/dbx"
	"github.com/dmitrijs2005/lockbox/internal/server/config"
	"github.com/dmitrijs2005/lockbox/internal/server/models"
	"github.com/dmitrijs2005/lockbox/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/lockbox/internal/server/repositories/users"
	"github.com/dmitrijs2005/lockbox/internal/server/repositories/vaultrecords"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "test-secret"
	return cfg
}

// fakeRepoManager vends in-memory repositories regardless of the DBTX it is
// handed, so services can be exercised without a database.
type fakeRepoManager struct {
	users   *fakeUserRepo
	tokens  *fakeTokenRepo
	records *fakeRecordRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:   &fakeUserRepo{byEmail: map[string]*models.User{}},
		tokens:  &fakeTokenRepo{byToken: map[string]*models.RefreshToken{}},
		records: &fakeRecordRepo{byID: map[string]*models.StoredRecord{}},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository              { return m.users }
func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository {
	return m.tokens
}
func (m *fakeRepoManager) Records(dbx.DBTX) vaultrecords.Repository { return m.records }

type fakeUserRepo struct {
	mu      sync.Mutex
	byEmail map[string]*models.User
	seq     int
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[user.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	r.seq++
	user.ID = fmt.Sprintf("u-%d", r.seq)
	user.CreatedAt = time.Now()
	r.byEmail[user.Email] = user
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

type fakeTokenRepo struct {
	mu      sync.Mutex
	byToken map[string]*models.RefreshToken
}

func (r *fakeTokenRepo) Create(_ context.Context, userID, token string, validity time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byToken[token] = &models.RefreshToken{
		UserID:  userID,
		Token:   token,
		Expires: time.Now().Add(validity),
	}
	return nil
}

func (r *fakeTokenRepo) Find(_ context.Context, token string) (*models.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byToken[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return t, nil
}

func (r *fakeTokenRepo) Delete(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byToken, token)
	return nil
}

func (r *fakeTokenRepo) DeleteForUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, t := range r.byToken {
		if t.UserID == userID {
			delete(r.byToken, k)
		}
	}
	return nil
}

type fakeRecordRepo struct {
	mu   sync.Mutex
	byID map[string]*models.StoredRecord
	seq  int
}

func (r *fakeRecordRepo) Insert(_ context.Context, rec *models.StoredRecord) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	rec.ID = fmt.Sprintf("r-%d", r.seq)
	cp := *rec
	r.byID[rec.ID] = &cp
	return rec.ID, nil
}

func (r *fakeRecordRepo) Update(_ context.Context, rec *models.StoredRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.byID[rec.ID]
	if !ok || existing.OwnerID != rec.OwnerID {
		return common.ErrorNotFound
	}
	cp := *rec
	r.byID[rec.ID] = &cp
	return nil
}

func (r *fakeRecordRepo) GetByID(_ context.Context, ownerID, id string) (*models.StoredRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.byID[id]
	if !ok || rec.OwnerID != ownerID {
		return nil, common.ErrorNotFound
	}
	cp := *rec
	return &cp, nil
}

func (r *fakeRecordRepo) SelectByOwner(_ context.Context, ownerID string) ([]*models.StoredRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.StoredRecord
	for _, rec := range r.byID {
		if rec.OwnerID == ownerID {
			cp := *rec
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeRecordRepo) Delete(_ context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.byID[id]
	if !ok || rec.OwnerID != ownerID {
		return common.ErrorNotFound
	}
	delete(r.byID, id)
	return nil
}
