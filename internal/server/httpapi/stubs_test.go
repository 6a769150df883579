package httpapi

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/lockbox/internal/grouping"
	"github.com/dmitrijs2005/lockbox/internal/logging"
	"github.com/dmitrijs2005/lockbox/internal/records"
	"github.com/dmitrijs2005/lockbox/internal/server/auth"
	"github.com/dmitrijs2005/lockbox/internal/server/models"
	"github.com/dmitrijs2005/lockbox/internal/server/services"
)

const testSecret = "test-secret"

type stubUserService struct {
	RegisterFunc     func(ctx context.Context, email, password string) (*models.User, error)
	LoginFunc        func(ctx context.Context, email, password string) (*services.TokenPair, error)
	RefreshTokenFunc func(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	LogoutFunc       func(ctx context.Context, refreshToken string) error
	GetUserFunc      func(ctx context.Context, userID string) (*models.User, error)
}

func (s *stubUserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	return s.RegisterFunc(ctx, email, password)
}

func (s *stubUserService) Login(ctx context.Context, email, password string) (*services.TokenPair, error) {
	return s.LoginFunc(ctx, email, password)
}

func (s *stubUserService) RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error) {
	return s.RefreshTokenFunc(ctx, refreshToken)
}

func (s *stubUserService) Logout(ctx context.Context, refreshToken string) error {
	return s.LogoutFunc(ctx, refreshToken)
}

func (s *stubUserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.GetUserFunc(ctx, userID)
}

type stubRecordService struct {
	ListFunc          func(ctx context.Context, ownerID string) (records.Collection, error)
	SearchFunc        func(ctx context.Context, ownerID, keyword string) (records.Collection, error)
	SaveFunc          func(ctx context.Context, ownerID, id string, kind records.Kind, in records.Input) (*records.Record, error)
	DeleteFunc        func(ctx context.Context, ownerID, id string) error
	GroupsFunc        func(ctx context.Context, ownerID string) ([]grouping.Group, error)
	RenameGroupFunc   func(ctx context.Context, ownerID, domainKey, alias string) error
	SetGroupOrderFunc func(ctx context.Context, ownerID, domainKey string, position int) error
}

func (s *stubRecordService) List(ctx context.Context, ownerID string) (records.Collection, error) {
	return s.ListFunc(ctx, ownerID)
}

func (s *stubRecordService) Search(ctx context.Context, ownerID, keyword string) (records.Collection, error) {
	return s.SearchFunc(ctx, ownerID, keyword)
}

func (s *stubRecordService) Save(ctx context.Context, ownerID, id string, kind records.Kind, in records.Input) (*records.Record, error) {
	return s.SaveFunc(ctx, ownerID, id, kind, in)
}

func (s *stubRecordService) Delete(ctx context.Context, ownerID, id string) error {
	return s.DeleteFunc(ctx, ownerID, id)
}

func (s *stubRecordService) Groups(ctx context.Context, ownerID string) ([]grouping.Group, error) {
	return s.GroupsFunc(ctx, ownerID)
}

func (s *stubRecordService) RenameGroup(ctx context.Context, ownerID, domainKey, alias string) error {
	return s.RenameGroupFunc(ctx, ownerID, domainKey, alias)
}

func (s *stubRecordService) SetGroupOrder(ctx context.Context, ownerID, domainKey string, position int) error {
	return s.SetGroupOrderFunc(ctx, ownerID, domainKey, position)
}

type stubTransferService struct {
	ExportFunc     func(ctx context.Context, ownerID string) ([]byte, error)
	ExportLinkFunc func(ctx context.Context, ownerID string) (string, error)
	ImportFunc     func(ctx context.Context, ownerID string, r io.Reader) (*services.ImportSummary, error)
}

func (s *stubTransferService) Export(ctx context.Context, ownerID string) ([]byte, error) {
	return s.ExportFunc(ctx, ownerID)
}

func (s *stubTransferService) ExportLink(ctx context.Context, ownerID string) (string, error) {
	return s.ExportLinkFunc(ctx, ownerID)
}

func (s *stubTransferService) Import(ctx context.Context, ownerID string, r io.Reader) (*services.ImportSummary, error) {
	return s.ImportFunc(ctx, ownerID, r)
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type routerOverrides struct {
	users     UserService
	records   RecordService
	transfers TransferService
	limiter   *LoginLimiter
}

func newTestRouter(t *testing.T, o routerOverrides) http.Handler {
	t.Helper()
	if o.limiter != nil {
		t.Cleanup(o.limiter.Stop)
	}
	return NewRouter(&RouterDeps{
		Logger:       testLogger(),
		JWTSecret:    []byte(testSecret),
		LoginLimiter: o.limiter,
		Users:        o.users,
		Records:      o.records,
		Transfers:    o.transfers,
	})
}

func bearer(t *testing.T, userID string) string {
	t.Helper()
	token, err := auth.GenerateToken(userID, []byte(testSecret), time.Minute)
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}
	return "Bearer " + token
}
