package httpapi

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/lockbox/internal/common"
	"github.com/dmitrijs2005/lockbox/internal/server/models"
	"github.com/dmitrijs2005/lockbox/internal/server/services"
)

func TestRegister_Created(t *testing.T) {
	users := &stubUserService{
		RegisterFunc: func(ctx context.Context, email, password string) (*models.User, error) {
			assert.Equal(t, "bob@mail.test", email)
			return &models.User{ID: "u-1", Email: email, CreatedAt: time.Now()}, nil
		},
	}
	router := newTestRouter(t, routerOverrides{users: users})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/auth/register",
		strings.NewReader(`{"email":"bob@mail.test","password":"hunter2hunter2"}`))
	router.ServeHTTP(rec, req)

	require.Equal(t, 201, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"u-1"`)
	assert.NotContains(t, rec.Body.String(), "passwordHash")
}

func TestRegister_Duplicate(t *testing.T) {
	users := &stubUserService{
		RegisterFunc: func(ctx context.Context, email, password string) (*models.User, error) {
			return nil, common.ErrorAlreadyExists
		},
	}
	router := newTestRouter(t, routerOverrides{users: users})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/auth/register",
		strings.NewReader(`{"email":"bob@mail.test","password":"hunter2hunter2"}`))
	router.ServeHTTP(rec, req)

	assert.Equal(t, 409, rec.Code)
}

func TestLogin_ReturnsTokenPair(t *testing.T) {
	users := &stubUserService{
		LoginFunc: func(ctx context.Context, email, password string) (*services.TokenPair, error) {
			return &services.TokenPair{AccessToken: "at", RefreshToken: "rt"}, nil
		},
	}
	router := newTestRouter(t, routerOverrides{users: users})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/auth/login",
		strings.NewReader(`{"email":"bob@mail.test","password":"hunter2hunter2"}`))
	router.ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), `"accessToken":"at"`)
	assert.Contains(t, rec.Body.String(), `"refreshToken":"rt"`)
}

func TestLogin_BadCredentials(t *testing.T) {
	users := &stubUserService{
		LoginFunc: func(ctx context.Context, email, password string) (*services.TokenPair, error) {
			return nil, common.ErrorUnauthorized
		},
	}
	router := newTestRouter(t, routerOverrides{users: users})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/auth/login",
		strings.NewReader(`{"email":"bob@mail.test","password":"nope"}`))
	router.ServeHTTP(rec, req)

	assert.Equal(t, 401, rec.Code)
}

func TestLogin_MalformedBody(t *testing.T) {
	router := newTestRouter(t, routerOverrides{users: &stubUserService{}})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader("{not json"))
	router.ServeHTTP(rec, req)

	assert.Equal(t, 400, rec.Code)
}

func TestLogin_RateLimited(t *testing.T) {
	users := &stubUserService{
		LoginFunc: func(ctx context.Context, email, password string) (*services.TokenPair, error) {
			return nil, common.ErrorUnauthorized
		},
	}
	router := newTestRouter(t, routerOverrides{users: users, limiter: NewLoginLimiter(2)})

	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last = httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/auth/login",
			strings.NewReader(`{"email":"bob@mail.test","password":"nope"}`))
		req.RemoteAddr = "10.0.0.7:1234"
		router.ServeHTTP(last, req)
	}

	assert.Equal(t, 429, last.Code)
	assert.NotEmpty(t, last.Header().Get("Retry-After"))

	// A different client is unaffected.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/auth/login",
		strings.NewReader(`{"email":"bob@mail.test","password":"nope"}`))
	req.RemoteAddr = "10.0.0.8:1234"
	router.ServeHTTP(rec, req)
	assert.Equal(t, 401, rec.Code)
}

func TestRefresh_Expired(t *testing.T) {
	users := &stubUserService{
		RefreshTokenFunc: func(ctx context.Context, refreshToken string) (*services.TokenPair, error) {
			return nil, common.ErrRefreshTokenExpired
		},
	}
	router := newTestRouter(t, routerOverrides{users: users})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/auth/refresh",
		strings.NewReader(`{"refreshToken":"stale"}`))
	router.ServeHTTP(rec, req)

	assert.Equal(t, 401, rec.Code)
}

func TestLogout_NoContent(t *testing.T) {
	users := &stubUserService{
		LogoutFunc: func(ctx context.Context, refreshToken string) error {
			assert.Equal(t, "rt", refreshToken)
			return nil
		},
	}
	router := newTestRouter(t, routerOverrides{users: users})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/auth/logout",
		strings.NewReader(`{"refreshToken":"rt"}`))
	router.ServeHTTP(rec, req)

	assert.Equal(t, 204, rec.Code)
}

func TestMe_RequiresToken(t *testing.T) {
	router := newTestRouter(t, routerOverrides{users: &stubUserService{}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/auth/me", nil))
	assert.Equal(t, 401, rec.Code)
}

func TestMe_ReturnsUser(t *testing.T) {
	users := &stubUserService{
		GetUserFunc: func(ctx context.Context, userID string) (*models.User, error) {
			assert.Equal(t, "u-1", userID)
			return &models.User{ID: userID, Email: "bob@mail.test"}, nil
		},
	}
	router := newTestRouter(t, routerOverrides{users: users})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req.Header.Set("Authorization", bearer(t, "u-1"))
	router.ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"bob@mail.test"`)
}
