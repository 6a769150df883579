// Package httpapi is the HTTP presentation layer: routing, auth and rate
// limiting middleware, and JSON handlers over the service interfaces.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrijs2005/lockbox/internal/logging"
	"github.com/dmitrijs2005/lockbox/internal/server/metrics"
)

const requestTimeout = 60 * time.Second

// Pinger is the health-check seam, satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RouterDeps bundles everything NewRouter needs.
type RouterDeps struct {
	Logger    logging.Logger
	Collector *metrics.Collector
	JWTSecret []byte

	LoginLimiter *LoginLimiter

	Users     UserService
	Records   RecordService
	Transfers TransferService

	DB Pinger
}

// NewRouter wires every endpoint and the middleware chain. The credential
// endpoints sit outside the Bearer-auth group; the vault endpoints require
// a valid access token.
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(Recoverer(deps.Logger))
	r.Use(RequestLogger(deps.Logger, deps.Collector))
	r.Use(chimw.Timeout(requestTimeout))

	authHandler := NewAuthHandler(deps.Users)
	recordHandler := NewRecordHandler(deps.Records)
	transferHandler := NewTransferHandler(deps.Transfers, deps.Collector)

	r.Get("/healthz", healthz(deps.DB))
	if deps.Collector != nil {
		r.Method(http.MethodGet, "/metrics", deps.Collector.Handler())
	}

	r.Route("/api/auth", func(r chi.Router) {
		if deps.LoginLimiter != nil {
			r.With(deps.LoginLimiter.Middleware()).Post("/login", authHandler.Login)
		} else {
			r.Post("/login", authHandler.Login)
		}
		r.Post("/register", authHandler.Register)
		r.Post("/refresh", authHandler.Refresh)
		r.Post("/logout", authHandler.Logout)

		r.With(Authenticate(deps.JWTSecret)).Get("/me", authHandler.Me)
	})

	r.Group(func(r chi.Router) {
		r.Use(Authenticate(deps.JWTSecret))

		r.Route("/api/records", func(r chi.Router) {
			r.Get("/", recordHandler.List)
			r.Post("/", recordHandler.Create)
			r.Put("/{id}", recordHandler.Update)
			r.Delete("/{id}", recordHandler.Delete)
		})

		r.Route("/api/groups", func(r chi.Router) {
			r.Get("/", recordHandler.Groups)
			r.Put("/order", recordHandler.SetGroupOrder)
			r.Put("/{domainKey}/alias", recordHandler.RenameGroup)
		})

		r.Get("/api/export", transferHandler.Export)
		r.Post("/api/import", transferHandler.Import)
	})

	return r
}

func healthz(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.PingContext(r.Context()); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "database unreachable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
