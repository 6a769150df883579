// Package cli implements the interactive Lockbox terminal client: a small
// REPL over the HTTP API with in-memory session tokens.
package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/lockbox/internal/client/api"
	"github.com/dmitrijs2005/lockbox/internal/client/config"
	"github.com/dmitrijs2005/lockbox/internal/grouping"
	"github.com/dmitrijs2005/lockbox/internal/records"
)

// apiClient is the command surface the REPL needs. The real api.Client
// satisfies it; tests provide a stub.
type apiClient interface {
	IsLoggedIn() bool
	Register(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	List(ctx context.Context, keyword string) (*api.Collection, error)
	Save(ctx context.Context, id string, kind records.Kind, in records.Input) (*records.Record, error)
	Delete(ctx context.Context, id string) error
	Groups(ctx context.Context) ([]grouping.Group, error)
	Export(ctx context.Context) (string, []byte, error)
	ExportLink(ctx context.Context) (string, error)
	Import(ctx context.Context, filename string, workbook []byte) (*api.ImportSummary, error)
}

type App struct {
	config    *config.Config
	api       apiClient
	reader    *bufio.Reader
	out       io.Writer
	userEmail string
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		api:    api.NewClient(c),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

func (a *App) isLoggedIn() bool {
	return a.api.IsLoggedIn()
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}
