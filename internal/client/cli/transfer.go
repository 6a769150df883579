package cli

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/lockbox/internal/netx"
)

const exportDirName = "exports"

// export saves the vault workbook under ./exports. In link mode the server
// uploads the file to its object store first and the client pulls it from
// the presigned URL, which keeps large vaults off the API connection.
func (a *App) export(ctx context.Context, mode string) error {
	var name string
	var data []byte
	var err error

	if mode == "link" {
		var url string
		if url, err = a.api.ExportLink(ctx); err != nil {
			return err
		}
		if data, err = netx.DownloadFromPresignedURL(url); err != nil {
			return err
		}
		name = filepath.Base(filepath.FromSlash(urlPath(url)))
	} else {
		if name, data, err = a.api.Export(ctx); err != nil {
			return err
		}
	}

	dir, err := ensureExportDir()
	if err != nil {
		return err
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Exported to %s\n", path)
	return nil
}

// ensureExportDir creates the exports subdirectory next to the binary's
// working directory if it is not there yet.
func ensureExportDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}

	dir := filepath.Join(cwd, exportDirName)
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}
	return dir, nil
}

// urlPath extracts the path component of a presigned URL so the saved file
// keeps the server-chosen name rather than the query string.
func urlPath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Path == "" || u.Path == "/" {
		return "lockbox.xlsx"
	}
	return u.Path
}

func (a *App) importFile(ctx context.Context, path string) error {
	if path == "" {
		var err error
		if path, err = GetSimpleText(a.reader, "Path to .xlsx file", a.out); err != nil {
			return err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	summary, err := a.api.Import(ctx, filepath.Base(path), data)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Imported %d record(s), %d failed\n", summary.Added, summary.Failed)
	for _, reason := range summary.Reasons {
		fmt.Fprintf(a.out, "  %s\n", reason)
	}
	return nil
}
