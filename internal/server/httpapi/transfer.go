package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/lockbox/internal/server/metrics"
	"github.com/dmitrijs2005/lockbox/internal/server/services"
)

// 10 MiB is far beyond any realistic vault workbook.
const maxImportSize = 10 << 20

// TransferService is the slice of the transfer service the import/export
// handlers need.
type TransferService interface {
	Export(ctx context.Context, ownerID string) ([]byte, error)
	ExportLink(ctx context.Context, ownerID string) (string, error)
	Import(ctx context.Context, ownerID string, r io.Reader) (*services.ImportSummary, error)
}

// TransferHandler serves the /api/export and /api/import endpoints.
type TransferHandler struct {
	transfers TransferService
	collector *metrics.Collector
}

func NewTransferHandler(transfers TransferService, mc *metrics.Collector) *TransferHandler {
	return &TransferHandler{transfers: transfers, collector: mc}
}

type exportLinkResponse struct {
	URL string `json:"url"`
}

// Export handles GET /api/export. The default response is the workbook
// itself as an attachment; with ?link=1 the workbook goes to the object
// store and the response is a short-lived download URL.
func (h *TransferHandler) Export(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	if r.URL.Query().Get("link") == "1" {
		url, err := h.transfers.ExportLink(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}
		h.observeExport()
		writeJSON(w, http.StatusOK, exportLinkResponse{URL: url})
		return
	}

	data, err := h.transfers.Export(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	h.observeExport()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", services.ExportFileName()))
	w.Write(data)
}

// Import handles POST /api/import with a multipart "file" part holding the
// workbook.
func (h *TransferHandler) Import(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)

	file, _, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing file upload"})
		return
	}
	defer file.Close()

	summary, err := h.transfers.Import(r.Context(), userID, file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "could not read workbook"})
		return
	}

	if h.collector != nil {
		h.collector.ObserveImport(summary.Added, summary.Failed)
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *TransferHandler) observeExport() {
	if h.collector != nil {
		h.collector.ObserveExport()
	}
}
