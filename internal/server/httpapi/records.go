package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/lockbox/internal/common"
	"github.com/dmitrijs2005/lockbox/internal/grouping"
	"github.com/dmitrijs2005/lockbox/internal/records"
	"github.com/dmitrijs2005/lockbox/internal/search"
)

// RecordService is the slice of the record service the vault handlers need.
type RecordService interface {
	List(ctx context.Context, ownerID string) (records.Collection, error)
	Search(ctx context.Context, ownerID, keyword string) (records.Collection, error)
	Save(ctx context.Context, ownerID, id string, kind records.Kind, in records.Input) (*records.Record, error)
	Delete(ctx context.Context, ownerID, id string) error
	Groups(ctx context.Context, ownerID string) ([]grouping.Group, error)
	RenameGroup(ctx context.Context, ownerID, domainKey, alias string) error
	SetGroupOrder(ctx context.Context, ownerID, domainKey string, position int) error
}

// RecordHandler serves the /api/records and /api/groups endpoints.
type RecordHandler struct {
	recs RecordService
}

func NewRecordHandler(recs RecordService) *RecordHandler {
	return &RecordHandler{recs: recs}
}

// recordView is a record plus, when the list was keyword-filtered, the
// HTML-safe highlighted renditions of its display fields.
type recordView struct {
	records.Record
	Highlights map[string]string `json:"highlights,omitempty"`
}

type collectionResponse struct {
	Accounts  []recordView `json:"accounts"`
	Banks     []recordView `json:"banks"`
	Insurance []recordView `json:"insurance"`
	Extras    []recordView `json:"extras"`
	Wifi      []recordView `json:"wifi"`
	Total     int          `json:"total"`
}

type recordRequest struct {
	Kind             records.Kind `json:"kind"`
	ServiceName      string       `json:"serviceName"`
	Username         string       `json:"username"`
	Password         string       `json:"password"`
	Notes            string       `json:"notes"`
	SiteURL          string       `json:"siteUrl"`
	InsuranceCompany string       `json:"insuranceCompany"`
	InsuranceNumber  string       `json:"insuranceNumber"`
}

func (req *recordRequest) input() records.Input {
	return records.Input{
		ServiceName:      req.ServiceName,
		Username:         req.Username,
		Password:         req.Password,
		Notes:            req.Notes,
		SiteURL:          req.SiteURL,
		InsuranceCompany: req.InsuranceCompany,
		InsuranceNumber:  req.InsuranceNumber,
	}
}

// List handles GET /api/records and GET /api/records?q=keyword.
func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	keyword := r.URL.Query().Get("q")

	var c records.Collection
	if keyword == "" {
		c, err = h.recs.List(r.Context(), userID)
	} else {
		c, err = h.recs.Search(r.Context(), userID, keyword)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, collectionResponse{
		Accounts:  views(c.Accounts, keyword),
		Banks:     views(c.Banks, keyword),
		Insurance: views(c.Insurance, keyword),
		Extras:    views(c.Extras, keyword),
		Wifi:      views(c.Wifi, keyword),
		Total:     c.Total(),
	})
}

func views(recs []records.Record, keyword string) []recordView {
	out := make([]recordView, 0, len(recs))
	for _, rec := range recs {
		v := recordView{Record: rec}
		if keyword != "" {
			v.Highlights = highlights(rec, keyword)
		}
		out = append(out, v)
	}
	return out
}

// highlights renders the display fields with the keyword wrapped. Every
// field search matches against gets a rendition, passwords included, so a
// record that matched only on its password still shows where.
func highlights(rec records.Record, keyword string) map[string]string {
	fields := map[string]string{
		"serviceName":      rec.ServiceName,
		"username":         rec.Username,
		"password":         rec.Password,
		"notes":            rec.Notes,
		"siteUrl":          rec.SiteURL,
		"insuranceCompany": rec.InsuranceCompany,
		"insuranceNumber":  rec.InsuranceNumber,
	}

	out := map[string]string{}
	for name, value := range fields {
		if value == "" {
			continue
		}
		out[name] = search.Highlight(value, keyword)
	}
	return out
}

// Create handles POST /api/records.
func (h *RecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, "")
}

// Update handles PUT /api/records/{id}.
func (h *RecordHandler) Update(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, chi.URLParam(r, "id"))
}

func (h *RecordHandler) save(w http.ResponseWriter, r *http.Request, id string) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	var req recordRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	rec, err := h.recs.Save(r.Context(), userID, id, req.Kind, req.input())
	if err != nil {
		writeError(w, err)
		return
	}

	status := http.StatusOK
	if id == "" {
		status = http.StatusCreated
	}
	writeJSON(w, status, rec)
}

// Delete handles DELETE /api/records/{id}.
func (h *RecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.recs.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Groups handles GET /api/groups.
func (h *RecordHandler) Groups(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	groups, err := h.recs.Groups(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, groups)
}

type aliasRequest struct {
	Alias string `json:"alias"`
}

// RenameGroup handles PUT /api/groups/{domainKey}/alias. An empty alias
// clears the override.
func (h *RecordHandler) RenameGroup(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	var req aliasRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.recs.RenameGroup(r.Context(), userID, chi.URLParam(r, "domainKey"), req.Alias); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type orderRequest struct {
	DomainKey string `json:"domainKey"`
	Position  int    `json:"position"`
}

// SetGroupOrder handles PUT /api/groups/order.
func (h *RecordHandler) SetGroupOrder(w http.ResponseWriter, r *http.Request) {
	userID, err := UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	var req orderRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if req.DomainKey == "" {
		writeError(w, common.ErrorInvalidInput)
		return
	}

	if err := h.recs.SetGroupOrder(r.Context(), userID, req.DomainKey, req.Position); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
