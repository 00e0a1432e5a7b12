package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/okian/dexkeeper/internal/domain/browse"
	"github.com/okian/dexkeeper/internal/domain/model"
)

// Import modes for POST /api/v1/collection/import.
const (
	importMerge   = "merge"
	importReplace = "replace"
)

// CollectionHandler handles collection CRUD, import and export.
type CollectionHandler struct {
	deps CollectionService
	now  func() time.Time
}

// NewCollectionHandler creates a new collection handler.
func NewCollectionHandler(deps CollectionService, now func() time.Time) *CollectionHandler {
	if now == nil {
		now = time.Now
	}
	return &CollectionHandler{deps: deps, now: now}
}

// HandleList handles GET /api/v1/collection.
func (h *CollectionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_collection"
	q, err := parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	page, err := h.deps.List(r.Context(), q)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// parseQuery reads browse parameters from the query string.
func parseQuery(r *http.Request) (browse.Query, error) {
	v := r.URL.Query()
	q := browse.Query{
		Search: v.Get("search"),
		Type:   v.Get("type"),
		Sort:   v.Get("sort"),
	}

	project, ok := model.ParseProject(v.Get("project"))
	if !ok {
		return q, fmt.Errorf("unknown project %q", v.Get("project"))
	}
	q.Project = project

	ints := map[string]*int{"generation": &q.Generation, "limit": &q.Limit, "offset": &q.Offset}
	for name, dst := range ints {
		raw := v.Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return q, fmt.Errorf("%s must be an integer", name)
		}
		*dst = n
	}

	bools := map[string]*bool{"shiny": &q.ShinyOnly, "favorites": &q.FavoritesOnly}
	for name, dst := range bools {
		raw := v.Get(name)
		if raw == "" {
			continue
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return q, fmt.Errorf("%s must be a boolean", name)
		}
		*dst = b
	}
	return q, nil
}

// HandleAdd handles POST /api/v1/collection.
func (h *CollectionHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	const op = "api.add_pokemon"
	var draft model.Pokemon
	if !decodeJSON(w, r, op, &draft) {
		return
	}
	p, err := h.deps.Add(r.Context(), draft)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	w.Header().Set("Location", "/api/v1/collection/"+p.ID)
	writeJSON(w, http.StatusCreated, p)
}

// HandleClear handles DELETE /api/v1/collection.
func (h *CollectionHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.Clear(r.Context()); err != nil {
		writeServiceError(w, "api.clear_collection", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleGet handles GET /api/v1/collection/{id}.
func (h *CollectionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.deps.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, "api.get_pokemon", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleUpdate handles PUT /api/v1/collection/{id}.
func (h *CollectionHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	const op = "api.update_pokemon"
	var edit model.Edit
	if !decodeJSON(w, r, op, &edit) {
		return
	}
	p, err := h.deps.Update(r.Context(), chi.URLParam(r, "id"), edit)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleRemove handles DELETE /api/v1/collection/{id}.
func (h *CollectionHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, "api.remove_pokemon", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleStats handles GET /api/v1/collection/{id}/stats.
func (h *CollectionHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	report, err := h.deps.EffectiveStats(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, "api.pokemon_stats", err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// HandleExport handles GET /api/v1/collection/export.
func (h *CollectionHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	records, err := h.deps.Export(r.Context())
	if err != nil {
		writeServiceError(w, "api.export_collection", err)
		return
	}
	name := fmt.Sprintf("dexkeeper-export-%s.json", h.now().Format("2006-01-02"))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	writeJSON(w, http.StatusOK, records)
}

// HandleImport handles POST /api/v1/collection/import?mode=merge|replace.
func (h *CollectionHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	const op = "api.import_collection"
	mode := strings.ToLower(r.URL.Query().Get("mode"))
	if mode == "" {
		mode = importMerge
	}
	if mode != importMerge && mode != importReplace {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, fmt.Errorf("unknown mode %q", mode)))
		return
	}

	var records []model.Pokemon
	if !decodeJSON(w, r, op, &records) {
		return
	}
	res, err := h.deps.Import(r.Context(), records, mode == importReplace)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
