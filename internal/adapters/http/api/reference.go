package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/okian/dexkeeper/internal/domain/dex"
	"github.com/okian/dexkeeper/internal/domain/stat"
)

// ReferenceHandler serves species, moves, natures and dex number lookups.
type ReferenceHandler struct {
	refs ReferenceSource
}

// NewReferenceHandler creates a new reference handler.
func NewReferenceHandler(refs ReferenceSource) *ReferenceHandler {
	return &ReferenceHandler{refs: refs}
}

// HandleListSpecies handles GET /api/v1/species.
func (h *ReferenceHandler) HandleListSpecies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.refs.ListSpecies(r.Context()))
}

// HandleGetSpecies handles GET /api/v1/species/{key}.
func (h *ReferenceHandler) HandleGetSpecies(w http.ResponseWriter, r *http.Request) {
	sp, err := h.refs.Species(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		writeServiceError(w, "api.get_species", err)
		return
	}
	writeJSON(w, http.StatusOK, sp)
}

// HandleListMoves handles GET /api/v1/moves.
func (h *ReferenceHandler) HandleListMoves(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.refs.ListMoves(r.Context()))
}

// HandleGetMove handles GET /api/v1/moves/{key}.
func (h *ReferenceHandler) HandleGetMove(w http.ResponseWriter, r *http.Request) {
	m, err := h.refs.Move(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		writeServiceError(w, "api.get_move", err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// HandleListNatures handles GET /api/v1/natures.
func (h *ReferenceHandler) HandleListNatures(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, stat.Natures())
}

type dexResponse struct {
	ID            int    `json:"id"`
	CanonicalID   int    `json:"canonicalId"`
	DexNumber     string `json:"dexNumber"`
	AlternateForm bool   `json:"alternateForm"`
	Name          string `json:"name,omitempty"`
	BaseName      string `json:"baseName,omitempty"`
	Form          string `json:"form,omitempty"`
}

// HandleDex handles GET /api/v1/dex/{id}.
func (h *ReferenceHandler) HandleDex(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_dex"
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	resp := dexResponse{
		ID:            id,
		CanonicalID:   dex.Normalize(id),
		DexNumber:     dex.FormatDexNumber(id),
		AlternateForm: dex.IsAlternateForm(id),
	}
	if sp, err := h.refs.Species(r.Context(), strconv.Itoa(id)); err == nil {
		resp.Name = sp.Name
		if base, form, ok := dex.SplitFormName(sp.Name); ok {
			resp.BaseName, resp.Form = base, form
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
