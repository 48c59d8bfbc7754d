package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"customizer/internal/domain"
	"customizer/internal/sqlinline"
)

type variantSelectRequest struct {
	VariantID string `json:"variant_id"`
}

// SessionSelectVariant records the shape pick. Requiredness of every field
// is re-resolved on the next evaluation, so a field that just became
// optional stops blocking the gate without any further input.
func (a *App) SessionSelectVariant(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	var req variantSelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.VariantID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "variant_id required")
		return
	}

	view, err := a.loadSessionView(r.Context(), sessionID)
	if err != nil {
		if err == domain.ErrNotFound {
			a.error(w, http.StatusNotFound, "not_found", "session not found")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to load session")
		return
	}
	if !view.Session.Active() {
		a.error(w, http.StatusConflict, "session_closed", "session no longer accepts changes")
		return
	}
	if _, ok := view.Product.VariantByID(req.VariantID); !ok {
		a.error(w, http.StatusBadRequest, "unknown_variant", "variant does not belong to this product")
		return
	}

	row := a.SQL.QueryRow(r.Context(), sqlinline.QUpdateSessionVariant, sessionID, req.VariantID)
	var updatedID string
	if err := row.Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			a.error(w, http.StatusConflict, "session_closed", "session no longer accepts changes")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to update variant")
		return
	}

	view, err = a.loadSessionView(r.Context(), sessionID)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load session")
		return
	}
	a.json(w, http.StatusOK, a.sessionPayload(view))
}
