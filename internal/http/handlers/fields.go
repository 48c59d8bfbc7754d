package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"customizer/internal/domain"
	"customizer/internal/rules"
	"customizer/internal/sqlinline"
)

type textFieldRequest struct {
	Value string `json:"value"`
}

// SessionSetTextField validates an engraving value against the field's word
// limit, persists the completion flag and returns the refreshed gate.
func (a *App) SessionSetTextField(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	fieldKey := chi.URLParam(r, "key")

	var req textFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
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

	field, ok := view.Product.FieldByKey(fieldKey)
	if !ok || field.Kind != domain.FieldKindText {
		a.error(w, http.StatusNotFound, "unknown_field", "no such text field")
		return
	}

	complete, err := rules.CheckText(field, req.Value)
	if err != nil {
		if errors.Is(err, domain.ErrWordLimit) {
			a.error(w, http.StatusUnprocessableEntity, "word_limit", localize(view.Session.Locale, msgWordLimit))
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to validate field")
		return
	}

	value, _ := json.Marshal(map[string]any{
		"text":  req.Value,
		"words": rules.CountWords(req.Value),
	})
	if _, err := a.SQL.Exec(r.Context(), sqlinline.QUpsertFieldState, sessionID, fieldKey, complete, value); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to save field")
		return
	}

	view, err = a.loadSessionView(r.Context(), sessionID)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load session")
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"key":      fieldKey,
		"complete": complete,
		"words":    rules.CountWords(req.Value),
		"gate": map[string]any{
			"enabled": view.allSatisfied(),
			"missing": view.missing(),
		},
	})
}
