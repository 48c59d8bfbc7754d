package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"customizer/internal/domain"
	"customizer/internal/sqlinline"
)

// SessionGate exposes the derived gate state: whether the add-to-cart
// action is currently permitted and which fields still block it.
func (a *App) SessionGate(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	view, err := a.loadSessionView(r.Context(), sessionID)
	if err != nil {
		if err == domain.ErrNotFound {
			a.error(w, http.StatusNotFound, "not_found", "session not found")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to load session")
		return
	}

	enabled := view.allSatisfied()
	payload := map[string]any{
		"enabled": enabled,
		"missing": view.missing(),
	}
	if !enabled {
		payload["message"] = localize(view.Session.Locale, msgGateClosed)
	}
	a.json(w, http.StatusOK, payload)
}

// SessionAddToCart is the consumer action the gate protects. When every
// active customization is complete it marks the session submitted and
// returns the line-item properties payload the storefront form needs;
// otherwise it answers 409 with the blocking fields.
func (a *App) SessionAddToCart(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
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
		a.error(w, http.StatusConflict, "session_closed", "session already submitted or expired")
		return
	}

	if !view.allSatisfied() {
		a.json(w, http.StatusConflict, map[string]any{
			"error":   "gate_closed",
			"message": localize(view.Session.Locale, msgGateClosed),
			"missing": view.missing(),
		})
		return
	}

	row := a.SQL.QueryRow(r.Context(), sqlinline.QMarkSessionSubmitted, sessionID)
	var submittedID string
	if err := row.Scan(&submittedID); err != nil {
		if err == pgx.ErrNoRows {
			a.error(w, http.StatusConflict, "session_closed", "session already submitted or expired")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to submit session")
		return
	}

	a.json(w, http.StatusOK, map[string]any{
		"session_id":            sessionID,
		"storefront_variant_id": a.storefrontVariantID(view),
		"quantity":              1,
		"properties":            a.lineItemProperties(view),
	})
}

func (a *App) storefrontVariantID(view sessionView) string {
	if view.Session.VariantID == "" {
		return ""
	}
	if variant, ok := view.Product.VariantByID(view.Session.VariantID); ok {
		return variant.StorefrontVariantID
	}
	return ""
}

// lineItemProperties flattens the session's field values into the order
// property map submitted with the storefront's add-to-cart form.
func (a *App) lineItemProperties(view sessionView) map[string]string {
	props := make(map[string]string)
	for _, field := range view.Product.Fields {
		st, ok := view.States[field.Key]
		switch field.Kind {
		case domain.FieldKindShape:
			if view.Shape != "" {
				props[field.Label] = titleShape(view.Shape)
			}
		case domain.FieldKindText:
			if !ok {
				continue
			}
			var value struct {
				Text string `json:"text"`
			}
			if err := json.Unmarshal(st.Value, &value); err == nil && value.Text != "" {
				props[field.Label] = value.Text
			}
		case domain.FieldKindUpload:
			if !ok {
				continue
			}
			var value struct {
				StorageKey string `json:"storage_key"`
			}
			if err := json.Unmarshal(st.Value, &value); err == nil && value.StorageKey != "" {
				props[field.Label] = a.assetURL(value.StorageKey)
			}
		}
	}
	return props
}
