package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"customizer/internal/domain"
	"customizer/internal/middleware"
	"customizer/internal/sqlinline"
)

type sessionCreateRequest struct {
	ProductSlug string `json:"product_slug"`
}

func (a *App) SessionsCreate(w http.ResponseWriter, r *http.Request) {
	var req sessionCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.ProductSlug == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "product_slug required")
		return
	}

	product, err := a.loadProductBySlug(r.Context(), req.ProductSlug)
	if err != nil {
		if err == domain.ErrNotFound {
			a.error(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to load product")
		return
	}

	locale := middleware.LocaleFromContext(r.Context())
	country := middleware.CountryFromContext(r.Context())
	ttl := fmt.Sprintf("%d seconds", int(a.SessionTTL.Seconds()))

	row := a.SQL.QueryRow(r.Context(), sqlinline.QInsertSession, product.ID, locale, country, ttl)
	var sessionID string
	var createdAt, expiresAt time.Time
	if err := row.Scan(&sessionID, &createdAt, &expiresAt); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to create session")
		return
	}

	view, err := a.loadSessionView(r.Context(), sessionID)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load session")
		return
	}
	a.json(w, http.StatusCreated, a.sessionPayload(view))
}

func (a *App) SessionGet(w http.ResponseWriter, r *http.Request) {
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
	a.json(w, http.StatusOK, a.sessionPayload(view))
}

func (a *App) sessionPayload(view sessionView) map[string]any {
	fields := make([]map[string]any, 0, len(view.Product.Fields))
	for _, f := range view.Product.Fields {
		entry := map[string]any{
			"key":      f.Key,
			"kind":     f.Kind,
			"label":    f.Label,
			"required": f.RequiredFor(view.Shape),
			"complete": view.Effective[f.Key],
		}
		if st, ok := view.States[f.Key]; ok && len(st.Value) > 0 {
			entry["value"] = json.RawMessage(st.Value)
		}
		fields = append(fields, entry)
	}

	return map[string]any{
		"id":         view.Session.ID,
		"product":    view.Product.Slug,
		"variant_id": view.Session.VariantID,
		"shape":      view.Shape,
		"locale":     view.Session.Locale,
		"status":     view.Session.Status,
		"expires_at": view.Session.ExpiresAt,
		"fields":     fields,
		"gate": map[string]any{
			"enabled": view.allSatisfied(),
			"missing": view.missing(),
		},
	}
}
