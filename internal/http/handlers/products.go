package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"customizer/internal/domain"
	"customizer/internal/sqlinline"
)

// titleShape renders a shape slug as a display name. A fresh Caser per call
// because cases.Caser is not safe for concurrent use.
func titleShape(s string) string {
	return cases.Title(language.English).String(s)
}

func (a *App) ProductsList(w http.ResponseWriter, r *http.Request) {
	rows, err := a.SQL.Query(r.Context(), sqlinline.QListProducts)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load products")
		return
	}
	defer rows.Close()

	var items []map[string]any
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Slug, &p.Title, &p.CreatedAt, &p.UpdatedAt); err != nil {
			a.error(w, http.StatusInternalServerError, "internal", "failed to load products")
			return
		}
		items = append(items, map[string]any{
			"id":    p.ID,
			"slug":  p.Slug,
			"title": p.Title,
		})
	}
	if err := rows.Err(); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load products")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func (a *App) ProductGet(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	product, err := a.loadProductBySlug(r.Context(), slug)
	if err != nil {
		if err == domain.ErrNotFound {
			a.error(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to load product")
		return
	}
	a.json(w, http.StatusOK, productPayload(product))
}

func productPayload(p domain.Product) map[string]any {
	variants := make([]map[string]any, 0, len(p.Variants))
	for _, v := range p.Variants {
		variants = append(variants, map[string]any{
			"id":                    v.ID,
			"shape":                 v.Shape,
			"display_name":          titleShape(v.Shape),
			"storefront_variant_id": v.StorefrontVariantID,
			"position":              v.Position,
		})
	}

	fields := make([]map[string]any, 0, len(p.Fields))
	for _, f := range p.Fields {
		fields = append(fields, map[string]any{
			"key":             f.Key,
			"kind":            f.Kind,
			"label":           f.Label,
			"max_words":       f.MaxWords,
			"max_bytes":       f.MaxBytes,
			"required":        f.Required,
			"required_shapes": f.RequiredShapes,
		})
	}

	return map[string]any{
		"id":       p.ID,
		"slug":     p.Slug,
		"title":    p.Title,
		"variants": variants,
		"fields":   fields,
	}
}
