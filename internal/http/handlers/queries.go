package handlers

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"customizer/internal/domain"
	"customizer/internal/rules"
	"customizer/internal/sqlinline"
)

func (a *App) loadProductBySlug(ctx context.Context, slug string) (domain.Product, error) {
	row := a.SQL.QueryRow(ctx, sqlinline.QSelectProductBySlug, slug)
	return a.scanProduct(ctx, row)
}

func (a *App) loadProductByID(ctx context.Context, id string) (domain.Product, error) {
	row := a.SQL.QueryRow(ctx, sqlinline.QSelectProductByID, id)
	return a.scanProduct(ctx, row)
}

func (a *App) scanProduct(ctx context.Context, row pgx.Row) (domain.Product, error) {
	var p domain.Product
	if err := row.Scan(&p.ID, &p.Slug, &p.Title, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Product{}, domain.ErrNotFound
		}
		return domain.Product{}, err
	}

	variants, err := a.loadVariants(ctx, p.ID)
	if err != nil {
		return domain.Product{}, err
	}
	p.Variants = variants

	fields, err := a.loadFields(ctx, p.ID)
	if err != nil {
		return domain.Product{}, err
	}
	p.Fields = fields

	return p, nil
}

func (a *App) loadVariants(ctx context.Context, productID string) ([]domain.Variant, error) {
	rows, err := a.SQL.Query(ctx, sqlinline.QListProductVariants, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var variants []domain.Variant
	for rows.Next() {
		var v domain.Variant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Shape, &v.StorefrontVariantID, &v.Position); err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}
	return variants, rows.Err()
}

func (a *App) loadFields(ctx context.Context, productID string) ([]domain.Field, error) {
	rows, err := a.SQL.Query(ctx, sqlinline.QListProductFields, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fields []domain.Field
	for rows.Next() {
		var f domain.Field
		var kind string
		if err := rows.Scan(&f.ID, &f.ProductID, &f.Key, &kind, &f.Label, &f.MaxWords, &f.MaxBytes, &f.Required, &f.RequiredShapes); err != nil {
			return nil, err
		}
		f.Kind = domain.FieldKind(kind)
		fields = append(fields, f)
	}
	return fields, rows.Err()
}

func (a *App) loadSession(ctx context.Context, id string) (domain.Session, error) {
	row := a.SQL.QueryRow(ctx, sqlinline.QSelectSessionByID, id)
	var s domain.Session
	var status string
	if err := row.Scan(&s.ID, &s.ProductID, &s.VariantID, &s.Locale, &s.Country, &status, &s.CreatedAt, &s.UpdatedAt, &s.ExpiresAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Session{}, domain.ErrNotFound
		}
		return domain.Session{}, err
	}
	s.Status = domain.SessionStatus(status)
	return s, nil
}

func (a *App) loadFieldStates(ctx context.Context, sessionID string) (map[string]domain.FieldState, error) {
	rows, err := a.SQL.Query(ctx, sqlinline.QListFieldStates, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	states := make(map[string]domain.FieldState)
	for rows.Next() {
		var st domain.FieldState
		if err := rows.Scan(&st.SessionID, &st.FieldKey, &st.Complete, &st.Value, &st.UpdatedAt); err != nil {
			return nil, err
		}
		states[st.FieldKey] = st
	}
	return states, rows.Err()
}

// sessionView bundles everything the gate needs for one session.
type sessionView struct {
	Session domain.Session
	Product domain.Product
	Shape   string
	States  map[string]domain.FieldState
	// Effective holds the checklist map after requiredness resolution.
	Effective map[string]bool
}

func (v sessionView) allSatisfied() bool {
	for _, done := range v.Effective {
		if !done {
			return false
		}
	}
	return true
}

func (v sessionView) missing() []string {
	var keys []string
	for _, f := range v.Product.Fields {
		if !v.Effective[f.Key] {
			keys = append(keys, f.Key)
		}
	}
	return keys
}

// loadSessionView loads the session, its product, persisted field states
// and resolves the effective checklist for the currently selected shape.
func (a *App) loadSessionView(ctx context.Context, sessionID string) (sessionView, error) {
	session, err := a.loadSession(ctx, sessionID)
	if err != nil {
		return sessionView{}, err
	}
	product, err := a.loadProductByID(ctx, session.ProductID)
	if err != nil {
		return sessionView{}, err
	}
	states, err := a.loadFieldStates(ctx, session.ID)
	if err != nil {
		return sessionView{}, err
	}

	shape := ""
	if session.VariantID != "" {
		if variant, ok := product.VariantByID(session.VariantID); ok {
			shape = variant.Shape
		}
	}

	flags := make(map[string]bool, len(states))
	for key, st := range states {
		flags[key] = st.Complete
	}

	return sessionView{
		Session:   session,
		Product:   product,
		Shape:     shape,
		States:    states,
		Effective: rules.EffectiveStates(product, shape, flags),
	}, nil
}
