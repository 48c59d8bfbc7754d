package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"customizer/internal/domain"
	"customizer/internal/sqlinline"
)

// fakeRows iterates a fixed list of scan funcs as pgx.Rows.
type fakeRows struct {
	TestRowsBase
	scans []func(dest ...any) error
	idx   int
}

func (r *fakeRows) Next() bool {
	r.idx++
	return r.idx <= len(r.scans)
}

func (r *fakeRows) Scan(dest ...any) error {
	return r.scans[r.idx-1](dest...)
}

func (r *fakeRows) Err() error { return nil }

func (r *fakeRows) Close() {}

// sessionTestSQL serves the queries loadSessionView and the session
// handlers issue, from in-memory fixtures.
type sessionTestSQL struct {
	session domain.Session
	product domain.Product
	states  map[string]domain.FieldState
}

func (f *sessionTestSQL) Exec(_ context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	if query != sqlinline.QUpsertFieldState {
		return pgconn.CommandTag{}, fmt.Errorf("unexpected exec: %s", query)
	}
	if f.states == nil {
		f.states = make(map[string]domain.FieldState)
	}
	key := args[1].(string)
	f.states[key] = domain.FieldState{
		SessionID: args[0].(string),
		FieldKey:  key,
		Complete:  args[2].(bool),
		Value:     args[3].([]byte),
		UpdatedAt: time.Now(),
	}
	return pgconn.CommandTag{}, nil
}

func (f *sessionTestSQL) QueryRow(_ context.Context, query string, args ...any) pgx.Row {
	switch query {
	case sqlinline.QSelectSessionByID:
		s := f.session
		return NewSimpleRow(func(dest ...any) error {
			*dest[0].(*string) = s.ID
			*dest[1].(*string) = s.ProductID
			*dest[2].(*string) = s.VariantID
			*dest[3].(*string) = s.Locale
			*dest[4].(*string) = s.Country
			*dest[5].(*string) = string(s.Status)
			*dest[6].(*time.Time) = s.CreatedAt
			*dest[7].(*time.Time) = s.UpdatedAt
			*dest[8].(*time.Time) = s.ExpiresAt
			return nil
		})
	case sqlinline.QSelectProductByID, sqlinline.QSelectProductBySlug:
		p := f.product
		return NewSimpleRow(func(dest ...any) error {
			*dest[0].(*string) = p.ID
			*dest[1].(*string) = p.Slug
			*dest[2].(*string) = p.Title
			*dest[3].(*time.Time) = p.CreatedAt
			*dest[4].(*time.Time) = p.UpdatedAt
			return nil
		})
	case sqlinline.QMarkSessionSubmitted:
		if !f.session.Active() {
			return NewSimpleRow(nil)
		}
		f.session.Status = domain.SessionStatusSubmitted
		id := f.session.ID
		return NewSimpleRow(func(dest ...any) error {
			*dest[0].(*string) = id
			return nil
		})
	case sqlinline.QUpdateSessionVariant:
		if !f.session.Active() {
			return NewSimpleRow(nil)
		}
		f.session.VariantID = args[1].(string)
		id := f.session.ID
		return NewSimpleRow(func(dest ...any) error {
			*dest[0].(*string) = id
			return nil
		})
	}
	return NewSimpleRow(func(...any) error {
		return fmt.Errorf("unexpected query row: %s", query)
	})
}

func (f *sessionTestSQL) Query(_ context.Context, query string, _ ...any) (pgx.Rows, error) {
	switch query {
	case sqlinline.QListProductVariants:
		var scans []func(dest ...any) error
		for _, v := range f.product.Variants {
			v := v
			scans = append(scans, func(dest ...any) error {
				*dest[0].(*string) = v.ID
				*dest[1].(*string) = v.ProductID
				*dest[2].(*string) = v.Shape
				*dest[3].(*string) = v.StorefrontVariantID
				*dest[4].(*int) = v.Position
				return nil
			})
		}
		return &fakeRows{scans: scans}, nil
	case sqlinline.QListProductFields:
		var scans []func(dest ...any) error
		for _, fl := range f.product.Fields {
			fl := fl
			scans = append(scans, func(dest ...any) error {
				*dest[0].(*string) = fl.ID
				*dest[1].(*string) = fl.ProductID
				*dest[2].(*string) = fl.Key
				*dest[3].(*string) = string(fl.Kind)
				*dest[4].(*string) = fl.Label
				*dest[5].(*int) = fl.MaxWords
				*dest[6].(*int64) = fl.MaxBytes
				*dest[7].(*bool) = fl.Required
				*dest[8].(*[]string) = fl.RequiredShapes
				return nil
			})
		}
		return &fakeRows{scans: scans}, nil
	case sqlinline.QListFieldStates:
		var scans []func(dest ...any) error
		for _, st := range f.states {
			st := st
			scans = append(scans, func(dest ...any) error {
				*dest[0].(*string) = st.SessionID
				*dest[1].(*string) = st.FieldKey
				*dest[2].(*bool) = st.Complete
				*dest[3].(*[]byte) = st.Value
				*dest[4].(*time.Time) = st.UpdatedAt
				return nil
			})
		}
		return &fakeRows{scans: scans}, nil
	}
	return nil, fmt.Errorf("unexpected query: %s", query)
}

func textState(sessionID, key, text string) domain.FieldState {
	value, _ := json.Marshal(map[string]any{"text": text})
	return domain.FieldState{
		SessionID: sessionID,
		FieldKey:  key,
		Complete:  true,
		Value:     value,
		UpdatedAt: time.Now(),
	}
}

func uploadState(sessionID, key, storageKey string) domain.FieldState {
	value, _ := json.Marshal(map[string]any{"storage_key": storageKey, "mime": "image/jpeg"})
	return domain.FieldState{
		SessionID: sessionID,
		FieldKey:  key,
		Complete:  true,
		Value:     value,
		UpdatedAt: time.Now(),
	}
}

func pendantFixture() (domain.Session, domain.Product) {
	now := time.Now()
	product := domain.Product{
		ID:    "prod-1",
		Slug:  "photo-pendant",
		Title: "Photo Pendant",
		Variants: []domain.Variant{
			{ID: "var-heart", ProductID: "prod-1", Shape: "heart", StorefrontVariantID: "41234567890", Position: 1},
			{ID: "var-oval", ProductID: "prod-1", Shape: "oval", StorefrontVariantID: "41234567891", Position: 2},
		},
		Fields: []domain.Field{
			{ID: "f-shape", ProductID: "prod-1", Key: "Shape", Kind: domain.FieldKindShape, Label: "Shape", Required: true},
			{ID: "f-img1", ProductID: "prod-1", Key: "Img1", Kind: domain.FieldKindUpload, Label: "Front Photo", Required: true, MaxBytes: 1 << 20},
			{ID: "f-img2", ProductID: "prod-1", Key: "Img2", Kind: domain.FieldKindUpload, Label: "Back Photo", RequiredShapes: []string{"heart"}, MaxBytes: 1 << 20},
			{ID: "f-text", ProductID: "prod-1", Key: "TextPhrase", Kind: domain.FieldKindText, Label: "Engraving", Required: true, MaxWords: 4},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	session := domain.Session{
		ID:        "sess-1",
		ProductID: "prod-1",
		VariantID: "var-oval",
		Locale:    "en",
		Status:    domain.SessionStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(2 * time.Hour),
	}
	return session, product
}
