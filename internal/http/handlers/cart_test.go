package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"customizer/internal/domain"
)

func withURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func testApp(sql *sessionTestSQL) *App {
	return &App{SQL: sql, StorageBaseURL: "http://localhost:8080/static"}
}

func TestSessionAddToCartBlockedWhileIncomplete(t *testing.T) {
	session, product := pendantFixture()
	sql := &sessionTestSQL{
		session: session,
		product: product,
		states: map[string]domain.FieldState{
			"Img1": uploadState(session.ID, "Img1", "sessions/sess-1/Img1.jpg"),
			// TextPhrase never filled in.
		},
	}
	app := testApp(sql)

	rr := httptest.NewRecorder()
	r := withURLParams(httptest.NewRequest("POST", "/sessions/sess-1/cart", nil), map[string]string{"id": "sess-1"})
	app.SessionAddToCart(rr, r)

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409 while gate closed, got %d", rr.Code)
	}
	var payload struct {
		Error   string   `json:"error"`
		Missing []string `json:"missing"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Error != "gate_closed" {
		t.Fatalf("unexpected error code: %q", payload.Error)
	}
	if len(payload.Missing) != 1 || payload.Missing[0] != "TextPhrase" {
		t.Fatalf("unexpected missing set: %v", payload.Missing)
	}
	if sql.session.Status != domain.SessionStatusActive {
		t.Fatal("blocked cart must not submit the session")
	}
}

func TestSessionAddToCartSucceedsWhenComplete(t *testing.T) {
	session, product := pendantFixture()
	sql := &sessionTestSQL{
		session: session,
		product: product,
		states: map[string]domain.FieldState{
			"Img1":       uploadState(session.ID, "Img1", "sessions/sess-1/Img1.jpg"),
			"TextPhrase": textState(session.ID, "TextPhrase", "always in my heart"),
		},
	}
	app := testApp(sql)

	rr := httptest.NewRecorder()
	r := withURLParams(httptest.NewRequest("POST", "/sessions/sess-1/cart", nil), map[string]string{"id": "sess-1"})
	app.SessionAddToCart(rr, r)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 with open gate, got %d: %s", rr.Code, rr.Body.String())
	}
	var payload struct {
		StorefrontVariantID string            `json:"storefront_variant_id"`
		Quantity            int               `json:"quantity"`
		Properties          map[string]string `json:"properties"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.StorefrontVariantID != "41234567891" {
		t.Fatalf("unexpected storefront variant: %q", payload.StorefrontVariantID)
	}
	if payload.Quantity != 1 {
		t.Fatalf("unexpected quantity: %d", payload.Quantity)
	}
	if payload.Properties["Engraving"] != "always in my heart" {
		t.Fatalf("unexpected engraving property: %q", payload.Properties["Engraving"])
	}
	if payload.Properties["Front Photo"] != "http://localhost:8080/static/sessions/sess-1/Img1.jpg" {
		t.Fatalf("unexpected photo property: %q", payload.Properties["Front Photo"])
	}
	if payload.Properties["Shape"] != "Oval" {
		t.Fatalf("unexpected shape property: %q", payload.Properties["Shape"])
	}
	if sql.session.Status != domain.SessionStatusSubmitted {
		t.Fatal("successful cart must mark the session submitted")
	}
}

func TestSessionAddToCartRejectsSubmittedSession(t *testing.T) {
	session, product := pendantFixture()
	session.Status = domain.SessionStatusSubmitted
	sql := &sessionTestSQL{session: session, product: product}
	app := testApp(sql)

	rr := httptest.NewRecorder()
	r := withURLParams(httptest.NewRequest("POST", "/sessions/sess-1/cart", nil), map[string]string{"id": "sess-1"})
	app.SessionAddToCart(rr, r)

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409 for submitted session, got %d", rr.Code)
	}
}

func TestSessionGateVacuousTruthForFieldlessProduct(t *testing.T) {
	// A product without customization fields yields an empty checklist, and
	// the gate opens vacuously. Documented storefront behavior, kept as is.
	session, product := pendantFixture()
	product.Fields = nil
	sql := &sessionTestSQL{session: session, product: product}
	app := testApp(sql)

	rr := httptest.NewRecorder()
	r := withURLParams(httptest.NewRequest("GET", "/sessions/sess-1/gate", nil), map[string]string{"id": "sess-1"})
	app.SessionGate(rr, r)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
	var payload struct {
		Enabled bool     `json:"enabled"`
		Missing []string `json:"missing"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !payload.Enabled {
		t.Fatal("empty checklist must open the gate")
	}
	if len(payload.Missing) != 0 {
		t.Fatalf("unexpected missing set: %v", payload.Missing)
	}
}

func TestSessionGateLocalizedMessage(t *testing.T) {
	session, product := pendantFixture()
	session.Locale = "es"
	sql := &sessionTestSQL{session: session, product: product}
	app := testApp(sql)

	rr := httptest.NewRecorder()
	r := withURLParams(httptest.NewRequest("GET", "/sessions/sess-1/gate", nil), map[string]string{"id": "sess-1"})
	app.SessionGate(rr, r)

	var payload struct {
		Enabled bool   `json:"enabled"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Enabled {
		t.Fatal("expected closed gate")
	}
	if payload.Message != messages["es"][msgGateClosed] {
		t.Fatalf("expected spanish message, got %q", payload.Message)
	}
}
