package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"customizer/internal/http/handlers"
	"customizer/internal/infra"
	"customizer/internal/middleware"
)

// NewRouter assembles the API routes with the shared middleware chain.
func NewRouter(app *handlers.App, cfg *infra.Config, logger infra.Logger, country middleware.CountryLookup) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.I18N(cfg.DefaultLocale, country),
		middleware.RateLimit(cfg.RateLimitPerMin, time.Minute),
	)

	r.Get("/v1/healthz", app.Health)

	r.Route("/products", func(r chi.Router) {
		r.Get("/", app.ProductsList)
		r.Get("/{slug}", app.ProductGet)
	})

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", app.SessionsCreate)
		r.Get("/{id}", app.SessionGet)
		r.Put("/{id}/variant", app.SessionSelectVariant)
		r.Put("/{id}/fields/{key}", app.SessionSetTextField)
		r.Post("/{id}/uploads/{key}", app.SessionUpload)
		r.Get("/{id}/gate", app.SessionGate)
		r.Post("/{id}/cart", app.SessionAddToCart)
		r.Get("/{id}/archive", app.SessionArchive)
	})

	if app.Store != nil {
		fs := http.StripPrefix("/static/", http.FileServer(http.Dir(app.Store.BasePath())))
		r.Handle("/static/*", fs)
	}

	return r
}
