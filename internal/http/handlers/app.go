package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"customizer/internal/infra"
	"customizer/internal/storage"
)

// App is the handler container. It carries the SQL executor, upload store
// and the knobs handlers need from configuration.
type App struct {
	SQL            infra.SQLExecutor
	Logger         zerolog.Logger
	Store          *storage.FileStore
	SessionTTL     time.Duration
	MaxUploadBytes int64
	StorageBaseURL string
}

func NewApp(sql infra.SQLExecutor, logger zerolog.Logger, store *storage.FileStore, cfg *infra.Config) *App {
	return &App{
		SQL:            sql,
		Logger:         logger,
		Store:          store,
		SessionTTL:     cfg.SessionTTL,
		MaxUploadBytes: cfg.MaxUploadBytes,
		StorageBaseURL: strings.TrimRight(cfg.StorageBaseURL, "/"),
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]any{
		"error":   errCode,
		"message": message,
	})
}

func (a *App) assetURL(storageKey string) string {
	if storageKey == "" {
		return ""
	}
	return a.StorageBaseURL + "/" + strings.TrimLeft(storageKey, "/")
}
