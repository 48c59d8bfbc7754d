package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"

	"github.com/go-chi/chi/v5"

	"customizer/internal/domain"
	"customizer/internal/rules"
	"customizer/internal/sqlinline"
	zippkg "customizer/pkg/zip"
)

// SessionUpload accepts a multipart image for one upload slot, stores it
// and marks the field complete. Re-uploading replaces the previous file's
// database record; the old file stays on disk until the expiry sweep.
func (a *App) SessionUpload(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	fieldKey := chi.URLParam(r, "key")

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
	if !ok || field.Kind != domain.FieldKindUpload {
		a.error(w, http.StatusNotFound, "unknown_field", "no such upload slot")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, a.MaxUploadBytes)
	if err := r.ParseMultipartForm(a.MaxUploadBytes); err != nil {
		a.error(w, http.StatusRequestEntityTooLarge, "upload_too_large", localize(view.Session.Locale, msgUploadTooLarge))
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "file part required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "failed to read upload")
		return
	}

	// Sniff the type from content rather than trusting the client header.
	mime := http.DetectContentType(data)
	if err := rules.CheckUpload(field, mime, int64(len(data))); err != nil {
		switch {
		case errors.Is(err, domain.ErrUnsupportedMedia):
			a.error(w, http.StatusUnsupportedMediaType, "unsupported_media", localize(view.Session.Locale, msgUnsupportedMedia))
		case errors.Is(err, domain.ErrUploadTooLarge):
			a.error(w, http.StatusRequestEntityTooLarge, "upload_too_large", localize(view.Session.Locale, msgUploadTooLarge))
		default:
			a.error(w, http.StatusInternalServerError, "internal", "failed to validate upload")
		}
		return
	}

	storageKey := fmt.Sprintf("sessions/%s/%s%s", sessionID, fieldKey, rules.UploadExtension(mime))
	storedKey, err := a.Store.Write(r.Context(), storageKey, data)
	if err != nil {
		a.Logger.Error().Err(err).Str("session_id", sessionID).Msg("store upload failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to store upload")
		return
	}

	row := a.SQL.QueryRow(r.Context(), sqlinline.QInsertUpload, sessionID, fieldKey, storedKey, mime, int64(len(data)))
	var uploadID string
	if err := row.Scan(&uploadID); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to record upload")
		return
	}

	value, _ := json.Marshal(map[string]any{
		"storage_key": storedKey,
		"mime":        mime,
		"bytes":       len(data),
	})
	if _, err := a.SQL.Exec(r.Context(), sqlinline.QUpsertFieldState, sessionID, fieldKey, true, value); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to save field")
		return
	}

	view, err = a.loadSessionView(r.Context(), sessionID)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load session")
		return
	}
	a.json(w, http.StatusCreated, map[string]any{
		"id":       uploadID,
		"key":      fieldKey,
		"url":      a.assetURL(storedKey),
		"mime":     mime,
		"bytes":    len(data),
		"complete": true,
		"gate": map[string]any{
			"enabled": view.allSatisfied(),
			"missing": view.missing(),
		},
	})
}

// SessionArchive streams a zip with every image uploaded in the session.
func (a *App) SessionArchive(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	rows, err := a.SQL.Query(r.Context(), sqlinline.QListUploadsBySession, sessionID)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load uploads")
		return
	}
	defer rows.Close()

	var assets []zippkg.Asset
	for rows.Next() {
		var u domain.Upload
		if err := rows.Scan(&u.ID, &u.SessionID, &u.FieldKey, &u.StorageKey, &u.MIME, &u.Bytes, &u.CreatedAt); err != nil {
			a.error(w, http.StatusInternalServerError, "internal", "failed to load uploads")
			return
		}
		data, err := a.Store.Read(r.Context(), u.StorageKey)
		if err != nil {
			a.Logger.Warn().Err(err).Str("storage_key", u.StorageKey).Msg("archive skipping unreadable upload")
			continue
		}
		assets = append(assets, zippkg.Asset{
			Filename: path.Base(u.StorageKey),
			MIME:     u.MIME,
			Data:     data,
		})
	}
	if err := rows.Err(); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load uploads")
		return
	}
	if len(assets) == 0 {
		a.error(w, http.StatusNotFound, "not_found", "no uploads in session")
		return
	}

	archive, err := zippkg.ArchiveAssets(assets)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to build archive")
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "session-"+sessionID+".zip"))
	_, _ = w.Write(archive)
}
