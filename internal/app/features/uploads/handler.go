// Package uploads serves the typed-document API: uploading a file against a
// catalog type, the derived status views, and clearing a type.
package uploads

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/dalemusser/dossierhub/internal/app/catalog"
	"github.com/dalemusser/dossierhub/internal/app/status"
	"github.com/dalemusser/dossierhub/internal/app/store/typeddocs"
	"github.com/dalemusser/dossierhub/internal/app/system/auth"
	"github.com/dalemusser/dossierhub/internal/app/system/jsonutil"
	"github.com/dalemusser/dossierhub/internal/app/system/limits"
	"github.com/dalemusser/dossierhub/internal/app/system/storage"
	"github.com/dalemusser/dossierhub/internal/app/system/timeouts"
	"github.com/dalemusser/dossierhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// allowedExtensions is the upload extension allowlist, lowercase.
var allowedExtensions = map[string]struct{}{
	".pdf":  {},
	".docx": {},
	".txt":  {},
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".zip":  {},
}

// FileInventory receives the best-effort metadata duplicate of each upload.
// *filestore.Store satisfies it.
type FileInventory interface {
	Create(ctx context.Context, f models.FileMeta) (models.FileMeta, error)
}

// Handler holds dependencies for the typed-document endpoints.
type Handler struct {
	Agg     *status.Aggregator
	Catalog *catalog.Catalog
	Files   FileInventory
	Storage storage.Store
	Log     *zap.Logger
}

func NewHandler(agg *status.Aggregator, cat *catalog.Catalog, files FileInventory, st storage.Store, logger *zap.Logger) *Handler {
	return &Handler{Agg: agg, Catalog: cat, Files: files, Storage: st, Log: logger}
}

// Upload handles POST /upload/{type}: stores the file, records the typed
// document, and duplicates plain file metadata on a best-effort basis.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	// chi hands back the raw path segment, so a type containing "/" (the
	// expanded "Bilan / Liasse fiscale <year>" family) arrives
	// percent-encoded and must be decoded before catalog resolution.
	docType, err := url.PathUnescape(chi.URLParam(r, "type"))
	if err != nil {
		jsonutil.Fail(w, http.StatusBadRequest, "Type de document invalide.")
		return
	}
	docType = strings.TrimSpace(docType)
	if docType == "" {
		jsonutil.Fail(w, http.StatusBadRequest, "Type de document manquant.")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxUploadSize)
	if err := r.ParseMultipartForm(limits.MaxUploadSize); err != nil {
		jsonutil.Fail(w, http.StatusBadRequest, "Fichier trop volumineux (10 Mo maximum).")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		jsonutil.Fail(w, http.StatusBadRequest, "Aucun fichier reçu.")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		jsonutil.Fail(w, http.StatusBadRequest, "Type de fichier non autorisé.")
		return
	}

	contentType := header.Header.Get("Content-Type")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "record upload")
	defer cancel()

	info, err := uploadFile(ctx, h.Storage, header.Filename, file, header.Size, contentType)
	if err != nil {
		h.Log.Error("file storage failed", zap.Error(err), zap.String("type", docType))
		jsonutil.Fail(w, http.StatusInternalServerError, "Échec de l'enregistrement du fichier.")
		return
	}

	doc, err := h.Agg.RecordUpload(ctx, user.ID, docType, status.FileMetadata{
		FileName: info.FileName,
		FilePath: info.Path,
		FileType: info.ContentType,
		FileSize: info.Size,
	})
	if err != nil {
		if errors.Is(err, typeddocs.ErrMissingType) {
			jsonutil.Fail(w, http.StatusBadRequest, "Type de document manquant.")
			return
		}
		h.Log.Error("record upload failed", zap.Error(err), zap.String("type", docType))
		jsonutil.Fail(w, http.StatusInternalServerError, "Échec de l'enregistrement du document.")
		return
	}

	// Keep the flat file inventory in sync; a failure here never fails the
	// upload itself.
	if _, err := h.Files.Create(ctx, models.FileMeta{
		Filename: info.FileName,
		Size:     info.Size,
		Mimetype: info.ContentType,
		UserID:   user.ID,
	}); err != nil {
		h.Log.Warn("file metadata duplication failed", zap.Error(err))
	}

	jsonutil.OK(w, jsonutil.Envelope{"document": doc})
}

// CatalogList handles GET /documents/catalog: every concrete expected
// document type, periodized templates expanded, grouped by category.
func (h *Handler) CatalogList(w http.ResponseWriter, r *http.Request) {
	items := h.Catalog.ExpandPeriodized(time.Now().UTC())
	jsonutil.OK(w, jsonutil.Envelope{"items": items})
}

// MyLatest handles GET /documents/my-latest: one full record per type.
func (h *Handler) MyLatest(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "latest status")
	defer cancel()

	docs, err := h.Agg.LatestStatus(ctx, user.ID)
	if err != nil {
		h.Log.Error("latest status failed", zap.Error(err))
		jsonutil.Fail(w, http.StatusInternalServerError, "Échec de la récupération des documents.")
		return
	}
	jsonutil.OK(w, jsonutil.Envelope{"items": docs})
}

// historyItem is the trimmed shape served by /documents/my-history.
type historyItem struct {
	Type       string    `json:"type"`
	Category   string    `json:"category"`
	FileName   string    `json:"fileName"`
	UploadDate time.Time `json:"uploadDate"`
}

// MyHistory handles GET /documents/my-history: latest per type, minimal
// fields for the status table.
func (h *Handler) MyHistory(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "status history")
	defer cancel()

	docs, err := h.Agg.LatestStatus(ctx, user.ID)
	if err != nil {
		h.Log.Error("status history failed", zap.Error(err))
		jsonutil.Fail(w, http.StatusInternalServerError, "Échec de la récupération des documents.")
		return
	}
	items := make([]historyItem, 0, len(docs))
	for _, d := range docs {
		items = append(items, historyItem{
			Type:       d.Type,
			Category:   d.Category,
			FileName:   d.FileName,
			UploadDate: d.UploadDate,
		})
	}
	jsonutil.OK(w, jsonutil.Envelope{"items": items})
}

// MyUploads handles GET /documents/my-uploads: the full upload history,
// newest first, annotated with the uploader's display name.
func (h *Handler) MyUploads(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "upload history")
	defer cancel()

	docs, err := h.Agg.UploadHistory(ctx, user.ID)
	if err != nil {
		h.Log.Error("upload history failed", zap.Error(err))
		jsonutil.Fail(w, http.StatusInternalServerError, "Échec de la récupération des documents.")
		return
	}
	jsonutil.OK(w, jsonutil.Envelope{"items": docs})
}

// Clear handles DELETE /typed-documents?type=...: removes every record of
// that exact type for the caller.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	docType := strings.TrimSpace(r.URL.Query().Get("type"))
	if docType == "" {
		jsonutil.Fail(w, http.StatusBadRequest, `Paramètre "type" manquant.`)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "clear status")
	defer cancel()

	n, err := h.Agg.ClearStatus(ctx, user.ID, docType)
	if err != nil {
		if errors.Is(err, typeddocs.ErrMissingType) {
			jsonutil.Fail(w, http.StatusBadRequest, `Paramètre "type" manquant.`)
			return
		}
		h.Log.Error("clear status failed", zap.Error(err), zap.String("type", docType))
		jsonutil.Fail(w, http.StatusInternalServerError, "Échec de la suppression des documents.")
		return
	}
	jsonutil.OK(w, jsonutil.Envelope{"deleted": n})
}
