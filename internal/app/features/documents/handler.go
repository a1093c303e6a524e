// Package documents serves the searchable document archive: plain uploads
// whose text is extracted for later search.
package documents

import (
	"io"
	"net/http"
	"strconv"
	"time"

	extractedstore "github.com/dalemusser/dossierhub/internal/app/store/extracted"
	"github.com/dalemusser/dossierhub/internal/app/system/extract"
	"github.com/dalemusser/dossierhub/internal/app/system/jsonutil"
	"github.com/dalemusser/dossierhub/internal/app/system/limits"
	"github.com/dalemusser/dossierhub/internal/app/system/normalize"
	"github.com/dalemusser/dossierhub/internal/app/system/timeouts"
	"github.com/dalemusser/dossierhub/internal/domain/models"
	"go.uber.org/zap"
)

// Handler holds dependencies for the document archive endpoints.
type Handler struct {
	Extracted *extractedstore.Store
	Log       *zap.Logger
}

func NewHandler(extracted *extractedstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Extracted: extracted, Log: logger}
}

// Upload handles POST /db/documents: reads the file, extracts what text it
// can, and stores the extracted document. Formats without an extractor are
// stored with empty content so they still show up in listings.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
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

	data, err := io.ReadAll(file)
	if err != nil {
		jsonutil.Fail(w, http.StatusBadRequest, "Lecture du fichier impossible.")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "archive document")
	defer cancel()

	doc, err := h.Extracted.Create(ctx, models.ExtractedDocument{
		FileName:   header.Filename,
		FileType:   header.Header.Get("Content-Type"),
		FileSize:   header.Size,
		UploadDate: time.Now().UTC(),
		Content:    extract.Text(header.Filename, data),
	})
	if err != nil {
		h.Log.Error("archive document failed", zap.Error(err))
		jsonutil.Fail(w, http.StatusInternalServerError, "Échec de l'enregistrement du document.")
		return
	}
	jsonutil.OK(w, jsonutil.Envelope{"document": doc})
}

// List handles GET /db/documents?q=&page=&limit=: paginated search over
// file names, types, and extracted content.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := normalize.QueryParam(r.URL.Query().Get("q"))
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "search documents")
	defer cancel()

	docs, total, err := h.Extracted.Search(ctx, q, page, limit)
	if err != nil {
		h.Log.Error("search documents failed", zap.Error(err))
		jsonutil.Fail(w, http.StatusInternalServerError, "Échec de la recherche.")
		return
	}
	jsonutil.OK(w, jsonutil.Envelope{"items": docs, "total": total})
}
