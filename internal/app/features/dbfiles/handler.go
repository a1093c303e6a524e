// Package dbfiles serves the flat file-metadata inventory: per-user CRUD
// plus an admin-only purge.
package dbfiles

import (
	"encoding/json"
	"net/http"
	"strings"

	filestore "github.com/dalemusser/dossierhub/internal/app/store/files"
	"github.com/dalemusser/dossierhub/internal/app/system/auth"
	"github.com/dalemusser/dossierhub/internal/app/system/jsonutil"
	"github.com/dalemusser/dossierhub/internal/app/system/limits"
	"github.com/dalemusser/dossierhub/internal/app/system/timeouts"
	"github.com/dalemusser/dossierhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const roleAdmin = "admin"

// Handler holds dependencies for the file inventory endpoints.
type Handler struct {
	Files *filestore.Store
	Log   *zap.Logger
}

func NewHandler(files *filestore.Store, logger *zap.Logger) *Handler {
	return &Handler{Files: files, Log: logger}
}

func isAdmin(u *auth.SessionUser) bool {
	return strings.EqualFold(u.Role, roleAdmin)
}

// List handles GET /db/files: admins see the whole inventory, everyone else
// their own records.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list files")
	defer cancel()

	var (
		files []models.FileMeta
		err   error
	)
	if isAdmin(user) {
		files, err = h.Files.ListAll(ctx)
	} else {
		files, err = h.Files.ListByUser(ctx, user.ID)
	}
	if err != nil {
		h.Log.Error("list files failed", zap.Error(err))
		jsonutil.Fail(w, http.StatusInternalServerError, "Échec de la récupération des fichiers.")
		return
	}
	jsonutil.OK(w, jsonutil.Envelope{"items": files})
}

// Create handles POST /db/files: registers a metadata record supplied as
// JSON. The owner is always the caller.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	var in struct {
		Filename string `json:"filename"`
		Size     int64  `json:"size"`
		Mimetype string `json:"mimetype"`
	}
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxJSONBodySize)
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || strings.TrimSpace(in.Filename) == "" {
		jsonutil.Fail(w, http.StatusBadRequest, "Champs manquants")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "create file record")
	defer cancel()

	created, err := h.Files.Create(ctx, models.FileMeta{
		Filename: in.Filename,
		Size:     in.Size,
		Mimetype: in.Mimetype,
		UserID:   user.ID,
	})
	if err != nil {
		h.Log.Error("create file record failed", zap.Error(err))
		jsonutil.Fail(w, http.StatusInternalServerError, "Échec de l'enregistrement du fichier.")
		return
	}
	jsonutil.OK(w, jsonutil.Envelope{"file": created})
}

// load fetches the record and enforces ownership (admins bypass it).
// A nil return means the response was already written.
func (h *Handler) load(w http.ResponseWriter, r *http.Request) *models.FileMeta {
	user, _ := auth.CurrentUser(r)

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.Fail(w, http.StatusBadRequest, "Identifiant invalide.")
		return nil
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get file record")
	defer cancel()

	f, err := h.Files.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			jsonutil.Fail(w, http.StatusNotFound, "Fichier introuvable.")
			return nil
		}
		h.Log.Error("get file record failed", zap.Error(err))
		jsonutil.Fail(w, http.StatusInternalServerError, "Échec de la récupération du fichier.")
		return nil
	}
	if !isAdmin(user) && f.UserID != user.ID {
		jsonutil.Fail(w, http.StatusForbidden, "Accès refusé.")
		return nil
	}
	return &f
}

// Get handles GET /db/files/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	f := h.load(w, r)
	if f == nil {
		return
	}
	jsonutil.OK(w, jsonutil.Envelope{"file": f})
}

// Update handles PUT /db/files/{id}: rewrites the mutable metadata fields.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	f := h.load(w, r)
	if f == nil {
		return
	}

	var in struct {
		Filename string `json:"filename"`
		Size     *int64 `json:"size"`
		Mimetype string `json:"mimetype"`
	}
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxJSONBodySize)
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		jsonutil.Fail(w, http.StatusBadRequest, "Champs manquants")
		return
	}
	if strings.TrimSpace(in.Filename) != "" {
		f.Filename = in.Filename
	}
	if in.Size != nil {
		f.Size = *in.Size
	}
	if in.Mimetype != "" {
		f.Mimetype = in.Mimetype
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "update file record")
	defer cancel()

	if err := h.Files.Update(ctx, f.ID, *f); err != nil {
		h.Log.Error("update file record failed", zap.Error(err))
		jsonutil.Fail(w, http.StatusInternalServerError, "Échec de la mise à jour du fichier.")
		return
	}
	jsonutil.OK(w, jsonutil.Envelope{"file": f})
}

// Delete handles DELETE /db/files/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	f := h.load(w, r)
	if f == nil {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete file record")
	defer cancel()

	n, err := h.Files.Delete(ctx, f.ID)
	if err != nil {
		h.Log.Error("delete file record failed", zap.Error(err))
		jsonutil.Fail(w, http.StatusInternalServerError, "Échec de la suppression du fichier.")
		return
	}
	jsonutil.OK(w, jsonutil.Envelope{"deleted": n})
}

// Purge handles POST /db/files/purge: wipes the whole inventory. The route
// is wrapped in the admin role middleware.
func (h *Handler) Purge(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "purge file records")
	defer cancel()

	n, err := h.Files.PurgeAll(ctx)
	if err != nil {
		h.Log.Error("purge file records failed", zap.Error(err))
		jsonutil.Fail(w, http.StatusInternalServerError, "Échec de la purge.")
		return
	}
	h.Log.Info("file inventory purged", zap.Int64("deleted", n))
	jsonutil.OK(w, jsonutil.Envelope{"deleted": n})
}
