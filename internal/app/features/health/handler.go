package health

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/dossierhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Handler holds dependencies needed for health checks.
type Handler struct {
	Client *mongo.Client
	SQLDB  *sql.DB // nil when the relational backend is not configured
	Log    *zap.Logger
}

// NewHandler constructs a health Handler. sqlDB may be nil.
func NewHandler(client *mongo.Client, sqlDB *sql.DB, logger *zap.Logger) *Handler {
	return &Handler{
		Client: client,
		SQLDB:  sqlDB,
		Log:    logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status   string     `json:"status"`
	Database string     `json:"database"`
	Message  string     `json:"message,omitempty"`
	Error    string     `json:"error,omitempty"`
	SQL      *sqlStatus `json:"sql,omitempty"`
}

// sqlStatus reports the relational backend, when one is configured.
type sqlStatus struct {
	Enabled   bool `json:"enabled"`
	Connected bool `json:"connected"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "database":"connected", "sql":{"enabled":true,"connected":true} }
//
// On DB failure: 503 and
//
//	{ "status":"error", "message":"Database unavailable", "error":"…"}
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status:   "ok",
		Database: "connected",
	}

	// Check the document store
	if err := h.Client.Ping(ctx, readpref.Primary()); err != nil {
		h.Log.Error("health-check: mongo ping failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		resp.Status = "error"
		resp.Database = "disconnected"
		resp.Message = "Database unavailable"
		resp.Error = err.Error()
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	// Report the relational backend (informational; a down SQL backend with
	// fallback active does not fail the health check)
	if h.SQLDB != nil {
		st := &sqlStatus{Enabled: true, Connected: true}
		if err := h.SQLDB.PingContext(ctx); err != nil {
			h.Log.Warn("health-check: sql ping failed", zap.Error(err))
			st.Connected = false
		}
		resp.SQL = st
	} else {
		resp.SQL = &sqlStatus{Enabled: false}
	}

	_ = json.NewEncoder(w).Encode(resp)
}
