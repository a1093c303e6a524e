// Package notify sends upload notification emails with a download link.
package notify

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dalemusser/dossierhub/internal/app/system/auth"
	"github.com/dalemusser/dossierhub/internal/app/system/jsonutil"
	"github.com/dalemusser/dossierhub/internal/app/system/limits"
	"github.com/dalemusser/dossierhub/internal/app/system/mailer"
	"go.uber.org/zap"
)

// Handler holds dependencies for the notification endpoint.
type Handler struct {
	Sender   mailer.Sender
	SiteName string
	Log      *zap.Logger
}

func NewHandler(sender mailer.Sender, siteName string, logger *zap.Logger) *Handler {
	return &Handler{Sender: sender, SiteName: siteName, Log: logger}
}

// SendEmail handles POST /send-email: mails a document notification to the
// given recipient.
func (h *Handler) SendEmail(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	var in struct {
		To         string `json:"to"`
		DocType    string `json:"docType"`
		FileName   string `json:"fileName"`
		FileURL    string `json:"fileUrl"`
		UploadDate string `json:"uploadDate"`
	}
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxJSONBodySize)
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		jsonutil.Fail(w, http.StatusBadRequest, "Champs manquants")
		return
	}
	if strings.TrimSpace(in.To) == "" || strings.TrimSpace(in.FileName) == "" || strings.TrimSpace(in.FileURL) == "" {
		jsonutil.Fail(w, http.StatusBadRequest, "Champs manquants")
		return
	}

	email := mailer.BuildUploadNotification(mailer.UploadNotificationData{
		SiteName:   h.SiteName,
		UserName:   user.Name,
		DocType:    in.DocType,
		FileName:   in.FileName,
		FileURL:    in.FileURL,
		UploadDate: in.UploadDate,
	})
	email.To = in.To

	if err := h.Sender.Send(email); err != nil {
		h.Log.Error("notification email failed", zap.Error(err), zap.String("to", in.To))
		jsonutil.Fail(w, http.StatusInternalServerError, "Échec de l'envoi de l'email.")
		return
	}
	jsonutil.OK(w, jsonutil.Envelope{"message": "Email envoyé."})
}
