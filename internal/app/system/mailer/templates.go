// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// UploadNotificationData holds data for upload notification email templates.
type UploadNotificationData struct {
	SiteName   string
	UserName   string
	DocType    string
	FileName   string
	FileURL    string // download link, optional
	UploadDate string // already formatted for display
}

// BuildUploadNotification creates an upload notification email with both
// HTML and text bodies.
func BuildUploadNotification(data UploadNotificationData) Email {
	return Email{
		To:       "", // Set by caller
		Subject:  fmt.Sprintf("%s : nouveau document « %s »", data.SiteName, data.DocType),
		TextBody: buildUploadText(data),
		HTMLBody: buildUploadHTML(data),
	}
}

func buildUploadText(data UploadNotificationData) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("%s a déposé un nouveau document.\n\n", data.UserName))
	buf.WriteString(fmt.Sprintf("Type de document : %s\n", data.DocType))
	buf.WriteString(fmt.Sprintf("Fichier : %s\n", data.FileName))
	buf.WriteString(fmt.Sprintf("Date de dépôt : %s\n", data.UploadDate))
	if data.FileURL != "" {
		buf.WriteString(fmt.Sprintf("\nTélécharger le fichier : %s\n", data.FileURL))
	}
	return buf.String()
}

func buildUploadHTML(data UploadNotificationData) string {
	tmpl := template.Must(template.New("upload").Parse(uploadHTMLTemplate))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, data)
	return buf.String()
}

const uploadHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Nouveau document</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f3f4f6;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px; box-shadow: 0 2px 4px rgba(0, 0, 0, 0.1);">
          <!-- Header -->
          <tr>
            <td style="padding: 32px 32px 24px; text-align: center; border-bottom: 1px solid #e5e7eb;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #4f46e5;">{{.SiteName}}</h1>
            </td>
          </tr>

          <!-- Content -->
          <tr>
            <td style="padding: 32px;">
              <p style="margin: 0 0 24px; font-size: 16px; color: #374151; line-height: 1.5;">
                {{.UserName}} a déposé un nouveau document.
              </p>

              <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f3f4f6; border-radius: 8px;">
                <tr>
                  <td style="padding: 16px 24px; font-size: 14px; color: #1f2937;">
                    <p style="margin: 0 0 8px;"><strong>Type :</strong> {{.DocType}}</p>
                    <p style="margin: 0 0 8px;"><strong>Fichier :</strong> {{.FileName}}</p>
                    <p style="margin: 0;"><strong>Déposé le :</strong> {{.UploadDate}}</p>
                  </td>
                </tr>
              </table>
{{if .FileURL}}
              <!-- Button -->
              <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="margin-top: 24px;">
                <tr>
                  <td align="center">
                    <a href="{{.FileURL}}" style="display: inline-block; padding: 14px 32px; background-color: #4f46e5; color: #ffffff; text-decoration: none; font-size: 16px; font-weight: 500; border-radius: 6px;">
                      Télécharger le fichier
                    </a>
                  </td>
                </tr>
              </table>
{{end}}
            </td>
          </tr>

          <!-- Footer -->
          <tr>
            <td style="padding: 24px 32px; background-color: #f9fafb; border-top: 1px solid #e5e7eb; border-radius: 0 0 8px 8px;">
              <p style="margin: 0; font-size: 12px; color: #9ca3af; text-align: center;">
                Message automatique, merci de ne pas répondre.
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`
