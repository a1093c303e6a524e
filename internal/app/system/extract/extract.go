// Package extract pulls plain text out of uploaded files for search
// indexing. Extraction is best effort: unsupported or unreadable formats
// yield an empty string, never an error a caller has to branch on.
package extract

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// Text extracts searchable text from data based on the file name's
// extension. Supported: .pdf and .txt. Everything else yields "".
func Text(name string, data []byte) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return pdfText(data)
	case ".txt":
		if !utf8.Valid(data) {
			return ""
		}
		return strings.TrimSpace(string(data))
	default:
		return ""
	}
}

func pdfText(data []byte) string {
	// The pdf package panics on some malformed inputs.
	defer func() { _ = recover() }()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return ""
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return ""
	}
	return strings.TrimSpace(buf.String())
}
