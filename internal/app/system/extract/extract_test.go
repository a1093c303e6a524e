// internal/app/system/extract/extract_test.go
package extract

import "testing"

func TestText(t *testing.T) {
	cases := []struct {
		name string
		file string
		data []byte
		want string
	}{
		{"plain text", "notes.txt", []byte("  réunion du lundi \n"), "réunion du lundi"},
		{"uppercase extension", "NOTES.TXT", []byte("hello"), "hello"},
		{"invalid utf8 text", "bad.txt", []byte{0xff, 0xfe, 0xfd}, ""},
		{"unsupported format", "photo.jpg", []byte("not text"), ""},
		{"docx unsupported", "doc.docx", []byte("zip bytes"), ""},
		{"malformed pdf", "broken.pdf", []byte("%PDF-1.4 garbage"), ""},
		{"empty pdf", "empty.pdf", nil, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Text(tc.file, tc.data); got != tc.want {
				t.Errorf("Text(%q) = %q, want %q", tc.file, got, tc.want)
			}
		})
	}
}
