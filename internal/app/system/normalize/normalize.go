// internal/app/system/normalize/normalize.go
package normalize

import "strings"

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a person's name, preserving case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Role lowercases and trims a role value.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Status lowercases and trims a status value.
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// QueryParam trims a free-text query parameter, preserving case.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}
