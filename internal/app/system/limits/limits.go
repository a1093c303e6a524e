// internal/app/system/limits/limits.go
package limits

// Request body size limits for various features.
// These limits help prevent memory exhaustion from oversized requests.
const (
	// MaxUploadSize caps a single file upload (typed documents and the
	// document archive alike).
	MaxUploadSize = 10 << 20 // 10 MB

	// MaxJSONBodySize is the maximum size for JSON request bodies.
	MaxJSONBodySize = 1 << 20 // 1 MB
)
