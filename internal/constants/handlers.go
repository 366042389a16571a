// Package constants provides shared constants used across the codebase.
package constants

// Handler constants
const (
	// MaxRequestBodySize is the maximum accepted JSON request body in bytes (10MB)
	MaxRequestBodySize = 10 << 20

	// MaxImagesPerRequest is the maximum number of images in a single layout request
	MaxImagesPerRequest = MaxCollageImages

	// MaxUploadSize is the maximum multipart upload size for PDF export in bytes (200MB)
	MaxUploadSize = 200 << 20

	// MaxEventsPerRequest is the maximum number of gesture events applied in one call
	MaxEventsPerRequest = 1000
)

// Session constants
const (
	// SessionTTLMinutes is how long an idle collage session is kept in memory
	SessionTTLMinutes = 60

	// SessionCleanupMinutes is the interval between expired session sweeps
	SessionCleanupMinutes = 5
)
