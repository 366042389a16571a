// Package constants provides shared constants used across the codebase.
// Centralizing these values ensures consistency and makes them easier to modify.
package constants

// Page resolution constants
const (
	// PrintDPI is the resolution at which page pixel dimensions are defined
	PrintDPI = 300

	// MMPerInch converts between millimetres and inches
	MMPerInch = 25.4
)

// Grid constants
const (
	// MinGridSize is the smallest allowed number of rows or columns
	MinGridSize = 2

	// MaxGridSize is the largest allowed number of rows or columns
	MaxGridSize = 6

	// DefaultRows is the default number of grid rows
	DefaultRows = 2

	// DefaultCols is the default number of grid columns
	DefaultCols = 4

	// DefaultPageSize is the default page size name
	DefaultPageSize = "A3"
)

// Placement constants
const (
	// NearSquareMin is the exclusive lower aspect ratio bound of a near-square image
	NearSquareMin = 0.9

	// NearSquareMax is the exclusive upper aspect ratio bound of a near-square image
	NearSquareMax = 1.1

	// DefaultMinDPI is the effective print DPI below which a placement gets a warning
	DefaultMinDPI = 150.0
)

// Collage constants
const (
	// RandomLayoutThreshold is the image count above which the synthetic
	// random layout replaces exact template matching
	RandomLayoutThreshold = 10

	// MaxCollageImages is the largest image count a collage layout is built for
	MaxCollageImages = 5000

	// RandomLayoutID is the template id of the synthetic random layout
	RandomLayoutID = "random"

	// RandomLayoutName is the display name of the synthetic random layout
	RandomLayoutName = "Random Layout"

	// DefaultCollagePageSize is the default page size for collages
	DefaultCollagePageSize = "A4"
)

// Manual transform constants
const (
	// DefaultOffsetX is the horizontal offset applied to freshly placed images
	DefaultOffsetX = -50.0

	// DefaultOffsetY is the vertical offset applied to freshly placed images
	DefaultOffsetY = 0.0

	// DefaultScale is the zoom applied to freshly placed images
	DefaultScale = 1.2

	// MouseDamping scales mouse drag deltas into offset changes
	MouseDamping = 0.05

	// TouchDamping scales single-touch drag deltas into offset changes
	TouchDamping = 0.2

	// MinScale and MaxScale clamp pinch and wheel zoom
	MinScale = 0.5
	MaxScale = 5.0

	// WheelZoomStep is the scale change per unmodified wheel tick
	WheelZoomStep = 0.05

	// WheelRotateStep is the rotation in degrees per modified wheel tick
	WheelRotateStep = 5.0
)

// Processing constants
const (
	// LoaderConcurrency is the default number of parallel image header reads
	LoaderConcurrency = 8

	// DefaultJPEGQuality is used when re-encoding images for PDF export
	DefaultJPEGQuality = 90

	// DefaultMaxImageSide caps the longest side of images embedded in a PDF
	DefaultMaxImageSide = 8000
)
