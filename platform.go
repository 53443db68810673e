package folio

import "time"

// Platform identifies the site builder that produced a page.
type Platform string

// Supported site builders.
const (
	PlatformUnknown     Platform = ""
	PlatformSquarespace Platform = "squarespace"
	PlatformWix         Platform = "wix"
	PlatformWordPress   Platform = "wordpress"
	PlatformWebflow     Platform = "webflow"
)

// PlatformDetector identifies site builders from HTML.
type PlatformDetector interface {
	// Detect analyzes HTML and returns the identified platform.
	// Returns PlatformUnknown if the platform cannot be determined.
	Detect(html string) Platform
}

// Prober identifies site builders and determines their rendering requirements.
type Prober interface {
	PlatformDetector

	// RequiresJS indicates whether a platform requires JavaScript rendering
	// before its images appear in the markup.
	// Returns (requires, known) where known is false for unrecognized platforms.
	RequiresJS(platform Platform) (requires bool, known bool)

	// RenderDelay returns the recommended delay after page load for a platform.
	// Returns 0 for platforms that don't need extra delay.
	RenderDelay(platform Platform) time.Duration
}
