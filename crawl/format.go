package crawl

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// ComputeHash returns the content fingerprint stored with pages and images:
// the xxhash of content as 16 hex digits.
func ComputeHash(content []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(content))
}

// TruncateURL fits a URL into width columns for progress output. The scheme
// is dropped first; if the rest is still too long its tail is kept behind
// "...", since image file names sit at the end of the path.
func TruncateURL(rawURL string, width int) string {
	if width <= 0 {
		return ""
	}
	s := rawURL
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	if len(s) <= width {
		return s
	}
	if width <= 3 {
		return s[len(s)-width:]
	}
	return "..." + s[len(s)-(width-3):]
}

var byteUnits = []string{"KB", "MB", "GB"}

// FormatBytes renders a download size with binary units, e.g. "1.5 MB".
func FormatBytes(n int64) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	v := float64(n) / 1024
	unit := 0
	for v >= 1024 && unit < len(byteUnits)-1 {
		v /= 1024
		unit++
	}
	return fmt.Sprintf("%.1f %s", v, byteUnits[unit])
}
