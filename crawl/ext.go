package crawl

import (
	"net/url"
	"path"
	"strings"
)

// DefaultImageExt is used when neither the URL nor the media type names
// a known image format.
const DefaultImageExt = ".jpg"

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// ImageExt picks the file extension for a downloaded image. The URL's own
// extension wins when it is a known image format; otherwise the media type
// decides; otherwise DefaultImageExt.
func ImageExt(rawURL, contentType string) string {
	if u, err := url.Parse(rawURL); err == nil {
		if ext := strings.ToLower(path.Ext(u.Path)); imageExts[ext] {
			return ext
		}
	}

	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "jpeg"), strings.Contains(ct, "jpg"):
		return ".jpg"
	case strings.Contains(ct, "png"):
		return ".png"
	case strings.Contains(ct, "webp"):
		return ".webp"
	case strings.Contains(ct, "gif"):
		return ".gif"
	}
	return DefaultImageExt
}
