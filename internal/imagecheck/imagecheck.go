// Package imagecheck gates picture URLs on song and playlist mutations.
package imagecheck

import (
	"net/url"
	"path"
	"strings"
)

var imageExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
	".webp": {},
	".avif": {},
	".svg":  {},
	".bmp":  {},
}

// IsImage reports whether the URL plausibly names an image resource, judged
// by the extension of its path. Empty or malformed input is not an image.
func IsImage(rawURL string) bool {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return false
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}

	ext := strings.ToLower(path.Ext(u.Path))
	_, ok := imageExtensions[ext]
	return ok
}
