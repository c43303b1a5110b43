package storage

import (
	"path"
	"regexp"
	"strings"
)

// maxNameLength bounds sanitized names, leaving room for the timestamp prefix
const maxNameLength = 200

// invalidFileRunes are characters not allowed in stored names.
// \x00-\x1F are control characters.
var invalidFileRunes = regexp.MustCompile(`[<>:"|?*\x00-\x1F]`)

var multiSpace = regexp.MustCompile(`\s+`)

// SanitizeFilename reduces a client-supplied name to a safe base name.
// Directory components are dropped, forbidden characters become spaces,
// runs of whitespace collapse, and the extension survives truncation.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	if name == "." || name == "/" || name == ".." {
		name = ""
	}

	clean := invalidFileRunes.ReplaceAllString(name, " ")
	clean = multiSpace.ReplaceAllString(strings.TrimSpace(clean), " ")
	clean = strings.TrimLeft(clean, ".")

	ext := path.Ext(clean)
	base := strings.TrimRight(strings.TrimSuffix(clean, ext), ". ")
	if base == "" {
		base = "untitled"
	}
	if len(base)+len(ext) > maxNameLength {
		if len(ext) >= maxNameLength {
			ext = ""
		}
		base = base[:maxNameLength-len(ext)]
	}

	return base + ext
}
