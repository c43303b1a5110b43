package domain

import (
	"net/url"
	"path"
	"strings"
	"time"
)

const (
	// VideoRoute and SubtitlesRoute prefix the URLs handed to clients
	VideoRoute     = "/video/"
	SubtitlesRoute = "/subtitles/"

	// SubtitleExt is the extension of every derived subtitle artifact
	SubtitleExt = ".srt"
)

// MediaArtifact is an uploaded media file as stored on disk
type MediaArtifact struct {
	StorageName  string    `json:"storageName"`
	OriginalName string    `json:"originalName"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

// BaseName is the storage name without its extension
func (m MediaArtifact) BaseName() string {
	return BaseName(m.StorageName)
}

// SubtitleName is the file name of the artifact's subtitle transcript
func (m MediaArtifact) SubtitleName() string {
	return SubtitleName(m.StorageName)
}

// SubtitleName derives the subtitle file name for a storage name
func SubtitleName(storageName string) string {
	return BaseName(storageName) + SubtitleExt
}

// CatalogEntry pairs a media artifact with its (possibly not yet existing) subtitles
type CatalogEntry struct {
	Filename     string `json:"filename"`
	VideoURL     string `json:"videoUrl"`
	SubtitlesURL string `json:"subtitlesUrl"`
}

// NewCatalogEntry derives an entry from a storage name by naming convention.
// It never touches the filesystem and never fails.
func NewCatalogEntry(storageName string) CatalogEntry {
	storageName = path.Base(strings.ReplaceAll(storageName, "\\", "/"))
	base := BaseName(storageName)

	return CatalogEntry{
		Filename:     base,
		VideoURL:     VideoRoute + url.PathEscape(storageName),
		SubtitlesURL: SubtitlesRoute + url.PathEscape(base+SubtitleExt),
	}
}

// StorageName recovers the on-disk media name the entry was derived from.
// Filename drops the extension, so only the video URL carries it.
func (e CatalogEntry) StorageName() string {
	escaped := strings.TrimPrefix(e.VideoURL, VideoRoute)
	name, err := url.PathUnescape(escaped)
	if err != nil {
		return escaped
	}
	return name
}

// BaseName strips the final extension from a file name
func BaseName(name string) string {
	return strings.TrimSuffix(name, path.Ext(name))
}

// HasExtension reports whether name ends in one of exts, case-insensitively
func HasExtension(name string, exts []string) bool {
	ext := strings.ToLower(path.Ext(name))
	if ext == "" {
		return false
	}
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}
