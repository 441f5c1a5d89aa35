// Package videolink turns user-supplied video URLs into embeddable
// playback links with a best-effort thumbnail.
package videolink

import (
	"regexp"
	"strings"
)

// Link is the normalization result. Thumbnail stays empty when no
// thumbnail can be derived from the input.
type Link struct {
	VideoURL     string `json:"videoUrl"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

var (
	watchRe = regexp.MustCompile(`[?&]v=([^&]+)`)
	shortRe = regexp.MustCompile(`youtu\.be/([^?&/]+)`)
	embedRe = regexp.MustCompile(`youtube\.com/embed/([^?&/]+)`)
	fileRe  = regexp.MustCompile(`(?i)\.(mp4|webm|ogg|mov|mkv)$`)
)

func embedURL(id string) string {
	return "https://www.youtube.com/embed/" + id
}

func thumbnailURL(id string) string {
	return "https://i.ytimg.com/vi/" + id + "/maxresdefault.jpg"
}

// Normalize maps an arbitrary input URL to a playback link. It is pure
// and total: unrecognized input is echoed back trimmed with an empty
// thumbnail, and empty input yields an empty Link rather than an error.
//
// Recognized shapes, first match wins:
//  1. watch links carrying a ?v= query parameter
//  2. youtu.be short links
//  3. already-canonical /embed/ links (returned unchanged)
//  4. direct video files (mp4, webm, ogg, mov, mkv)
func Normalize(raw string) Link {
	if raw == "" {
		return Link{}
	}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Link{}
	}

	if m := watchRe.FindStringSubmatch(trimmed); m != nil {
		return Link{VideoURL: embedURL(m[1]), ThumbnailURL: thumbnailURL(m[1])}
	}

	if m := shortRe.FindStringSubmatch(trimmed); m != nil {
		return Link{VideoURL: embedURL(m[1]), ThumbnailURL: thumbnailURL(m[1])}
	}

	if m := embedRe.FindStringSubmatch(trimmed); m != nil {
		return Link{VideoURL: trimmed, ThumbnailURL: thumbnailURL(m[1])}
	}

	if fileRe.MatchString(trimmed) {
		return Link{VideoURL: trimmed}
	}

	return Link{VideoURL: trimmed}
}
