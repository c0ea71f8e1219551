// Package trailer turns trailer references into embeddable player URLs and
// tracks open playback sessions.
package trailer

import "strings"

const (
	watchMarker = "youtube.com/watch?v="
	shortMarker = "youtu.be/"
	embedPrefix = "https://www.youtube.com/embed/"
	embedSuffix = "?autoplay=1"
)

// ResolveEmbedURL rewrites a YouTube watch or short link into an autoplaying
// embed URL:
//
//	https://www.youtube.com/watch?v=ABC123&t=10s -> https://www.youtube.com/embed/ABC123?autoplay=1
//	https://youtu.be/ABC123?si=x                 -> https://www.youtube.com/embed/ABC123?autoplay=1
//
// Any other reference, including an existing embed URL, is returned
// unchanged. An empty reference stays empty.
func ResolveEmbedURL(ref string) string {
	if videoID, ok := VideoID(ref); ok {
		return embedPrefix + videoID + embedSuffix
	}
	return ref
}

// VideoID extracts the video identifier from a recognized watch or short
// link. The identifier ends at the next '&' or '?'.
func VideoID(ref string) (string, bool) {
	for _, marker := range []string{watchMarker, shortMarker} {
		_, rest, found := strings.Cut(ref, marker)
		if !found {
			continue
		}
		if i := strings.IndexAny(rest, "&?"); i >= 0 {
			rest = rest[:i]
		}
		if rest == "" {
			return "", false
		}
		return rest, true
	}
	return "", false
}

// IsEmbeddable reports whether ref already points at an embed player.
func IsEmbeddable(ref string) bool {
	return strings.Contains(ref, "youtube.com/embed/") || strings.Contains(ref, "player.vimeo.com/video/")
}
