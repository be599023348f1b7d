// Package preview classifies URLs into preview kinds and derives display
// metadata for them.
//
// Classification is pure and total: any string input maps to one of the
// kinds in models (youtube, youtube-short, instagram-reel, tiktok,
// article, link) without I/O and without panicking. Fetching is handled
// separately by ChainFetcher, which walks an ordered list of fallback
// fetch channels and degrades to a generic link record when every
// channel fails.
package preview

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/dalemusser/vaulthub/internal/domain/models"
)

var (
	youTubeHost = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com|youtu\.be)`)

	// Permissive pattern over the common YouTube URL shapes:
	// watch?v=, youtu.be/, /v/, /u/<user>/, /embed/.
	youTubeID = regexp.MustCompile(`(?:youtu\.be/|v/|/u/\w/|embed/|watch\?)\??v?=?([^#&?]*)`)
)

// YouTubeVideoID extracts the 11-character video identifier from a
// YouTube URL. The boolean is false when no identifier of the expected
// length can be found; callers fall through to generic handling then.
func YouTubeVideoID(rawURL string) (string, bool) {
	m := youTubeID.FindStringSubmatch(rawURL)
	if m == nil || len(m[1]) != 11 {
		return "", false
	}
	return m[1], true
}

// Classify maps a URL to its preview kind. Ordered rules, first match
// wins; malformed input degrades to models.PreviewLink rather than
// failing. Callers are expected not to pass an empty URL.
func Classify(rawURL string) string {
	if youTubeHost.MatchString(rawURL) {
		if _, ok := YouTubeVideoID(rawURL); ok {
			if strings.Contains(rawURL, "/shorts/") {
				return models.PreviewYouTubeShort
			}
			return models.PreviewYouTube
		}
		// No extractable video id: treat like any other page.
	}
	if strings.Contains(rawURL, "instagram.com/reel/") {
		return models.PreviewInstagramReel
	}
	if strings.Contains(rawURL, "tiktok.com") {
		return models.PreviewTikTok
	}
	if u, err := url.Parse(strings.TrimSpace(rawURL)); err == nil &&
		(u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
		return models.PreviewArticle
	}
	return models.PreviewLink
}

// youTubeThumbnail returns the well-known thumbnail URL for a video id.
// Thumbnail URLs are guessable without fetching the page.
func youTubeThumbnail(videoID string) string {
	return "https://img.youtube.com/vi/" + videoID + "/maxresdefault.jpg"
}

// youTubeEmbedURL returns the embed player URL for a video id.
func youTubeEmbedURL(videoID string) string {
	return "https://www.youtube.com/embed/" + videoID
}
