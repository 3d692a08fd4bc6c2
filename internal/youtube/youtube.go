// Package youtube parses the two YouTube URL shapes the platform accepts
// (watch links and youtu.be short links) and builds embed URLs from them.
package youtube

import (
	"fmt"
	"regexp"
)

var (
	validURLPattern = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com/watch\?v=|youtu\.be/)[\w-]+`)
	videoIDPattern  = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/)([\w-]+)`)
)

// IsValidURL reports whether raw is a recognized watch or short-link URL.
// Anything else must be rejected before a course row is written.
func IsValidURL(raw string) bool {
	return validURLPattern.MatchString(raw)
}

// ExtractVideoID pulls the video token out of a stored URL. The second
// return is false when the URL matches neither pattern, in which case the
// caller renders a placeholder instead of a player.
func ExtractVideoID(raw string) (string, bool) {
	m := videoIDPattern.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func EmbedURL(videoID string) string {
	return fmt.Sprintf("https://www.youtube.com/embed/%s", videoID)
}

func WatchURL(videoID string) string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID)
}
