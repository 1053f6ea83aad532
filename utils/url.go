package utils

import (
	"net/url"
	"strings"
)

// EmbedTrailerURL converts a YouTube watch URL into its embed form so the
// renderer can drop it straight into an iframe. Non-YouTube or unparseable
// URLs are returned unchanged.
func EmbedTrailerURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	host := strings.ToLower(u.Host)
	switch {
	case strings.Contains(host, "youtube.com"):
		if id := u.Query().Get("v"); id != "" {
			return "https://www.youtube.com/embed/" + id
		}
	case strings.Contains(host, "youtu.be"):
		if id := strings.Trim(u.Path, "/"); id != "" {
			return "https://www.youtube.com/embed/" + id
		}
	}
	return raw
}
