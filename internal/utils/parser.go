package utils

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

// PlaceholderPicture shown when a movie has no picture
const PlaceholderPicture = "https://via.placeholder.com/400"

// Excerpt returns the first n runes of s followed by "...".
// The ellipsis is appended even to short or empty text, as the catalog
// cards always did.
func Excerpt(s string, n int) string {
	if utf8.RuneCountInString(s) > n {
		s = string([]rune(s)[:n])
	}
	return s + "..."
}

// PictureOrPlaceholder falls back to the placeholder for an empty picture
func PictureOrPlaceholder(picture string) string {
	if strings.TrimSpace(picture) == "" {
		return PlaceholderPicture
	}
	return picture
}

// IsHTTPURL reports whether raw is an absolute http(s) URL
func IsHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
