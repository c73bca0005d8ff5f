package util

import (
	"net/url"
	"strings"
)

// JoinURL concatenates base and path verbatim. Links on the site are
// root-relative ("/pitch_cards/..."), so no resolution is applied.
func JoinURL(base, path string) string {
	return base + path
}

// ValidBaseURL reports whether raw is an absolute http(s) URL without a
// trailing slash, which JoinURL relies on.
func ValidBaseURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasSuffix(raw, "/") {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
