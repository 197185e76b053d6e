package util

import (
	"net/url"
	"path"
	"strings"
)

// NormaliseBaseURL trims whitespace and any trailing slash
func NormaliseBaseURL(baseURL string) string {
	baseURL = strings.TrimSpace(baseURL)
	for len(baseURL) > 1 && strings.HasSuffix(baseURL, "/") {
		baseURL = baseURL[:len(baseURL)-1]
	}
	return baseURL
}

// ResolveURLPath joins a relative path onto a base URL, keeping any prefix in
// the base path. Absolute URLs (SWAPI "next" links) are returned untouched.
//
//   - ResolveURLPath("https://swapi.dev/api", "people/") -> "https://swapi.dev/api/people/"
//   - ResolveURLPath("https://swapi.dev/api", "https://swapi.dev/api/people/?page=2") -> unchanged
func ResolveURLPath(baseURL, pathOrURL string) string {
	if baseURL == "" {
		return pathOrURL
	}
	if pathOrURL == "" {
		return baseURL
	}

	if parsed, err := url.Parse(pathOrURL); err == nil && parsed.IsAbs() {
		return pathOrURL
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return pathOrURL
	}

	rel, query, _ := strings.Cut(pathOrURL, "?")

	// path.Join drops trailing slashes, SWAPI answers those with a redirect
	trailing := strings.HasSuffix(rel, "/")
	base.Path = path.Join(base.Path, rel)
	if trailing && !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	if query != "" {
		base.RawQuery = query
	}
	return base.String()
}

// LastPathSegment returns the final non-empty segment of a URL path, which
// is the numeric id in SWAPI resource urls
func LastPathSegment(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] != "" {
			return parts[i]
		}
	}
	return ""
}
