package workspace

import (
	"net/url"
	"path/filepath"
	"strings"
)

// FilenameFromURI converts a file:// document/workspace URI to a local
// filesystem path. Non-file URIs and malformed URIs are returned unchanged
// best-effort, since the server never needs to dereference anything else.
func FilenameFromURI(uri string) string {
	if !strings.HasPrefix(uri, "file://") {
		return uri
	}
	u, err := url.Parse(uri)
	if err != nil {
		return strings.TrimPrefix(uri, "file://")
	}
	p := u.Path
	if p == "" {
		p = u.Opaque
	}
	return filepath.FromSlash(p)
}

// URIFromFilename converts a local filesystem path to a file:// URI.
func URIFromFilename(path string) string {
	slashed := filepath.ToSlash(path)
	if !strings.HasPrefix(slashed, "/") {
		slashed = "/" + slashed
	}
	return "file://" + slashed
}
