package restclient

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/restclient/internal/constants"
)

// parseURL accepts absolute URLs and rooted or relative paths. Opaque
// URLs such as "localhost:8080" cannot carry a path and are rejected.
func parseURL(raw string) (*url.URL, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing URL: %w", ErrInvalidParameters, err)
	}

	if parsed.Opaque != "" {
		return nil, fmt.Errorf("%w: URL %q has no path component, add a scheme", ErrInvalidParameters, raw)
	}

	return parsed, nil
}

// escapeSegment path-escapes a single segment. "." and ".." are percent
// encoded so that JoinPath keeps them instead of resolving them.
func escapeSegment(segment string) string {
	switch segment {
	case ".":
		return "%2E"
	case "..":
		return "%2E%2E"
	default:
		return url.PathEscape(segment)
	}
}

// escapeResourceName escapes every segment of name but keeps the separators.
func escapeResourceName(name string) string {
	segments := strings.Split(name, constants.PathSeparator)
	for i, segment := range segments {
		segments[i] = escapeSegment(segment)
	}

	return strings.Join(segments, constants.PathSeparator)
}

// formatKey stringifies key and escapes it as a single path segment.
func formatKey(key interface{}) (string, error) {
	if key == nil {
		return "", fmt.Errorf("%w: key is required", ErrInvalidParameters)
	}

	formatted := fmt.Sprint(key)
	if formatted == "" {
		return "", fmt.Errorf("%w: key is required", ErrInvalidParameters)
	}

	return escapeSegment(formatted), nil
}

// withTrailingSeparator joins elems onto u and guarantees exactly one
// trailing separator. Duplicate separators are collapsed by JoinPath.
func withTrailingSeparator(u *url.URL, elems ...string) string {
	return u.JoinPath(append(elems, constants.PathSeparator)...).String()
}
