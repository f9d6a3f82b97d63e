// Package pathutil maps request paths onto a bounded set of metric and span labels.
package pathutil

import (
	"strings"
)

// UnmatchedRoute is the label used for any path outside the known route table.
const UnmatchedRoute = "/:unmatched"

// knownRoutes lists every route the API serves. Anything else is collapsed so
// that scanners probing random paths cannot grow label cardinality.
var knownRoutes = map[string]struct{}{
	"/":         {},
	"/insights": {},
	"/health":   {},
	"/live":     {},
	"/ready":    {},
	"/metrics":  {},
	"/swagger":  {},
}

// NormalizePath returns the route label for path.
// Query parameters and a trailing slash are stripped before lookup.
//
//	NormalizePath("/insights?q=chips")    // "/insights"
//	NormalizePath("/insights/")           // "/insights"
//	NormalizePath("/swagger/index.html")  // "/swagger"
//	NormalizePath("/wp-admin.php")        // "/:unmatched"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}
	if path == "" {
		path = "/"
	}
	if strings.HasPrefix(path, "/swagger/") {
		return "/swagger"
	}

	if _, ok := knownRoutes[path]; ok {
		return path
	}
	return UnmatchedRoute
}

// GetExpectedCardinality returns the number of distinct labels NormalizePath can produce.
func GetExpectedCardinality() int {
	return len(knownRoutes) + 1
}
