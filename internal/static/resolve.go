// Package static maps request paths to files under a serving root and
// writes them back with a content type taken from a fixed suffix table.
package static

import "strings"

// DefaultIndex is the document served for the root path when none is configured.
const DefaultIndex = "index.html"

// Resolve converts a raw request path into a candidate file path relative to
// the serving root.
//
// The root path "/" is replaced by index. Exactly one leading slash is then
// stripped. No other normalization happens here; containment is checked by
// the Handler.
func Resolve(requestPath, index string) string {
	if requestPath == "/" {
		requestPath = "/" + index
	}
	return strings.TrimPrefix(requestPath, "/")
}
