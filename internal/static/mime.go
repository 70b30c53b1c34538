package static

import "strings"

// mimeRule pairs a file suffix with the content type served for it.
type mimeRule struct {
	suffix      string
	contentType string
}

// mimeTable is checked in order and the first matching suffix wins.
// Matching is case-sensitive.
var mimeTable = []mimeRule{
	{".html", "text/html"},
	{".js", "application/javascript"},
	{".css", "text/css"},
	{".png", "image/png"},
	{".jpg", "image/jpeg"},
	{".jpeg", "image/jpeg"},
	{".wav", "audio/wav"},
}

// FallbackContentType is returned for any suffix missing from the table.
const FallbackContentType = "text/plain"

// ContentType returns the content type for path based on its suffix.
func ContentType(path string) string {
	for _, r := range mimeTable {
		if strings.HasSuffix(path, r.suffix) {
			return r.contentType
		}
	}
	return FallbackContentType
}
