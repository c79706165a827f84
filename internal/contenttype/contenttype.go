// Package contenttype maps static asset filenames to MIME content types.
package contenttype

import (
	"fmt"
	"path/filepath"
	"strings"
)

// NoEncoding disables the charset parameter on text content types.
const NoEncoding = "none"

type entry struct {
	mime   string
	isText bool
}

// types maps a lowercase file extension (without the dot) to its MIME type
// and whether the payload is textual.
var types = map[string]entry{
	"txt":         {"text/plain", true},
	"htm":         {"text/html", true},
	"html":        {"text/html", true},
	"xhtml":       {"application/xhtml+xml", true},
	"css":         {"text/css", true},
	"js":          {"text/javascript", true},
	"mjs":         {"text/javascript", true},
	"xml":         {"application/xml", true},
	"json":        {"application/json", true},
	"jsonld":      {"application/ld+json", true},
	"yaml":        {"text/yaml", true},
	"yml":         {"text/yaml", true},
	"csv":         {"text/csv", true},
	"md":          {"text/markdown", true},
	"svg":         {"image/svg+xml", true},
	"webmanifest": {"application/manifest+json", true},
	"apng":        {"image/apng", false},
	"avif":        {"image/avif", false},
	"bmp":         {"image/bmp", false},
	"gif":         {"image/gif", false},
	"ico":         {"image/vnd.microsoft.icon", false},
	"jpeg":        {"image/jpeg", false},
	"jpg":         {"image/jpeg", false},
	"png":         {"image/png", false},
	"tif":         {"image/tiff", false},
	"tiff":        {"image/tiff", false},
	"webp":        {"image/webp", false},
	"eot":         {"application/vnd.ms-fontobject", false},
	"otf":         {"font/otf", false},
	"ttf":         {"font/ttf", false},
	"woff":        {"font/woff", false},
	"woff2":       {"font/woff2", false},
	"mp3":         {"audio/mpeg", false},
	"mp4":         {"video/mp4", false},
	"webm":        {"video/webm", false},
	"pdf":         {"application/pdf", false},
	"zip":         {"application/zip", false},
	"gz":          {"application/gzip", false},
	"wasm":        {"application/wasm", false},
	"map":         {"application/json", true},
}

// Resolve returns the content type for a filename. Text types get a
// ";charset=<encoding>" suffix unless encoding is NoEncoding. Unknown
// extensions fall back to application/octet-stream.
//
// Apple/Android app-site association files ship without a .json extension
// but must still be served as JSON.
func Resolve(filename, encoding string) string {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	if strings.HasSuffix(filename, ".well-known/site-association-json") {
		ext = "json"
	}

	e, ok := types[strings.ToLower(ext)]
	if !ok {
		return "application/octet-stream"
	}
	if e.isText && encoding != NoEncoding {
		return fmt.Sprintf("%s;charset=%s", e.mime, encoding)
	}
	return e.mime
}
