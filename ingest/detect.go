package ingest

import (
	"path/filepath"
	"strings"
)

// Format represents a supported input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// JSON indicates a JSON fragment document.
	JSON
	// HTML indicates an HTML document.
	HTML
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case JSON:
		return "JSON"
	case HTML:
		return "HTML"
	default:
		return "Unknown"
	}
}

// Detect determines input format from filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return JSON
	case ".html", ".htm", ".xhtml":
		return HTML
	default:
		return Unknown
	}
}

// DetectFromMagic inspects the content to determine format. This is more
// reliable than extension-based detection.
func DetectFromMagic(data []byte) Format {
	start := 0
	for start < len(data) && (data[start] == ' ' || data[start] == '\t' || data[start] == '\n' || data[start] == '\r') {
		start++
	}
	if start >= len(data) {
		return Unknown
	}
	data = data[start:]

	switch data[0] {
	case '{', '[':
		return JSON
	case '<':
		if detectHTMLMagic(data) {
			return HTML
		}
	}
	return Unknown
}

// detectHTMLMagic checks if the data looks like HTML content.
func detectHTMLMagic(data []byte) bool {
	limit := len(data)
	if limit > 512 {
		limit = 512
	}
	upper := strings.ToUpper(string(data[:limit]))

	if strings.HasPrefix(upper, "<!DOCTYPE HTML") {
		return true
	}
	if strings.HasPrefix(upper, "<HTML") {
		return true
	}
	// XML declaration followed by html-like content could be XHTML.
	if strings.HasPrefix(upper, "<?XML") && strings.Contains(upper, "<HTML") {
		return true
	}
	// Bare tables exported without a document wrapper.
	return strings.HasPrefix(upper, "<TABLE")
}
