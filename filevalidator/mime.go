package filevalidator

import (
	"strings"
)

// Common extension to MIME type mapping
var extensionToMimeType = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".jpe":  "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".tiff": "image/tiff",
	".tif":  "image/tiff",
	".bmp":  "image/bmp",
	".heic": "image/heic",
	".heif": "image/heif",
	".svg":  "image/svg+xml",

	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain",
}

// MIMETypeForExtension returns the MIME type for a given file extension
// Returns empty string if the extension is not recognized
func MIMETypeForExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return extensionToMimeType[ext]
}

// NormalizeMIME lower-cases a declared media type and strips parameters,
// e.g. "Image/JPEG; charset=binary" becomes "image/jpeg"
func NormalizeMIME(mime string) string {
	if idx := strings.Index(mime, ";"); idx >= 0 {
		mime = mime[:idx]
	}
	return strings.ToLower(strings.TrimSpace(mime))
}
