package models

// MaxUploadSize caps a single file upload at 25 MiB. The same limit is served
// to the browser client through /api/files/meta so both sides reject
// oversized files identically.
const MaxUploadSize = 25 << 20

// MaxFileDescription caps the free-text description on a stored file.
const MaxFileDescription = 2000

// AllowedMimeTypes is the upload allow-list. Anything not listed here is
// rejected before any bytes reach the object store.
var AllowedMimeTypes = map[string]struct{}{
	"image/jpeg":      {},
	"image/png":       {},
	"image/gif":       {},
	"image/webp":      {},
	"image/svg+xml":   {},
	"application/pdf": {},
	"text/plain":      {},
	"text/csv":        {},
	"text/markdown":   {},
	"application/zip": {},
	"application/json": {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"application/vnd.ms-excel": {},
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":       {},
	"application/vnd.ms-powerpoint":                                           {},
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": {},
}

// MimeAllowed reports whether the given content type may be uploaded.
func MimeAllowed(mime string) bool {
	_, ok := AllowedMimeTypes[mime]
	return ok
}

// UploadMeta is the limits payload served to the browser client.
type UploadMeta struct {
	MaxSize      int64    `json:"maxSize"`
	AllowedTypes []string `json:"allowedTypes"`
}
