package rules

import (
	"strings"

	"customizer/internal/domain"
)

// allowedUploadMIMEs lists the image types the storefront preview supports.
var allowedUploadMIMEs = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// CheckUpload validates the declared MIME type and size of an incoming
// image against the field's limits before anything is stored.
func CheckUpload(field domain.Field, mime string, size int64) error {
	mime = strings.ToLower(strings.TrimSpace(mime))
	if _, ok := allowedUploadMIMEs[mime]; !ok {
		return domain.ErrUnsupportedMedia
	}
	if field.MaxBytes > 0 && size > field.MaxBytes {
		return domain.ErrUploadTooLarge
	}
	return nil
}

// UploadExtension returns the canonical file extension for an accepted MIME
// type, or empty when the type is not accepted.
func UploadExtension(mime string) string {
	return allowedUploadMIMEs[strings.ToLower(strings.TrimSpace(mime))]
}
