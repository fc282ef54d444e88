package utils

import (
	"fmt"
	"strings"
)

// MaxUploadSizeBytes is the hard ceiling for a single artifact upload.
const MaxUploadSizeBytes = 50 * 1024 * 1024

// allowedUploadMimeTypes is the allow-list for audit artifact uploads.
// Checked before any storage call so oversized or unsupported files
// never leave the request handler.
var allowedUploadMimeTypes = map[string]bool{
	"application/pdf":    true,
	"image/jpeg":         true,
	"image/png":          true,
	"image/gif":          true,
	"image/webp":         true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"text/plain":                   true,
	"text/csv":                     true,
	"application/zip":              true,
	"application/x-zip-compressed": true,
	"audio/mpeg":                   true,
	"audio/wav":                    true,
	"audio/mp4":                    true,
	"video/mp4":                    true,
	"video/webm":                   true,
	"video/ogg":                    true,
}

var mimeTypeExtensions = map[string]string{
	"application/pdf":    ".pdf",
	"image/jpeg":         ".jpg",
	"image/png":          ".png",
	"image/gif":          ".gif",
	"image/webp":         ".webp",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
	"application/vnd.ms-excel": ".xls",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": ".xlsx",
	"text/plain":                   ".txt",
	"text/csv":                     ".csv",
	"application/zip":              ".zip",
	"application/x-zip-compressed": ".zip",
	"audio/mpeg":                   ".mp3",
	"audio/wav":                    ".wav",
	"audio/mp4":                    ".m4a",
	"video/mp4":                    ".mp4",
	"video/webm":                   ".webm",
	"video/ogg":                    ".ogv",
}

func IsAllowedUploadMimeType(mimeType string) bool {
	return allowedUploadMimeTypes[normalizeMimeType(mimeType)]
}

// ValidateUpload rejects unsupported MIME types and oversized payloads.
// Size failures get a size-specific message so the client can surface
// the limit to the user.
func ValidateUpload(mimeType string, size int64) error {
	if !IsAllowedUploadMimeType(mimeType) {
		return fmt.Errorf("unsupported file type: %s", mimeType)
	}
	if size > MaxUploadSizeBytes {
		return fmt.Errorf("file too large: %d bytes exceeds the %dMB limit", size, MaxUploadSizeBytes/(1024*1024))
	}
	return nil
}

// ExtensionForMimeType returns the canonical extension for an allowed
// MIME type, or "" when unknown.
func ExtensionForMimeType(mimeType string) string {
	return mimeTypeExtensions[normalizeMimeType(mimeType)]
}

func normalizeMimeType(mimeType string) string {
	// Strip parameters like "; charset=utf-8".
	if idx := strings.Index(mimeType, ";"); idx >= 0 {
		mimeType = mimeType[:idx]
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}
