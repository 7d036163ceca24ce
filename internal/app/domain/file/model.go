// Package file defines the uploaded file metadata model.
package file

import (
	"strings"

	"github.com/roamdine/platform/internal/app/domain/entity"
	"github.com/roamdine/platform/internal/errors"
)

// AllowedMimePrefixes lists the MIME type prefixes accepted for uploads.
var AllowedMimePrefixes = []string{"image/", "video/", "audio/", "application/pdf"}

// File is metadata for an uploaded object; bytes live in external storage.
type File struct {
	entity.Base
	TenantID   string `json:"tenant_id"`
	Name       string `json:"name"`
	MimeType   string `json:"mime_type"`
	SizeBytes  int64  `json:"size_bytes,omitempty"`
	StorageKey string `json:"storage_key,omitempty"`
}

// MimeAllowed reports whether the MIME type matches the allow-list.
func MimeAllowed(mimeType string) bool {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	for _, prefix := range AllowedMimePrefixes {
		if strings.HasPrefix(mimeType, prefix) {
			return true
		}
	}
	return false
}

// Validate checks the record shape before persistence. The MIME allow-list is
// a files-service rule.
func Validate(f *File) error {
	var issues []errors.FieldIssue
	if strings.TrimSpace(f.TenantID) == "" {
		issues = append(issues, errors.FieldIssue{Field: "tenant_id", Message: "tenant_id is required"})
	}
	if strings.TrimSpace(f.Name) == "" {
		issues = append(issues, errors.FieldIssue{Field: "name", Message: "name is required"})
	}
	if strings.TrimSpace(f.MimeType) == "" {
		issues = append(issues, errors.FieldIssue{Field: "mime_type", Message: "mime_type is required"})
	}
	if f.SizeBytes < 0 {
		issues = append(issues, errors.FieldIssue{Field: "size_bytes", Message: "size_bytes must not be negative"})
	}
	if len(issues) > 0 {
		return errors.Validation("invalid file", issues...)
	}
	return nil
}
