// Package search defines the search document model.
package search

import (
	"strings"

	"github.com/roamdine/platform/internal/app/domain/entity"
	"github.com/roamdine/platform/internal/errors"
)

// Document is a record scheduled for indexing in the search backend.
type Document struct {
	entity.Base
	TenantID string         `json:"tenant_id"`
	Index    string         `json:"index"`
	Fields   map[string]any `json:"fields"`
}

// Validate checks the record shape before persistence.
func Validate(d *Document) error {
	var issues []errors.FieldIssue
	if strings.TrimSpace(d.TenantID) == "" {
		issues = append(issues, errors.FieldIssue{Field: "tenant_id", Message: "tenant_id is required"})
	}
	if strings.TrimSpace(d.Index) == "" {
		issues = append(issues, errors.FieldIssue{Field: "index", Message: "index is required"})
	}
	if len(d.Fields) == 0 {
		issues = append(issues, errors.FieldIssue{Field: "fields", Message: "fields must not be empty"})
	}
	if len(issues) > 0 {
		return errors.Validation("invalid search document", issues...)
	}
	return nil
}
