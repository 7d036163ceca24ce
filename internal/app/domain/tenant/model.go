// Package tenant defines the tenant domain model.
package tenant

import (
	"strings"

	"github.com/roamdine/platform/internal/app/domain/entity"
	"github.com/roamdine/platform/internal/errors"
)

// Tenant represents an organization operating on the platform, such as a
// travel supplier or restaurant chain.
type Tenant struct {
	entity.Base
	Name string `json:"name"`
	Slug string `json:"slug"`
	Plan string `json:"plan,omitempty"`
}

// Validate checks the record shape before persistence.
func Validate(t *Tenant) error {
	var issues []errors.FieldIssue
	if strings.TrimSpace(t.Name) == "" {
		issues = append(issues, errors.FieldIssue{Field: "name", Message: "name is required"})
	}
	if strings.TrimSpace(t.Slug) == "" {
		issues = append(issues, errors.FieldIssue{Field: "slug", Message: "slug is required"})
	}
	if len(issues) > 0 {
		return errors.Validation("invalid tenant", issues...)
	}
	return nil
}
