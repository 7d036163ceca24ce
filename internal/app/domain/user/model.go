// Package user defines the user domain model.
package user

import (
	"strings"

	"github.com/roamdine/platform/internal/app/domain/entity"
	"github.com/roamdine/platform/internal/errors"
)

// User is a member of a tenant: staff, supplier operator or customer.
type User struct {
	entity.Base
	TenantID     string `json:"tenant_id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         string `json:"role,omitempty"`
	PasswordHash string `json:"-"`
}

// Validate checks the record shape before persistence.
func Validate(u *User) error {
	var issues []errors.FieldIssue
	if strings.TrimSpace(u.TenantID) == "" {
		issues = append(issues, errors.FieldIssue{Field: "tenant_id", Message: "tenant_id is required"})
	}
	email := strings.TrimSpace(u.Email)
	if email == "" {
		issues = append(issues, errors.FieldIssue{Field: "email", Message: "email is required"})
	} else if !strings.Contains(email, "@") {
		issues = append(issues, errors.FieldIssue{Field: "email", Message: "email is not valid"})
	}
	if strings.TrimSpace(u.Name) == "" {
		issues = append(issues, errors.FieldIssue{Field: "name", Message: "name is required"})
	}
	if len(issues) > 0 {
		return errors.Validation("invalid user", issues...)
	}
	return nil
}
