// Package agent defines the AI agent configuration model.
package agent

import (
	"strings"

	"github.com/roamdine/platform/internal/app/domain/entity"
	"github.com/roamdine/platform/internal/errors"
)

// PermittedModels is the allow-list of language models an agent may use.
var PermittedModels = []string{
	"gpt-4o",
	"gpt-4o-mini",
	"claude-3-5-sonnet",
	"claude-3-haiku",
}

// Agent is a configured AI assistant, such as a concierge bot for a tenant.
type Agent struct {
	entity.Base
	TenantID     string  `json:"tenant_id"`
	Name         string  `json:"name"`
	Model        string  `json:"model"`
	SystemPrompt string  `json:"system_prompt,omitempty"`
	Temperature  float64 `json:"temperature,omitempty"`
}

// ModelPermitted reports whether the model is on the allow-list.
func ModelPermitted(model string) bool {
	model = strings.TrimSpace(model)
	for _, m := range PermittedModels {
		if m == model {
			return true
		}
	}
	return false
}

// Validate checks the record shape before persistence. The model allow-list is
// an agents-service rule.
func Validate(a *Agent) error {
	var issues []errors.FieldIssue
	if strings.TrimSpace(a.TenantID) == "" {
		issues = append(issues, errors.FieldIssue{Field: "tenant_id", Message: "tenant_id is required"})
	}
	if strings.TrimSpace(a.Name) == "" {
		issues = append(issues, errors.FieldIssue{Field: "name", Message: "name is required"})
	}
	if strings.TrimSpace(a.Model) == "" {
		issues = append(issues, errors.FieldIssue{Field: "model", Message: "model is required"})
	}
	if a.Temperature < 0 || a.Temperature > 2 {
		issues = append(issues, errors.FieldIssue{Field: "temperature", Message: "temperature must be between 0 and 2"})
	}
	if len(issues) > 0 {
		return errors.Validation("invalid agent", issues...)
	}
	return nil
}
