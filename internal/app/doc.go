// Package app assembles the platform core: multi-tenant commerce services
// for travel and dine-in tenants built around one generic entity pipeline.
//
// Layering, innermost first:
//
//   - domain/* holds the entity models and their shape validation.
//   - storage defines the repository ports; storage/memory and
//     storage/postgres implement them.
//   - core/usecase is the generic create/get/list pipeline: rate limit,
//     schema validation, persistence, best-effort audit.
//   - services/* compose the pipeline per entity and layer domain rules and
//     provider side-effects on top.
//   - providers holds the payment, search and messaging capability ports.
//   - httpapi adapts everything to REST and maps the error taxonomy to
//     status codes.
//
// Payment charges are strict: a failed charge fails order creation and the
// order is compensated to failed. Search indexing and message delivery are
// best-effort side channels that log and count failures without failing the
// owning create.
package app
