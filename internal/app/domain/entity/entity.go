// Package entity defines the base contract every stored domain record
// satisfies.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Entity is the base interface for stored records. Repositories stamp
// identifiers and timestamps through it on create.
type Entity interface {
	GetID() string
	GetCreatedAt() time.Time
	GenerateID()
	SetTimestamps()
}

// Base provides common entity fields.
type Base struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetID returns the record identifier.
func (b *Base) GetID() string { return b.ID }

// GetCreatedAt returns the creation time.
func (b *Base) GetCreatedAt() time.Time { return b.CreatedAt }

// GenerateID assigns a unique identifier if not already set.
func (b *Base) GenerateID() {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
}

// SetTimestamps stamps creation and update times.
func (b *Base) SetTimestamps() {
	now := time.Now().UTC()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}
