// Package domain holds the CRM entities, the input shapes accepted for each of
// them and the repository contracts the services depend on.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Model is embedded by every entity. ID is generated once and never changes.
type Model struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// EnsureID assigns a new identity when none is set.
func (m *Model) EnsureID() {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
}

// RowOutput wraps a single entity returned by an operation.
type RowOutput[T any] struct {
	Row *T `json:"row"`
}

// DeleteOutput reports the identity of a removed row.
type DeleteOutput struct {
	DeletedID string `json:"deletedId"`
}

