package models

import "time"

// AuditLog records an operator mutation in the console.
type AuditLog struct {
	ID         int       `json:"id"`
	Actor      string    `json:"actor"`
	Action     string    `json:"action"`      // e.g. "inquiry.status", "expense.update"
	EntityType string    `json:"entity_type"` // "inquiry", "booking", "payment", ...
	EntityID   int       `json:"entity_id"`
	Detail     string    `json:"detail,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
