package domain

import "time"

// Idempotency records the resource produced by a POST carrying an
// Idempotency-Key, keyed by (scope, key). Scope is the logical form
// ("guestbook" or "contact") so the same key may be reused across forms.
// A retry inside the TTL window is answered from ResourceID instead of
// writing a second row.
type Idempotency struct {
	ID         string    `gorm:"type:char(36);primaryKey"`
	Scope      string    `gorm:"size:64;not null;uniqueIndex:ux_scope_key,priority:1"`
	Key        string    `gorm:"size:255;not null;uniqueIndex:ux_scope_key,priority:2"`
	ResourceID string    `gorm:"size:64;not null"`
	Status     int       `gorm:"not null"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime"`
	ExpiresAt  time.Time `gorm:"not null;index"`
}

// TableName implements the GORM tabler interface.
func (Idempotency) TableName() string { return "idempotency_keys" }
