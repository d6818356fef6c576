// Package domain defines the persistence models for guestbook entries and
// contact messages. These types are mapped with GORM and are shared by the
// repository, service and HTTP layers.
package domain

import "time"

// GuestbookEntry is a public visitor message. Entries are append-only: the
// store assigns ID and CreatedAt on insert and nothing updates them later.
//
// Fields:
//   - ID: ULID primary key (26 chars); lexically ordered by creation time.
//   - Name: author display name, 1..100 characters, stored verbatim.
//   - Message: entry text, 1..500 characters, stored verbatim.
//   - CreatedAt: UTC insert time; indexed together with ID for listing.
type GuestbookEntry struct {
	ID        string    `json:"id"        gorm:"type:char(26);primaryKey"`
	Name      string    `json:"name"      gorm:"type:varchar(100);not null"`
	Message   string    `json:"message"   gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"not null;index:idx_guestbook_created"`
}

// TableName returns the database table name for GuestbookEntry.
func (GuestbookEntry) TableName() string { return "guestbook_entries" }

// ContactMessage is a private inquiry sent through the contact form. The
// table is a write-only sink; no public API reads it back.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - Name: sender name, 1..100 characters.
//   - Email: sender address in local@domain.tld shape.
//   - Message: inquiry text, 1..1000 characters.
//   - CreatedAt: UTC insert time.
type ContactMessage struct {
	ID        string    `json:"id"        gorm:"type:char(36);primaryKey"`
	Name      string    `json:"name"      gorm:"type:varchar(100);not null"`
	Email     string    `json:"email"     gorm:"type:varchar(320);not null"`
	Message   string    `json:"message"   gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"not null;index"`
}

// TableName returns the database table name for ContactMessage.
func (ContactMessage) TableName() string { return "contact_messages" }
