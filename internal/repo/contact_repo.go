package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-portfolio-backend/internal/domain"
)

// CreateContactMessage inserts a contact submission with a fresh UUID and a
// UTC timestamp and returns the stored row.
func CreateContactMessage(ctx context.Context, db *gorm.DB, name, email, message string) (*domain.ContactMessage, error) {
	m := &domain.ContactMessage{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

// CountContactMessages returns the number of stored submissions. There is no
// public read path; operators and tests use this to check the sink.
func CountContactMessages(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.ContactMessage{}).Count(&n).Error
	return n, err
}
