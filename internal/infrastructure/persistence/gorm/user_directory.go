package gorm

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/misebox/v1/internal/ports/outbound"
)

// UserDirectory enumerates active users for the nightly scan
type UserDirectory struct {
	db *gorm.DB
}

// NewUserDirectory creates a new user directory
func NewUserDirectory(db *gorm.DB) outbound.UserDirectory {
	return &UserDirectory{db: db}
}

// ListUserIDs returns the IDs of every active user.
func (r *UserDirectory) ListUserIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Where("is_active = ?", true).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
