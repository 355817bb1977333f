package models

import (
	"time"
)

// UserToken stores single-use password reset tokens.
type UserToken struct {
	TokenID   int       `gorm:"primaryKey;column:token_id" json:"token_id"`
	UserID    int       `gorm:"column:user_id;index" json:"user_id"`
	TokenHash string    `gorm:"column:token_hash" json:"-"`
	TokenType string    `gorm:"column:token_type" json:"token_type"`
	IsRevoked bool      `gorm:"column:is_revoked" json:"is_revoked"`
	ExpiresAt time.Time `gorm:"column:expires_at" json:"expires_at"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides
func (UserToken) TableName() string {
	return "user_tokens"
}
