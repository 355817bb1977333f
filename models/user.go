package models

import (
	"time"
)

// Role values assigned to accounts. The set is fixed; there is no role
// management UI.
const (
	RoleAdmin          = "admin"
	RoleFranchiseOwner = "franchise_owner"
)

type User struct {
	UserID   int    `gorm:"primaryKey;column:user_id" json:"user_id"`
	Username string `gorm:"column:username;unique" json:"username"`
	Password string `gorm:"column:password_hash" json:"-"`
	Role     string `gorm:"column:role" json:"role"`

	// Optional contact address, used only for password reset delivery.
	Email *string `gorm:"column:email" json:"email,omitempty"`

	// Seeded accounts start with a well-known credential, so they must
	// replace it on first login before anything else is allowed.
	MustChangePassword bool `gorm:"column:must_change_password" json:"must_change_password"`

	CreateAt *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt *time.Time `gorm:"column:update_at" json:"update_at"`
}

// TableName overrides
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the account may manage the startup master.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
