package models

import (
	"time"
)

// Shortlist marks that a user keeps a startup on their shortlist. Membership
// is a set: one row per (startup, user) pair, toggled on and off.
type Shortlist struct {
	ShortlistID int       `gorm:"primaryKey;column:shortlist_id" json:"shortlist_id"`
	StartupID   int       `gorm:"column:startup_id;uniqueIndex:uniq_shortlist_startup_user" json:"startup_id"`
	UserID      int       `gorm:"column:user_id;uniqueIndex:uniq_shortlist_startup_user" json:"user_id"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`

	Startup Startup `gorm:"foreignKey:StartupID" json:"startup,omitempty"`
	User    User    `gorm:"foreignKey:UserID" json:"-"`
}

// TableName overrides
func (Shortlist) TableName() string {
	return "shortlists"
}
