package models

import (
	"time"
)

// Rating holds one user's score for one startup. The (startup, user) pair is
// unique; a repeated submission overwrites in place and no history is kept.
type Rating struct {
	RatingID  int       `gorm:"primaryKey;column:rating_id" json:"rating_id"`
	StartupID int       `gorm:"column:startup_id;uniqueIndex:uniq_rating_startup_user" json:"startup_id"`
	UserID    int       `gorm:"column:user_id;uniqueIndex:uniq_rating_startup_user" json:"user_id"`
	Score     int       `gorm:"column:rating" json:"rating"`
	Comment   string    `gorm:"column:comment;type:text" json:"comment"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`

	Startup Startup `gorm:"foreignKey:StartupID" json:"startup,omitempty"`
	User    User    `gorm:"foreignKey:UserID" json:"-"`
}

// TableName overrides
func (Rating) TableName() string {
	return "ratings"
}
