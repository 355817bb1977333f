package models

import (
	"gorm.io/gorm"
)

// Migrate creates or updates the schema for every model the dashboard owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Startup{},
		&Rating{},
		&Shortlist{},
		&AppMeta{},
		&UserToken{},
	)
}
