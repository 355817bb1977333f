package models

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AppMeta represents key-value application flags such as the startup master
// lock and the last-known record count.
type AppMeta struct {
	Key   string `gorm:"primaryKey;column:meta_key" json:"key"`
	Value string `gorm:"column:meta_value" json:"value"`
}

// TableName specifies the table name for GORM
func (AppMeta) TableName() string {
	return "app_meta"
}

// Well-known metadata keys.
const (
	MetaStartupLocked = "startup_locked"
	MetaStartupCount  = "startup_count"
)

// GetMeta fetches a metadata value; an absent key returns "".
func GetMeta(db *gorm.DB, key string) (string, error) {
	var meta AppMeta
	if err := db.Where("meta_key = ?", key).First(&meta).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return meta.Value, nil
}

// SetMeta writes a metadata value, overwriting any previous one.
func SetMeta(db *gorm.DB, key, value string) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "meta_key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"meta_value": value}),
	}).Create(&AppMeta{Key: key, Value: value}).Error
}

// StartupMasterLocked reports whether re-ingestion needs an explicit
// override.
func StartupMasterLocked(db *gorm.DB) (bool, error) {
	value, err := GetMeta(db, MetaStartupLocked)
	if err != nil {
		return false, err
	}
	return value == "1", nil
}
