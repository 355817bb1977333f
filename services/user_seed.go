package services

import (
	"time"

	"startup-dashboard-api/models"
	"startup-dashboard-api/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// defaultAccounts are created only when the users table is empty. The
// credentials are fixed and identical across installs, so every seeded
// account is forced through a password change on first login.
var defaultAccounts = []struct {
	Username string
	Password string
	Role     string
}{
	{"admin", "admin123", models.RoleAdmin},
	{"owner", "owner123", models.RoleFranchiseOwner},
}

// SeedDefaultUsers bootstraps the two default accounts on a fresh install.
// It does nothing when any user already exists.
func SeedDefaultUsers(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	for _, account := range defaultAccounts {
		hashed, err := utils.HashPassword(account.Password)
		if err != nil {
			return err
		}
		user := models.User{
			Username:           account.Username,
			Password:           hashed,
			Role:               account.Role,
			MustChangePassword: true,
			CreateAt:           &now,
			UpdateAt:           &now,
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
	}

	logrus.Warn("Seeded default accounts with well-known passwords; they must be changed on first login")
	return nil
}
