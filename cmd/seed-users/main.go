// Operational helper: seeds the default accounts on a fresh database, or
// resets one account's credential.
// cmd/seed-users/main.go
package main

import (
	"flag"
	"log"

	"startup-dashboard-api/config"
	"startup-dashboard-api/models"
	"startup-dashboard-api/services"
	"startup-dashboard-api/utils"

	"github.com/joho/godotenv"
)

func main() {
	username := flag.String("reset", "", "username whose password should be reset")
	password := flag.String("password", "", "new password for -reset")
	flag.Parse()

	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize database
	config.InitDB()

	if err := models.Migrate(config.DB); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	if *username == "" {
		if err := services.SeedDefaultUsers(config.DB); err != nil {
			log.Fatal("Failed to seed default users:", err)
		}
		log.Println("Seeding completed")
		return
	}

	if !utils.ValidateUsername(*username) {
		log.Fatalf("Invalid username: %s", *username)
	}
	if ok, msg := utils.ValidatePassword(*password); !ok {
		log.Fatal(msg)
	}

	hashed, err := utils.HashPassword(*password)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	// A reset credential is temporary, so the user must change it again.
	result := config.DB.Model(&models.User{}).
		Where("username = ?", *username).
		Updates(map[string]interface{}{
			"password_hash":        hashed,
			"must_change_password": true,
		})
	if result.Error != nil {
		log.Fatal("Failed to reset password:", result.Error)
	}
	if result.RowsAffected == 0 {
		log.Fatalf("No such user: %s", *username)
	}

	log.Printf("Password reset for %s\n", *username)
}
