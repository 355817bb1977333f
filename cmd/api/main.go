package main

import (
	"os"

	"startup-dashboard-api/config"
	"startup-dashboard-api/models"
	"startup-dashboard-api/routes"
	"startup-dashboard-api/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	// Initialize logging
	logFile := config.InitLogging()
	if logFile != nil {
		defer logFile.Close()
	}

	// Initialize database and cache
	config.InitDB()
	config.InitRedis()

	// Create or update the schema
	if err := models.Migrate(config.DB); err != nil {
		logrus.Fatalf("Failed to migrate database: %v", err)
	}

	// Seed the default accounts on a fresh install
	if err := services.SeedDefaultUsers(config.DB); err != nil {
		logrus.Fatalf("Failed to seed default users: %v", err)
	}

	// Set Gin mode
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.New()

	// Add logging middleware
	router.Use(gin.Logger())

	// Add recovery middleware
	router.Use(gin.Recovery())

	// Add security headers middleware
	router.Use(func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy", "default-src 'self'")
		c.Next()
	})

	// Setup routes
	routes.SetupRoutes(router)

	// Create upload directory if not exists
	uploadPath := os.Getenv("UPLOAD_PATH")
	if uploadPath == "" {
		uploadPath = "./uploads"
	}
	if err := os.MkdirAll(uploadPath, os.ModePerm); err != nil {
		logrus.Warnf("Failed to create upload directory: %v", err)
	}

	// Start server
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	logrus.Infof("Server starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}
