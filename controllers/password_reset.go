package controllers

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"startup-dashboard-api/config"
	"startup-dashboard-api/models"
	"startup-dashboard-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const passwordResetTokenType = "password_reset"

var (
	passwordResetTokenGenerator = generateResetToken
	sendMailFunc                = config.SendMail
)

type forgotPasswordRequest struct {
	Username string `json:"username" binding:"required"`
}

type resetPasswordRequest struct {
	Token           string `json:"token" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// ForgotPassword issues a reset token and emails it to the account's address
// on file. The outward response never reveals whether the username exists.
func ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	response := gin.H{"message": "If the account exists and has an email on file, a reset link has been sent"}

	// A malformed username cannot match an account; answer uniformly.
	if !utils.ValidateUsername(req.Username) {
		c.JSON(http.StatusOK, response)
		return
	}

	var user models.User
	if err := config.DB.Where("username = ?", utils.SanitizeInput(req.Username)).First(&user).Error; err != nil {
		c.JSON(http.StatusOK, response)
		return
	}
	if user.Email == nil || *user.Email == "" {
		c.JSON(http.StatusOK, response)
		return
	}

	token, err := passwordResetTokenGenerator()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reset token"})
		return
	}

	now := time.Now().UTC()

	// Retire any previous tokens before storing the new one.
	if err := config.DB.Model(&models.UserToken{}).
		Where("user_id = ? AND token_type = ? AND is_revoked = ?", user.UserID, passwordResetTokenType, false).
		Updates(map[string]interface{}{"is_revoked": true, "updated_at": now, "expires_at": now}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reset token"})
		return
	}

	record := models.UserToken{
		UserID:    user.UserID,
		TokenHash: hashResetToken(token),
		TokenType: passwordResetTokenType,
		ExpiresAt: now.Add(30 * time.Minute),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := config.DB.Create(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reset token"})
		return
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", appBaseURL(), url.QueryEscape(token))
	body := fmt.Sprintf(
		"<p>A password reset was requested for your dashboard account.</p>"+
			"<p><a href=%q>Reset your password</a> (valid for 30 minutes).</p>"+
			"<p>If you did not request this, ignore this message.</p>", resetURL)

	if err := sendMailFunc([]string{*user.Email}, "Password reset", body); err != nil {
		logrus.Warnf("failed to send password reset mail for %s: %v", user.Username, err)
	}

	c.JSON(http.StatusOK, response)
}

// ResetPassword consumes a reset token and sets the new password.
func ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	if req.NewPassword != req.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Passwords do not match"})
		return
	}
	if ok, msg := utils.ValidatePassword(req.NewPassword); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	now := time.Now().UTC()

	var token models.UserToken
	err := config.DB.Where(
		"token_hash = ? AND token_type = ? AND is_revoked = ? AND expires_at > ?",
		hashResetToken(req.Token), passwordResetTokenType, false, now,
	).First(&token).Error
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired reset token"})
		return
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
		return
	}

	err = config.DB.Model(&models.User{}).
		Where("user_id = ?", token.UserID).
		Updates(map[string]interface{}{
			"password_hash":        hashed,
			"must_change_password": false,
			"update_at":            now,
		}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
		return
	}

	if err := config.DB.Model(&models.UserToken{}).
		Where("token_id = ?", token.TokenID).
		Updates(map[string]interface{}{"is_revoked": true, "updated_at": now, "expires_at": now}).Error; err != nil {
		logrus.Warnf("failed to revoke reset token %d: %v", token.TokenID, err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
}

func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func appBaseURL() string {
	if base := os.Getenv("APP_BASE_URL"); base != "" {
		return base
	}
	return "http://localhost:8080"
}
