package controllers

import (
	"net/http"
	"time"

	"PlannerGo/config"
	"PlannerGo/models"
	"PlannerGo/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthController struct{}

// Login signs a user in by email, creating the account on first use, and
// issues a JWT.
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	err := config.DB.Where("email = ?", req.Email).First(&user).Error
	if err == gorm.ErrRecordNotFound {
		user = models.User{
			ID:       utils.GenerateID(),
			Email:    req.Email,
			Username: req.Username,
		}
		if err := config.DB.Create(&user).Error; err != nil {
			config.Logger.Errorw("failed to create user", "error", err, "email", req.Email)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
			return
		}
	} else if err != nil {
		config.Logger.Errorw("user lookup failed", "error", err, "email", req.Email)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user lookup failed"})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&user).Update("last_login", now).Error; err != nil {
		config.Logger.Warnw("failed to record last login", "error", err, "uid", user.ID)
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		config.Logger.Errorw("failed to issue token", "error", err, "uid", user.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{Token: token, User: user})
}
