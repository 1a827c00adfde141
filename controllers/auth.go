package controllers

import (
	"net/http"

	"time-tracker-api/config"
	"time-tracker-api/middleware"
	"time-tracker-api/services"
	"time-tracker-api/utils"

	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	NetID     string `json:"net_id" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Role      string `json:"role"`
	Group     int    `json:"group"`
}

type LoginRequest struct {
	NetID    string `json:"net_id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token                  string `json:"token"`
	RequiresPasswordChange bool   `json:"requires_password_change"`
	Message                string `json:"message"`
}

type UpdatePasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// Register creates a new account
func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req.NetID = utils.SanitizeInput(req.NetID)
	if !utils.ValidateNetID(req.NetID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid NetID format"})
		return
	}

	svc := services.NewAuthService(config.DB)
	user, err := svc.Register(services.RegisterInput{
		NetID:     req.NetID,
		Password:  req.Password,
		FirstName: utils.SanitizeInput(req.FirstName),
		LastName:  utils.SanitizeInput(req.LastName),
		Role:      req.Role,
		Group:     req.Group,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"net_id":  user.NetID,
	})
}

// Login authenticates a NetID/password pair. The token is returned in the
// body for API clients and mirrored into an HTTP-only cookie for browsers.
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewAuthService(config.DB)
	result, err := svc.Authenticate(req.NetID, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.SetCookie("jwt", result.Token, int(svc.TokenExpiry().Seconds()), "/", "", false, true)

	c.JSON(http.StatusOK, LoginResponse{
		Token:                  result.Token,
		RequiresPasswordChange: result.RequiresPasswordChange,
		Message:                "Login successful",
	})
}

// GetProfile returns the authenticated caller's user record
func GetProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found or not authorized"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdatePassword replaces the caller's password and clears the
// default-password flag
func UpdatePassword(c *gin.Context) {
	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if ok, msg := utils.ValidatePassword(req.Password); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found or not authorized"})
		return
	}

	svc := services.NewAuthService(config.DB)
	if err := svc.UpdatePassword(user.NetID, req.Password); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

// Logout clears the session cookie
func Logout(c *gin.Context) {
	c.SetCookie("jwt", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}
