package controllers

import (
	"net/http"
	"strconv"

	"time-tracker-api/config"
	"time-tracker-api/services"

	"github.com/gin-gonic/gin"
)

type UpdateUserGroupRequest struct {
	Group int `json:"group"`
}

// GetUser returns one user by NetID
func GetUser(c *gin.Context) {
	svc := services.NewUserService(config.DB)
	user, err := svc.ByNetID(c.Param("netId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetAllUsers lists every user (admin only)
func GetAllUsers(c *gin.Context) {
	svc := services.NewUserService(config.DB)
	users, err := svc.All()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if len(users) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No users found"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUsersByGroup lists the members of one group
func GetUsersByGroup(c *gin.Context) {
	groupID, err := strconv.Atoi(c.Param("groupId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group id"})
		return
	}

	svc := services.NewUserService(config.DB)
	users, err := svc.ByGroup(groupID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if len(users) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No users found in this group"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetGroups returns every assigned group with its members
func GetGroups(c *gin.Context) {
	svc := services.NewUserService(config.DB)
	groups, err := svc.GroupMap()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

// UpdateUserGroup reassigns a user's group (admin only)
func UpdateUserGroup(c *gin.Context) {
	var req UpdateUserGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewUserService(config.DB)
	if err := svc.UpdateGroup(c.Param("netId"), req.Group); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User group updated successfully"})
}

// RemoveUserFromGroup sets a user's group back to 0 (admin only)
func RemoveUserFromGroup(c *gin.Context) {
	svc := services.NewUserService(config.DB)
	if err := svc.UpdateGroup(c.Param("netId"), 0); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User removed from group successfully"})
}
