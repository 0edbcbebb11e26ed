package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hustudent/backend/database"
	"github.com/hustudent/backend/models"
)

type CreateGroupInput struct {
	Name        string `json:"name" binding:"required" example:"Linear Algebra Crew"`
	Subject     string `json:"subject" example:"MATH201"`
	Description string `json:"description"`
	UserIDs     []uint `json:"user_ids"`
}

type UpdateGroupInput struct {
	Name        string `json:"name" example:"Updated Group Name"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
}

// GetGroups godoc
// @Summary Get all study groups for the authenticated user
// @Description Returns all study groups the user is a member of, with unread chat counts
// @Tags groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "List of groups"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/groups [get]
func GetGroups(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var memberships []models.GroupMember
	if err := database.DB.Where("user_id = ?", userID).Find(&memberships).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch group memberships"})
		return
	}

	groupIDs := make([]uint, 0, len(memberships))
	lastReadMap := make(map[uint]models.GroupMember)
	for _, m := range memberships {
		groupIDs = append(groupIDs, m.GroupID)
		lastReadMap[m.GroupID] = m
	}

	var groups []models.Group
	if err := database.DB.Preload("Users").Where("id IN ?", groupIDs).Find(&groups).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch groups"})
		return
	}

	// Build the response with the group chat, lastReadAt and unreadCount
	response := []gin.H{}
	for _, group := range groups {
		lastRead := lastReadMap[group.ID].LastReadAt

		var chat models.Chat
		database.DB.Where("group_id = ?", group.ID).First(&chat)

		var unreadCount int64
		database.DB.Model(&models.Message{}).
			Where("chat_id = ? AND created_at > ?", chat.ID, lastRead).
			Count(&unreadCount)

		response = append(response, gin.H{
			"group":       group,
			"chat_id":     chat.ID,
			"lastReadAt":  lastRead,
			"unreadCount": unreadCount,
		})
	}

	c.JSON(http.StatusOK, gin.H{"groups": response})
}

// CreateGroup godoc
// @Summary Create a new study group
// @Description Creates a study group, its chat, and adds the creator as owner
// @Tags groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param group body CreateGroupInput true "Group Creation"
// @Success 201 {object} map[string]interface{} "Group created successfully"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/groups [post]
func CreateGroup(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input CreateGroupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group := models.Group{
		Name:        input.Name,
		Subject:     input.Subject,
		Description: input.Description,
		CreatedBy:   userID,
	}

	if err := database.DB.Create(&group).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create group"})
		return
	}

	// Every group gets its chat
	chat := models.Chat{GroupID: group.ID}
	if err := database.DB.Create(&chat).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create group chat"})
		return
	}

	// Add creator as owner
	member := models.GroupMember{
		GroupID:    group.ID,
		UserID:     userID,
		Role:       "owner",
		LastReadAt: time.Now(),
	}
	if err := database.DB.Create(&member).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add user to group"})
		return
	}

	// Add other users if provided
	for _, id := range input.UserIDs {
		if id == userID {
			continue // Skip creator as they're already added
		}

		member := models.GroupMember{
			GroupID:    group.ID,
			UserID:     id,
			LastReadAt: time.Now(),
		}
		database.DB.Create(&member)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Group created successfully",
		"group":   group,
		"chat_id": chat.ID,
	})
}

// GetGroup godoc
// @Summary Get details of a specific group
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Success 200 {object} map[string]interface{} "Group details"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Group not found"
// @Router /api/groups/{id} [get]
func GetGroup(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	var member models.GroupMember
	if err := database.DB.Where("group_id = ? AND user_id = ?", groupID, userID).First(&member).Error; err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not a member of this group"})
		return
	}

	var group models.Group
	if err := database.DB.Preload("Users").First(&group, groupID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	var chat models.Chat
	database.DB.Where("group_id = ?", group.ID).First(&chat)

	var unreadCount int64
	database.DB.Model(&models.Message{}).
		Where("chat_id = ? AND created_at > ?", chat.ID, member.LastReadAt).
		Count(&unreadCount)

	c.JSON(http.StatusOK, gin.H{
		"group":       group,
		"chat_id":     chat.ID,
		"lastReadAt":  member.LastReadAt,
		"unreadCount": unreadCount,
	})
}

// UpdateGroup godoc
// @Summary Update a group's details
// @Tags groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Param group body UpdateGroupInput true "Group Update"
// @Success 200 {object} map[string]string "Group updated successfully"
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /api/groups/{id} [put]
func UpdateGroup(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	var member models.GroupMember
	if err := database.DB.Where("group_id = ? AND user_id = ?", groupID, userID).First(&member).Error; err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not a member of this group"})
		return
	}

	var input UpdateGroupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if input.Name != "" {
		updates["name"] = input.Name
	}
	if input.Subject != "" {
		updates["subject"] = input.Subject
	}
	if input.Description != "" {
		updates["description"] = input.Description
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&models.Group{}).Where("id = ?", groupID).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update group"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Group updated successfully"})
}

// DeleteGroup godoc
// @Summary Delete a group
// @Description Deletes a group, its chat, messages, sessions and memberships
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Success 200 {object} map[string]string "Group deleted successfully"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Group not found"
// @Router /api/groups/{id} [delete]
func DeleteGroup(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	var group models.Group
	if err := database.DB.First(&group, groupID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	if group.CreatedBy != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the group creator can delete the group"})
		return
	}

	// Delete memberships
	if err := database.DB.Where("group_id = ?", groupID).Delete(&models.GroupMember{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete group members"})
		return
	}

	// Delete the chat and its messages
	var chat models.Chat
	if err := database.DB.Where("group_id = ?", groupID).First(&chat).Error; err == nil {
		database.DB.Where("chat_id = ?", chat.ID).Delete(&models.Message{})
		database.DB.Delete(&chat)
	}

	// Delete sessions
	database.DB.Where("group_id = ?", groupID).Delete(&models.StudySession{})

	if err := database.DB.Delete(&group).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete group"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Group deleted successfully"})
}

// JoinGroup godoc
// @Summary Join a study group
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Success 200 {object} map[string]string "Joined group"
// @Failure 404 {object} map[string]string "Group not found"
// @Router /api/groups/{id}/join [post]
func JoinGroup(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	var group models.Group
	if err := database.DB.First(&group, groupID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	var existing models.GroupMember
	if err := database.DB.Where("group_id = ? AND user_id = ?", groupID, userID).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You are already a member of this group"})
		return
	}

	member := models.GroupMember{
		GroupID:    uint(groupID),
		UserID:     userID,
		LastReadAt: time.Now(),
	}
	if err := database.DB.Create(&member).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join group"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Joined group successfully"})
}

// LeaveGroup godoc
// @Summary Leave a study group
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Success 200 {object} map[string]string "Left group"
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /api/groups/{id}/leave [post]
func LeaveGroup(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	var group models.Group
	if err := database.DB.First(&group, groupID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	if group.CreatedBy == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "The group creator cannot leave; delete the group instead"})
		return
	}

	if err := database.DB.Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&models.GroupMember{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to leave group"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Left group successfully"})
}

// GetUnreadCount godoc
// @Summary Get unread chat message count for a group
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Success 200 {object} map[string]int64 "Unread message count"
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /api/groups/{id}/unread [get]
func GetUnreadCount(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	groupID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID format"})
		return
	}

	var member models.GroupMember
	if err := database.DB.Where("group_id = ? AND user_id = ?", groupID, userID).
		First(&member).Error; err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not a member of this group"})
		return
	}

	var chat models.Chat
	if err := database.DB.Where("group_id = ?", groupID).First(&chat).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group chat not found"})
		return
	}

	var unreadCount int64
	if err := database.DB.Model(&models.Message{}).
		Where("chat_id = ? AND created_at > ?", chat.ID, member.LastReadAt).
		Count(&unreadCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count unread messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread_count": unreadCount})
}
