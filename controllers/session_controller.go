package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hustudent/backend/database"
	"github.com/hustudent/backend/models"
)

type CreateSessionInput struct {
	Title    string    `json:"title" binding:"required" example:"Midterm review"`
	Location string    `json:"location" example:"Library room 3B"`
	StartsAt time.Time `json:"starts_at" binding:"required"`
	EndsAt   time.Time `json:"ends_at"`
}

// CreateSession godoc
// @Summary Schedule a study session for a group
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Param session body CreateSessionInput true "Session Creation"
// @Success 201 {object} map[string]interface{} "Session created"
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /api/groups/{id}/sessions [post]
func CreateSession(c *gin.Context) {
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

	var input CreateSessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session := models.StudySession{
		GroupID:   uint(groupID),
		Title:     input.Title,
		Location:  input.Location,
		StartsAt:  input.StartsAt,
		EndsAt:    input.EndsAt,
		CreatedBy: userID,
	}

	if err := database.DB.Create(&session).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Session created successfully",
		"session": session,
	})
}

// GetSessions godoc
// @Summary List study sessions of a group
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Success 200 {object} map[string]interface{} "List of sessions"
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /api/groups/{id}/sessions [get]
func GetSessions(c *gin.Context) {
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

	var sessions []models.StudySession
	if err := database.DB.Where("group_id = ?", groupID).
		Order("starts_at ASC").
		Find(&sessions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sessions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

// GetSession godoc
// @Summary Get a study session
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Success 200 {object} map[string]interface{} "Session details"
// @Failure 404 {object} map[string]string "Session not found"
// @Router /api/sessions/{id} [get]
func GetSession(c *gin.Context) {
	sessionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session ID"})
		return
	}

	var session models.StudySession
	if err := database.DB.First(&session, sessionID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": session})
}
