package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hustudent/backend/database"
	"github.com/hustudent/backend/models"
	"github.com/hustudent/backend/websocket"
)

type CreateMessageInput struct {
	ChatID      uint                          `json:"chat_id" binding:"required" example:"1"`
	Content     string                        `json:"content" example:"Anyone up for the library tonight?"`
	Attachments []websocket.AttachmentPayload `json:"attachments"`
}

// GetMessages godoc
// @Summary Get messages for a chat
// @Description Returns a page of messages for a chat, oldest first
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param chat_id query int true "Chat ID"
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size (default 50)"
// @Success 200 {object} map[string]interface{} "List of messages"
// @Failure 400 {object} map[string]string "Invalid chat ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/messages [get]
func GetMessages(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	chatID, err := strconv.ParseUint(c.Query("chat_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid chat ID"})
		return
	}

	if !requireChatMember(c, userID, uint(chatID)) {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit < 1 || limit > 200 {
		limit = 50
	}

	var total int64
	database.DB.Model(&models.Message{}).Where("chat_id = ?", chatID).Count(&total)

	var messages []models.Message
	if err := database.DB.Where("chat_id = ?", chatID).
		Order("created_at ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Preload("Sender").
		Preload("Attachments").
		Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": messages,
		"page":     page,
		"limit":    limit,
		"total":    total,
	})
}

// CreateMessage godoc
// @Summary Create a new message
// @Description Persists a chat message and pushes it to the chat room. This is the REST fallback path; the socket stays optional.
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param message body CreateMessageInput true "Message Creation"
// @Success 201 {object} map[string]interface{} "Message sent successfully"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/messages [post]
func CreateMessage(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input CreateMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Content == "" && len(input.Attachments) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message needs content or an attachment"})
		return
	}

	if !requireChatMember(c, userID, input.ChatID) {
		return
	}

	message, err := websocket.SaveMessage(userID, websocket.MessagePayload{
		ChatID:      input.ChatID,
		Content:     input.Content,
		Attachments: input.Attachments,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create message"})
		return
	}

	// Push to everyone currently viewing the chat
	websocket.BroadcastToRoom(input.ChatID, "receive_message", message)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Message sent successfully",
		"data":    message,
	})
}

// requireChatMember verifies the user belongs to the group owning the chat,
// writing the error response itself when not.
func requireChatMember(c *gin.Context, userID, chatID uint) bool {
	var chat models.Chat
	if err := database.DB.First(&chat, chatID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Chat not found"})
		return false
	}

	var member models.GroupMember
	if err := database.DB.Where("group_id = ? AND user_id = ?", chat.GroupID, userID).
		First(&member).Error; err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have access to this chat"})
		return false
	}
	return true
}
