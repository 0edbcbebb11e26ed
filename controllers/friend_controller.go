package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hustudent/backend/database"
	"github.com/hustudent/backend/models"
	"github.com/hustudent/backend/websocket"
)

type SendFriendRequestInput struct {
	Username string `json:"username" binding:"required"`
}

type RespondToFriendRequestInput struct {
	RequestID uint   `json:"request_id" binding:"required"`
	Accept    *bool  `json:"accept" binding:"required"`
	Message   string `json:"message"`
}

// SendFriendRequest creates a pending friend request to another user
func SendFriendRequest(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input SendFriendRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var receiver models.User
	if err := database.DB.Where("username = ?", input.Username).First(&receiver).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if receiver.ID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot send a friend request to yourself"})
		return
	}

	// A pending or accepted request in either direction blocks a new one
	var existing models.FriendRequest
	if err := database.DB.Where(
		"((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)) AND status IN ('pending', 'accepted')",
		userID, receiver.ID, receiver.ID, userID).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A friend request already exists between you"})
		return
	}

	request := models.FriendRequest{
		SenderID:   userID,
		ReceiverID: receiver.ID,
		Status:     "pending",
	}

	if err := database.DB.Create(&request).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create friend request"})
		return
	}

	database.DB.Preload("Sender").First(&request, request.ID)

	// Persist a notification and push it if the receiver is online
	notifyUser(receiver.ID, "friend_request",
		fmt.Sprintf("%s sent you a friend request", request.Sender.Username))

	c.JSON(http.StatusCreated, gin.H{
		"message": "Friend request sent",
		"request": request,
	})
}

// GetPendingFriendRequests lists requests awaiting the caller's response
func GetPendingFriendRequests(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var requests []models.FriendRequest
	if err := database.DB.Where("receiver_id = ? AND status = 'pending'", userID).
		Preload("Sender").
		Find(&requests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch friend requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// RespondToFriendRequest accepts or rejects a pending request
func RespondToFriendRequest(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input RespondToFriendRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var request models.FriendRequest
	if err := database.DB.Where("id = ? AND receiver_id = ? AND status = 'pending'",
		input.RequestID, userID).First(&request).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Friend request not found or already processed"})
		return
	}

	if *input.Accept {
		request.Status = "accepted"
	} else {
		request.Status = "rejected"
	}

	if err := database.DB.Save(&request).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update friend request"})
		return
	}

	if request.Status == "accepted" {
		var receiver models.User
		database.DB.First(&receiver, userID)
		notifyUser(request.SenderID, "friend_accepted",
			fmt.Sprintf("%s accepted your friend request", receiver.Username))
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Friend request " + request.Status,
		"request": request,
	})
}

// GetFriends lists users connected to the caller by an accepted request
func GetFriends(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var requests []models.FriendRequest
	if err := database.DB.Where("(sender_id = ? OR receiver_id = ?) AND status = 'accepted'",
		userID, userID).Find(&requests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch friends"})
		return
	}

	friendIDs := make([]uint, 0, len(requests))
	for _, r := range requests {
		if r.SenderID == userID {
			friendIDs = append(friendIDs, r.ReceiverID)
		} else {
			friendIDs = append(friendIDs, r.SenderID)
		}
	}

	friends := []models.User{}
	if len(friendIDs) > 0 {
		if err := database.DB.Where("id IN ?", friendIDs).Find(&friends).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch friends"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"friends": friends})
}

// notifyUser stores a notification row and pushes it over the hub. The row
// is the durable copy; the push is best effort.
func notifyUser(userID uint, notifType, body string) {
	notification := models.Notification{
		UserID: userID,
		Type:   notifType,
		Body:   body,
	}
	if err := database.DB.Create(&notification).Error; err != nil {
		return
	}

	websocket.NotifyUser(userID, notification)
}
