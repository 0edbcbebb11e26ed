package websocket

import (
	"encoding/json"
	"log"
	"time"

	"github.com/hustudent/backend/database"
	"github.com/hustudent/backend/models"
)

// MessagePayload is the inbound shape of a chat message sent over the socket.
type MessagePayload struct {
	ChatID      uint                `json:"chat_id"`
	Content     string              `json:"content"`
	Attachments []AttachmentPayload `json:"attachments"`
}

// AttachmentPayload carries attachment metadata; files themselves are
// uploaded out of band.
type AttachmentPayload struct {
	Type     string `json:"type"`
	FileName string `json:"file_name"`
	FileURL  string `json:"file_url"`
	FileSize int64  `json:"file_size"`
}

// SaveMessage persists a chat message with its attachment metadata and
// returns it with the sender preloaded.
func SaveMessage(senderID uint, payload MessagePayload) (models.Message, error) {
	message := models.Message{
		ChatID:   payload.ChatID,
		SenderID: senderID,
		Content:  payload.Content,
	}
	for _, a := range payload.Attachments {
		message.Attachments = append(message.Attachments, models.Attachment{
			Type:     a.Type,
			FileName: a.FileName,
			FileURL:  a.FileURL,
			FileSize: a.FileSize,
		})
	}

	if err := database.DB.Create(&message).Error; err != nil {
		return message, err
	}

	if err := database.DB.Preload("Sender").Preload("Attachments").First(&message, message.ID).Error; err != nil {
		log.Printf("Error loading sender data for message: %v", err)
	}

	return message, nil
}

// HandleIncomingEvent processes an incoming WebSocket event
func HandleIncomingEvent(client *Client, eventBytes []byte) {
	var event Event
	if err := json.Unmarshal(eventBytes, &event); err != nil {
		log.Printf("Error unmarshaling event: %v", err)
		return
	}

	switch event.Type {
	case "join_chat":
		chatID := parseChatID(event.Payload)
		if chatID == 0 {
			return
		}
		if !chatMember(client.userID, chatID) {
			log.Printf("User %d attempted to join chat %d without membership", client.userID, chatID)
			sendErrorToClient(client, "You are not a member of this chat")
			return
		}
		client.joinRoom(chatID)

		// Opening a chat marks it as read
		updateLastReadTime(client.userID, chatID)
	case "leave_chat":
		chatID := parseChatID(event.Payload)
		if chatID == 0 {
			return
		}
		client.leaveRoom(chatID)
	case "message":
		payloadBytes, err := json.Marshal(event.Payload)
		if err != nil {
			log.Printf("Error marshaling payload: %v", err)
			return
		}

		var payload MessagePayload
		if err := json.Unmarshal(payloadBytes, &payload); err != nil {
			log.Printf("Error unmarshaling message payload: %v", err)
			return
		}

		// Sending requires a prior join_chat on this connection
		if !client.inRoom(payload.ChatID) {
			log.Printf("User %d attempted to send message to chat %d without joining",
				client.userID, payload.ChatID)
			return
		}

		savedMessage, err := SaveMessage(client.userID, payload)
		if err != nil {
			log.Printf("Error saving message to database: %v", err)
			return
		}

		// Deliver the saved message to everyone in the room
		responseMsg := Event{
			Type:    "receive_message",
			Payload: savedMessage,
		}

		responseBytes, err := json.Marshal(responseMsg)
		if err != nil {
			log.Printf("Error marshaling response event: %v", err)
			return
		}

		client.hub.broadcastToRoom(payload.ChatID, responseBytes)
	}
}

// chatMember reports whether the user belongs to the group that owns a chat.
func chatMember(userID, chatID uint) bool {
	var chat models.Chat
	if err := database.DB.First(&chat, chatID).Error; err != nil {
		return false
	}

	var member models.GroupMember
	if err := database.DB.Where("group_id = ? AND user_id = ?", chat.GroupID, userID).
		First(&member).Error; err != nil {
		return false
	}
	return true
}

// updateLastReadTime updates the last read timestamp for a user in the group
// that owns a chat
func updateLastReadTime(userID, chatID uint) {
	var chat models.Chat
	if err := database.DB.First(&chat, chatID).Error; err != nil {
		log.Printf("Error finding chat: %v", err)
		return
	}

	var member models.GroupMember
	result := database.DB.Where("group_id = ? AND user_id = ?", chat.GroupID, userID).First(&member)
	if result.Error != nil {
		log.Printf("Error finding group member: %v", result.Error)
		return
	}

	member.LastReadAt = time.Now()
	if err := database.DB.Save(&member).Error; err != nil {
		log.Printf("Error updating last read time: %v", err)
	}
}

func sendErrorToClient(client *Client, errorMessage string) {
	errorMsg := Event{
		Type: "error",
		Payload: map[string]string{
			"message": errorMessage,
		},
	}

	errorBytes, _ := json.Marshal(errorMsg)
	client.send <- errorBytes
}
