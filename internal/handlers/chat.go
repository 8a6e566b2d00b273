package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Yash-g2310/l-and-t-prototype/db"
	"github.com/Yash-g2310/l-and-t-prototype/internal/models"
	"github.com/Yash-g2310/l-and-t-prototype/internal/services"
	"github.com/Yash-g2310/l-and-t-prototype/internal/utils"
	"github.com/gin-gonic/gin"
)

var chatService = services.NewChatService(nil, 0)

// InitChatService swaps in the configured chat service. Called once at startup.
func InitChatService(service *services.ChatService) {
	chatService = service
}

type PostMessageRequest struct {
	Content  string `json:"content" binding:"required"`
	IsUpdate bool   `json:"is_update"`
}

type MessageResponse struct {
	ID           uint   `json:"id"`
	ChatRoomID   uint   `json:"chat_room_id"`
	SenderID     uint   `json:"sender_id"`
	SenderName   string `json:"sender_name,omitempty"`
	Content      string `json:"content"`
	IsAIResponse bool   `json:"is_ai_response"`
	IsUpdate     bool   `json:"is_update"`
	CreatedAt    string `json:"created_at"`
}

type ChatRoomResponse struct {
	ID        uint   `json:"id"`
	ProjectID uint   `json:"project_id"`
	CreatedAt string `json:"created_at"`
}

func messageResponse(message models.Message, senderName string) MessageResponse {
	return MessageResponse{
		ID:           message.ID,
		ChatRoomID:   message.ChatRoomID,
		SenderID:     message.SenderID,
		SenderName:   senderName,
		Content:      message.Content,
		IsAIResponse: message.IsAIResponse,
		IsUpdate:     message.IsUpdate,
		CreatedAt:    message.CreatedAt.Format(time.RFC3339Nano),
	}
}

// ListChatRooms returns the rooms whose projects the caller may read.
func ListChatRooms(ctx *gin.Context) {
	user, err := currentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	rooms, err := chatService.VisibleRooms(db.DB, user)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve chat rooms"})
		return
	}

	response := make([]ChatRoomResponse, 0, len(rooms))

	for _, room := range rooms {
		response = append(response, ChatRoomResponse{
			ID:        room.ID,
			ProjectID: room.ProjectID,
			CreatedAt: room.CreatedAt.Format(time.RFC3339),
		})
	}

	ctx.JSON(http.StatusOK, response)
}

// ListMessages returns a room's history, ascending. Non-members get an empty
// list rather than an error.
func ListMessages(ctx *gin.Context) {
	user, err := currentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	roomID, err := utils.GetRoomID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	messages, err := chatService.ListMessages(db.DB, user, uint(roomID))

	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Chat room not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve messages"})
		return
	}

	senderNames := make(map[uint]string)
	response := make([]MessageResponse, 0, len(messages))

	for _, message := range messages {
		name, cached := senderNames[message.SenderID]
		if !cached {
			var sender models.User
			if err := db.DB.First(&sender, message.SenderID).Error; err == nil {
				name = sender.Name
			}
			senderNames[message.SenderID] = name
		}
		response = append(response, messageResponse(message, name))
	}

	ctx.JSON(http.StatusOK, response)
}

// PostMessage stores the caller's message plus the generated reply and
// broadcasts both to the room's websocket clients.
func PostMessage(ctx *gin.Context) {
	user, err := currentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	roomID, err := utils.GetRoomID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body PostMessageRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Message content is required"})
		return
	}

	userMessage, aiMessage, err := chatService.PostMessage(db.DB, user, uint(roomID), body.Content, body.IsUpdate)

	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Chat room not found"})
			return
		}
		if errors.Is(err, services.ErrForbidden) {
			ctx.JSON(http.StatusForbidden, gin.H{"error": "You are not a member of this project"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post message"})
		return
	}

	userResp := messageResponse(userMessage, user.Name)
	aiResp := messageResponse(aiMessage, user.Name)

	BroadcastMessage(userMessage.ChatRoomID, userResp)
	BroadcastMessage(aiMessage.ChatRoomID, aiResp)

	ctx.JSON(http.StatusCreated, gin.H{
		"message":     userResp,
		"ai_response": aiResp,
	})
}
