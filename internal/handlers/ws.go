package handlers

import (
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/Yash-g2310/l-and-t-prototype/db"
	"github.com/Yash-g2310/l-and-t-prototype/internal/authz"
	"github.com/Yash-g2310/l-and-t-prototype/internal/models"
	"github.com/Yash-g2310/l-and-t-prototype/internal/types"
	"github.com/Yash-g2310/l-and-t-prototype/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"
)

var (
	roomClients   = make(map[uint]map[*websocket.Conn]bool)
	roomClientsMu sync.RWMutex
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// BroadcastMessage pushes a newly stored message to every client connected to
// the room's live feed.
func BroadcastMessage(roomID uint, message MessageResponse) {
	roomClientsMu.RLock()
	clients, exists := roomClients[roomID]
	if !exists || len(clients) == 0 {
		roomClientsMu.RUnlock()
		return
	}

	clientsCopy := make([]*websocket.Conn, 0, len(clients))
	for conn := range clients {
		clientsCopy = append(clientsCopy, conn)
	}
	roomClientsMu.RUnlock()

	for _, conn := range clientsCopy {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			log.Printf("Failed to set write deadline for broadcast: %v", err)
			continue
		}

		err := conn.WriteJSON(gin.H{
			"type":    "message",
			"payload": message,
		})

		if err != nil {
			log.Printf("Failed to broadcast message to client: %v", err)
			roomClientsMu.Lock()
			if clients, exists := roomClients[roomID]; exists {
				delete(clients, conn)
				if len(clients) == 0 {
					delete(roomClients, roomID)
				}
			}
			roomClientsMu.Unlock()
			conn.Close()
		}
	}
}

// ChatWebSocket upgrades a member's connection to a live feed of the room's
// messages. Non-members are rejected before the upgrade.
func ChatWebSocket(c *gin.Context) {
	user, err := currentUser(c)

	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	roomID, err := utils.GetRoomID(c)

	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var room models.ChatRoom

	if err := db.DB.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Chat room not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve chat room"})
		}
		return
	}

	var project models.Project

	if err := db.DB.First(&project, room.ProjectID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		return
	}

	readable, err := authz.CanRead(db.DB, user, project)

	if err != nil || !readable {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not a member of this project"})
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, allowed := range types.AllowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("Failed to set initial read deadline: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline in pong handler: %v", err)
		}
		return nil
	})

	roomClientsMu.Lock()
	if roomClients[room.ID] == nil {
		roomClients[room.ID] = make(map[*websocket.Conn]bool)
	}
	roomClients[room.ID][conn] = true
	roomClientsMu.Unlock()

	defer func() {
		roomClientsMu.Lock()

		if clients, exists := roomClients[room.ID]; exists {
			delete(clients, conn)

			if len(clients) == 0 {
				delete(roomClients, room.ID)
			}
		}

		roomClientsMu.Unlock()
		conn.Close()

		log.Printf("WebSocket connection closed for chat room %d", room.ID)
	}()

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		log.Printf("Failed to set write deadline for welcome message: %v", err)
		return
	}

	err = conn.WriteJSON(gin.H{
		"type":    "connected",
		"message": "WebSocket connection established",
		"room_id": room.ID,
	})

	if err != nil {
		log.Printf("Failed to send welcome message: %v", err)
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	go func() {
		for range ticker.C {
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Printf("Failed to set write deadline for room %d: %v", room.ID, err)
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("Ping failed for room %d: %v", room.ID, err)
				return
			}
		}
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline for room %d: %v", room.ID, err)
			break
		}

		_, _, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error for room %d: %v", room.ID, err)
			}
			break
		}
	}
}
