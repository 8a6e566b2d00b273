package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Yash-g2310/l-and-t-prototype/internal/authz"
	"github.com/Yash-g2310/l-and-t-prototype/internal/logger"
	"github.com/Yash-g2310/l-and-t-prototype/internal/models"
	"gorm.io/gorm"
)

// ApologyMessage is stored as the AI reply when generation fails. The user's
// own message is never rolled back over a generator failure.
const ApologyMessage = "Sorry, I couldn't process your request due to an error. Please try again later."

type ChatService struct {
	responder Responder
	timeout   time.Duration
}

func NewChatService(responder Responder, timeout time.Duration) *ChatService {
	if responder == nil {
		responder = StaticResponder{}
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &ChatService{responder: responder, timeout: timeout}
}

// VisibleRooms returns the chat rooms whose parent project the user may read.
func (s *ChatService) VisibleRooms(conn *gorm.DB, user models.User) ([]models.ChatRoom, error) {
	var rooms []models.ChatRoom

	err := conn.Where("project_id IN (?)",
		authz.VisibleProjects(conn.Session(&gorm.Session{NewDB: true}).Model(&models.Project{}).Select("id"), user)).
		Find(&rooms).Error

	return rooms, err
}

// ListMessages returns the room's history in ascending created_at order. A
// caller without read access to the parent project gets an empty slice, not
// an error.
func (s *ChatService) ListMessages(conn *gorm.DB, user models.User, roomID uint) ([]models.Message, error) {
	room, project, err := loadRoom(conn, roomID)
	if err != nil {
		return nil, err
	}

	ok, err := authz.CanRead(conn, user, project)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.Message{}, nil
	}

	var messages []models.Message

	err = conn.Where("chat_room_id = ?", room.ID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error

	return messages, err
}

// PostMessage stores the user's message, asks the responder for a reply and
// stores that reply as a second message in the same room. The AI row keeps
// the sender ID of the triggering user and is flagged is_ai_response. Only
// the project supervisor may mark a message as an update; the flag is
// silently dropped for anyone else.
func (s *ChatService) PostMessage(conn *gorm.DB, user models.User, roomID uint, content string, isUpdate bool) (models.Message, models.Message, error) {
	room, project, err := loadRoom(conn, roomID)
	if err != nil {
		return models.Message{}, models.Message{}, err
	}

	ok, err := authz.CanRead(conn, user, project)
	if err != nil {
		return models.Message{}, models.Message{}, err
	}
	if !ok {
		return models.Message{}, models.Message{}, ErrForbidden
	}

	if isUpdate && !authz.CanWrite(user, project) {
		isUpdate = false
	}

	userMessage := models.Message{
		ChatRoomID: room.ID,
		SenderID:   user.ID,
		Content:    content,
		IsUpdate:   isUpdate,
	}

	if err := conn.Create(&userMessage).Error; err != nil {
		return models.Message{}, models.Message{}, err
	}

	reply := s.generateReply(conn, content, project)

	aiMessage := models.Message{
		ChatRoomID:   room.ID,
		SenderID:     user.ID,
		Content:      reply,
		IsAIResponse: true,
	}

	if err := conn.Create(&aiMessage).Error; err != nil {
		return models.Message{}, models.Message{}, err
	}

	return userMessage, aiMessage, nil
}

func (s *ChatService) generateReply(conn *gorm.DB, content string, project models.Project) string {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	reply, err := s.responder.Generate(ctx, content, BuildProjectContext(conn, project))

	if err != nil {
		logger.Warn("response generation failed", "project_id", project.ID, "error", err)
		return ApologyMessage
	}

	return reply
}

// BuildProjectContext assembles the context string handed to the responder
// from the project's descriptive fields plus timeline and open-risk summaries.
func BuildProjectContext(conn *gorm.DB, project models.Project) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Project: %s\n", project.Title)
	fmt.Fprintf(&b, "Description: %s\n", project.Description)
	fmt.Fprintf(&b, "Status: %s\n", project.Status)
	if project.Location != "" {
		fmt.Fprintf(&b, "Location: %s\n", project.Location)
	}
	fmt.Fprintf(&b, "Schedule: %s to %s\n",
		project.StartDate.Format("2006-01-02"), project.EndDate.Format("2006-01-02"))
	if project.RiskAssessment != "" {
		fmt.Fprintf(&b, "Risk assessment: %s\n", project.RiskAssessment)
	}

	var events []models.ProjectTimeline
	if err := conn.Where("project_id = ?", project.ID).
		Order("start_date ASC").Limit(10).Find(&events).Error; err == nil {
		for _, event := range events {
			fmt.Fprintf(&b, "Timeline: %s (%d%% complete, %s to %s)\n",
				event.Title, event.CompletionPercentage,
				event.StartDate.Format("2006-01-02"), event.EndDate.Format("2006-01-02"))
		}
	}

	var risks []models.RiskAnalysis
	if err := conn.Where("project_id = ? AND is_resolved = ?", project.ID, false).
		Order("impact DESC").Limit(10).Find(&risks).Error; err == nil {
		for _, risk := range risks {
			fmt.Fprintf(&b, "Open risk: %s (%s, %s)\n", risk.Title, risk.RiskLevel, risk.RiskCategory)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func loadRoom(conn *gorm.DB, roomID uint) (models.ChatRoom, models.Project, error) {
	var room models.ChatRoom

	if err := conn.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ChatRoom{}, models.Project{}, ErrNotFound
		}
		return models.ChatRoom{}, models.Project{}, err
	}

	var project models.Project

	if err := conn.First(&project, room.ProjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ChatRoom{}, models.Project{}, ErrNotFound
		}
		return models.ChatRoom{}, models.Project{}, err
	}

	return room, project, nil
}
