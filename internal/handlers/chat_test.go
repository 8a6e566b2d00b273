package handlers_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/Yash-g2310/l-and-t-prototype/internal/types"
	"github.com/gin-gonic/gin"
)

type messageJSON struct {
	ID           uint   `json:"id"`
	ChatRoomID   uint   `json:"chat_room_id"`
	SenderID     uint   `json:"sender_id"`
	Content      string `json:"content"`
	IsAIResponse bool   `json:"is_ai_response"`
	IsUpdate     bool   `json:"is_update"`
	CreatedAt    string `json:"created_at"`
}

type postResponse struct {
	Message    messageJSON `json:"message"`
	AIResponse messageJSON `json:"ai_response"`
}

// chatSetup creates a supervisor with a project, an assigned worker and an
// unassigned stranger, returning the room ID and everyone's tokens.
func chatSetup(t *testing.T) (r *gin.Engine, roomID uint, supToken, workerToken, strangerToken string) {
	t.Helper()

	r = setupServer(t)
	_, supToken = createUser(t, "sup", types.RoleSupervisor)
	worker, wToken := createUser(t, "worker", types.RoleWorker)
	_, sToken := createUser(t, "stranger", types.RoleWorker)

	project := createProject(t, r, supToken, "Bridge Retrofit")
	projectID := uint(project["id"].(float64))
	roomID = uint(project["chat_room_id"].(float64))

	assign := doJSON(t, r, http.MethodPost,
		fmt.Sprintf("/api/projects/%d/workers", projectID), supToken,
		gin.H{"email": worker.Email})
	if assign.Code != http.StatusCreated {
		t.Fatalf("assign = %d: %s", assign.Code, assign.Body.String())
	}

	return r, roomID, supToken, wToken, sToken
}

func TestPostMessageTwoRowContract(t *testing.T) {
	r, roomID, _, workerToken, _ := chatSetup(t)

	rec := doJSON(t, r, http.MethodPost,
		fmt.Sprintf("/api/chat-rooms/%d/messages", roomID), workerToken,
		gin.H{"content": "What's the schedule?"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("post = %d: %s", rec.Code, rec.Body.String())
	}

	var resp postResponse
	decodeBody(t, rec, &resp)

	if resp.Message.IsAIResponse {
		t.Error("user message must not be flagged as AI")
	}
	if !resp.AIResponse.IsAIResponse {
		t.Error("companion message must be flagged as AI")
	}
	if resp.AIResponse.SenderID != resp.Message.SenderID {
		t.Error("AI reply keeps the sender of the triggering message")
	}
	if !strings.Contains(resp.AIResponse.Content, "Bridge Retrofit") {
		t.Errorf("AI reply should reference the project title, got %q", resp.AIResponse.Content)
	}
	if !strings.Contains(resp.AIResponse.Content, types.StatusInProgress) {
		t.Errorf("AI reply should reference the project status, got %q", resp.AIResponse.Content)
	}
}

func TestListMessagesNonMemberEmpty(t *testing.T) {
	r, roomID, _, workerToken, strangerToken := chatSetup(t)

	post := doJSON(t, r, http.MethodPost,
		fmt.Sprintf("/api/chat-rooms/%d/messages", roomID), workerToken,
		gin.H{"content": "hello"})
	if post.Code != http.StatusCreated {
		t.Fatalf("post = %d", post.Code)
	}

	rec := doJSON(t, r, http.MethodGet,
		fmt.Sprintf("/api/chat-rooms/%d/messages", roomID), strangerToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("stranger list = %d, want 200", rec.Code)
	}

	var listed []messageJSON
	decodeBody(t, rec, &listed)
	if len(listed) != 0 {
		t.Errorf("stranger sees %d messages, want 0", len(listed))
	}
}

func TestListMessagesAscendingForMembers(t *testing.T) {
	r, roomID, supToken, workerToken, _ := chatSetup(t)

	for i, token := range []string{workerToken, supToken} {
		rec := doJSON(t, r, http.MethodPost,
			fmt.Sprintf("/api/chat-rooms/%d/messages", roomID), token,
			gin.H{"content": fmt.Sprintf("message %d", i)})
		if rec.Code != http.StatusCreated {
			t.Fatalf("post %d = %d", i, rec.Code)
		}
	}

	rec := doJSON(t, r, http.MethodGet,
		fmt.Sprintf("/api/chat-rooms/%d/messages", roomID), workerToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list = %d", rec.Code)
	}

	var listed []messageJSON
	decodeBody(t, rec, &listed)

	if len(listed) != 4 {
		t.Fatalf("member sees %d messages, want 4", len(listed))
	}
	if listed[0].Content != "message 0" {
		t.Errorf("first message = %q, want the earliest", listed[0].Content)
	}
	for i := 1; i < len(listed); i++ {
		if listed[i].ID <= listed[i-1].ID {
			t.Errorf("messages out of order at index %d", i)
		}
	}
}

func TestPostMessageNonMemberForbidden(t *testing.T) {
	r, roomID, _, _, strangerToken := chatSetup(t)

	rec := doJSON(t, r, http.MethodPost,
		fmt.Sprintf("/api/chat-rooms/%d/messages", roomID), strangerToken,
		gin.H{"content": "let me in"})
	if rec.Code != http.StatusForbidden {
		t.Errorf("stranger post = %d, want 403", rec.Code)
	}
}

func TestPostMessageMissingContent(t *testing.T) {
	r, roomID, _, workerToken, _ := chatSetup(t)

	rec := doJSON(t, r, http.MethodPost,
		fmt.Sprintf("/api/chat-rooms/%d/messages", roomID), workerToken,
		gin.H{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty post = %d, want 400", rec.Code)
	}
}

func TestPostMessageRoomNotFound(t *testing.T) {
	r, _, _, workerToken, _ := chatSetup(t)

	rec := doJSON(t, r, http.MethodPost, "/api/chat-rooms/9999/messages", workerToken,
		gin.H{"content": "anyone here?"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing room = %d, want 404", rec.Code)
	}
}

func TestUpdateFlagIgnoredForWorkers(t *testing.T) {
	r, roomID, supToken, workerToken, _ := chatSetup(t)

	rec := doJSON(t, r, http.MethodPost,
		fmt.Sprintf("/api/chat-rooms/%d/messages", roomID), workerToken,
		gin.H{"content": "progress report", "is_update": true})
	if rec.Code != http.StatusCreated {
		t.Fatalf("worker post = %d", rec.Code)
	}

	var resp postResponse
	decodeBody(t, rec, &resp)
	if resp.Message.IsUpdate {
		t.Error("worker is_update must be silently ignored")
	}

	rec = doJSON(t, r, http.MethodPost,
		fmt.Sprintf("/api/chat-rooms/%d/messages", roomID), supToken,
		gin.H{"content": "phase one complete", "is_update": true})
	if rec.Code != http.StatusCreated {
		t.Fatalf("supervisor post = %d", rec.Code)
	}

	decodeBody(t, rec, &resp)
	if !resp.Message.IsUpdate {
		t.Error("supervisor is_update must be honored")
	}
}

func TestListChatRoomsScoped(t *testing.T) {
	r, roomID, supToken, workerToken, strangerToken := chatSetup(t)

	var rooms []map[string]interface{}

	rec := doJSON(t, r, http.MethodGet, "/api/chat-rooms", supToken, nil)
	decodeBody(t, rec, &rooms)
	if len(rooms) != 1 || uint(rooms[0]["id"].(float64)) != roomID {
		t.Errorf("supervisor sees %d rooms, want their project's room", len(rooms))
	}

	rec = doJSON(t, r, http.MethodGet, "/api/chat-rooms", workerToken, nil)
	decodeBody(t, rec, &rooms)
	if len(rooms) != 1 {
		t.Errorf("assigned worker sees %d rooms, want 1", len(rooms))
	}

	rec = doJSON(t, r, http.MethodGet, "/api/chat-rooms", strangerToken, nil)
	decodeBody(t, rec, &rooms)
	if len(rooms) != 0 {
		t.Errorf("stranger sees %d rooms, want 0", len(rooms))
	}
}
