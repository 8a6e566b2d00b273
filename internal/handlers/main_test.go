package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Yash-g2310/l-and-t-prototype/db"
	"github.com/Yash-g2310/l-and-t-prototype/internal/auth"
	"github.com/Yash-g2310/l-and-t-prototype/internal/handlers"
	"github.com/Yash-g2310/l-and-t-prototype/internal/models"
	"github.com/Yash-g2310/l-and-t-prototype/internal/router"
	"github.com/Yash-g2310/l-and-t-prototype/internal/services"
	"github.com/Yash-g2310/l-and-t-prototype/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupServer(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")
	if err := auth.InitJWTSecret(); err != nil {
		t.Fatalf("init jwt: %v", err)
	}

	var err error
	db.DB, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	handlers.InitChatService(services.NewChatService(services.StaticResponder{}, time.Second))

	return router.NewRouter()
}

func createUser(t *testing.T, name, role string) (models.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	user := models.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}

	token, err := auth.GenerateJWT(user.ID, user.Email, user.Role)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	return user, token
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var payload *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		payload = bytes.NewReader(data)
	} else {
		payload = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, payload)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()

	if err := json.NewDecoder(rec.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v (body: %s)", err, rec.Body.String())
	}
}

func createProject(t *testing.T, r *gin.Engine, token, title string) map[string]interface{} {
	t.Helper()

	rec := doJSON(t, r, http.MethodPost, "/api/projects", token, gin.H{
		"title":       title,
		"description": "test project",
		"location":    "Mumbai",
		"start_date": "2026-01-01",
		"end_date":   "2026-12-31",
		"status":     types.StatusInProgress,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create project = %d: %s", rec.Code, rec.Body.String())
	}

	var project map[string]interface{}
	decodeBody(t, rec, &project)
	return project
}
