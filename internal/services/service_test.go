package services

import (
	"testing"
	"time"

	"github.com/Yash-g2310/l-and-t-prototype/internal/models"
	"github.com/Yash-g2310/l-and-t-prototype/internal/types"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	if err := conn.AutoMigrate(
		&models.User{}, &models.Project{}, &models.ProjectWorker{},
		&models.ProjectUpdate{}, &models.ProjectSupplier{},
		&models.ProjectTimeline{}, &models.RiskAnalysis{},
		&models.ChatRoom{}, &models.Message{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return conn
}

func seedUser(t *testing.T, conn *gorm.DB, name, role string) models.User {
	t.Helper()

	user := models.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "x",
		Role:         role,
	}
	if err := conn.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return user
}

func seedProject(t *testing.T, conn *gorm.DB, supervisor models.User, title string) models.Project {
	t.Helper()

	project := models.Project{
		Title:        title,
		Description:  "test project",
		StartDate:    time.Now(),
		EndDate:      time.Now().AddDate(0, 6, 0),
		Status:       types.StatusPlanning,
		SupervisorID: supervisor.ID,
	}
	if err := conn.Create(&project).Error; err != nil {
		t.Fatalf("create project %s: %v", title, err)
	}

	if _, err := EnsureChatRoom(conn, project.ID); err != nil {
		t.Fatalf("provision chat room: %v", err)
	}

	return project
}

func workerCount(t *testing.T, conn *gorm.DB, projectID uint) (rows int64, counter int) {
	t.Helper()

	if err := conn.Model(&models.ProjectWorker{}).
		Where("project_id = ?", projectID).Count(&rows).Error; err != nil {
		t.Fatalf("count assignments: %v", err)
	}

	var project models.Project
	if err := conn.First(&project, projectID).Error; err != nil {
		t.Fatalf("reload project: %v", err)
	}

	return rows, project.CurrentWorkerCount
}
