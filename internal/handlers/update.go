package handlers

import (
	"net/http"
	"time"

	"github.com/Yash-g2310/l-and-t-prototype/db"
	"github.com/Yash-g2310/l-and-t-prototype/internal/authz"
	"github.com/Yash-g2310/l-and-t-prototype/internal/models"
	"github.com/gin-gonic/gin"
)

type ProjectUpdateRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type ProjectUpdateResponse struct {
	ID         uint   `json:"id"`
	ProjectID  uint   `json:"project_id"`
	AuthorID   uint   `json:"author_id"`
	AuthorName string `json:"author_name"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	CreatedAt  string `json:"created_at"`
}

func updateResponse(update models.ProjectUpdate, authorName string) ProjectUpdateResponse {
	return ProjectUpdateResponse{
		ID:         update.ID,
		ProjectID:  update.ProjectID,
		AuthorID:   update.AuthorID,
		AuthorName: authorName,
		Title:      update.Title,
		Content:    update.Content,
		CreatedAt:  update.CreatedAt.Format(time.RFC3339),
	}
}

// CreateProjectUpdate lets any project member post an update; the author is
// always the caller.
func CreateProjectUpdate(ctx *gin.Context) {
	project, user, ok := requireProject(ctx)

	if !ok {
		return
	}

	readable, err := authz.CanRead(db.DB, user, project)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create update"})
		return
	}

	if !readable {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You are not a member of this project"})
		return
	}

	var body ProjectUpdateRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	update := models.ProjectUpdate{
		ProjectID: project.ID,
		AuthorID:  user.ID,
		Title:     body.Title,
		Content:   body.Content,
	}

	if err := db.DB.Create(&update).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create update"})
		return
	}

	ctx.JSON(http.StatusCreated, updateResponse(update, user.Name))
}

func ListProjectUpdates(ctx *gin.Context) {
	project, user, ok := requireProject(ctx)

	if !ok {
		return
	}

	readable, err := authz.CanRead(db.DB, user, project)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve updates"})
		return
	}

	response := make([]ProjectUpdateResponse, 0)

	if !readable {
		ctx.JSON(http.StatusOK, response)
		return
	}

	var updates []models.ProjectUpdate

	if err := db.DB.Preload("Author").
		Where("project_id = ?", project.ID).
		Order("created_at DESC").
		Find(&updates).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve updates"})
		return
	}

	for _, update := range updates {
		response = append(response, updateResponse(update, update.Author.Name))
	}

	ctx.JSON(http.StatusOK, response)
}
