package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Yash-g2310/l-and-t-prototype/db"
	"github.com/Yash-g2310/l-and-t-prototype/internal/authz"
	"github.com/Yash-g2310/l-and-t-prototype/internal/models"
	"github.com/Yash-g2310/l-and-t-prototype/internal/services"
	"github.com/Yash-g2310/l-and-t-prototype/internal/types"
	"github.com/Yash-g2310/l-and-t-prototype/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AddWorkerRequest struct {
	Email           string   `json:"email" binding:"required,email"`
	RoleDescription string   `json:"role_description"`
	Skills          []string `json:"skills"`
}

type WorkerResponse struct {
	ID                uint     `json:"id"`
	WorkerID          uint     `json:"worker_id"`
	Name              string   `json:"name"`
	Email             string   `json:"email"`
	RoleDescription   string   `json:"role_description"`
	Skills            []string `json:"skills,omitempty"`
	PerformanceRating float64  `json:"performance_rating,omitempty"`
}

func workerResponse(assignment models.ProjectWorker, worker models.User) WorkerResponse {
	resp := WorkerResponse{
		ID:                assignment.ID,
		WorkerID:          worker.ID,
		Name:              worker.Name,
		Email:             worker.Email,
		RoleDescription:   assignment.RoleDescription,
		PerformanceRating: assignment.PerformanceRating,
	}

	if len(assignment.Skills) > 0 {
		json.Unmarshal(assignment.Skills, &resp.Skills)
	}

	return resp
}

// AddWorker assigns a worker to a project by email, supervisor only.
func AddWorker(ctx *gin.Context) {
	project, user, ok := requireProject(ctx)

	if !ok {
		return
	}

	if !authz.CanWrite(user, project) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only the project supervisor can add workers"})
		return
	}

	var body AddWorkerRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Worker email is required"})
		return
	}

	var worker models.User

	email := strings.ToLower(strings.TrimSpace(body.Email))

	if err := db.DB.Where("email = ? AND role = ?", email, types.RoleWorker).First(&worker).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "No worker found with this email"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up worker"})
		}
		return
	}

	assignment, err := services.AssignWorker(db.DB, project, worker, body.RoleDescription)

	if err != nil {
		if errors.Is(err, services.ErrDuplicateAssignment) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Worker is already assigned to this project"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign worker"})
		return
	}

	if len(body.Skills) > 0 {
		if skills, err := json.Marshal(body.Skills); err == nil {
			assignment.Skills = datatypes.JSON(skills)
			db.DB.Model(&assignment).Update("skills", assignment.Skills)
		}
	}

	ctx.JSON(http.StatusCreated, workerResponse(assignment, worker))
}

// ListWorkers returns the project's assignments; non-members get an empty list.
func ListWorkers(ctx *gin.Context) {
	project, user, ok := requireProject(ctx)

	if !ok {
		return
	}

	readable, err := authz.CanRead(db.DB, user, project)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve workers"})
		return
	}

	response := make([]WorkerResponse, 0)

	if !readable {
		ctx.JSON(http.StatusOK, response)
		return
	}

	var assignments []models.ProjectWorker

	if err := db.DB.Preload("Worker").Where("project_id = ?", project.ID).Find(&assignments).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve workers"})
		return
	}

	for _, assignment := range assignments {
		response = append(response, workerResponse(assignment, assignment.Worker))
	}

	ctx.JSON(http.StatusOK, response)
}

// RemoveWorker unassigns a worker, supervisor only.
func RemoveWorker(ctx *gin.Context) {
	project, user, ok := requireProject(ctx)

	if !ok {
		return
	}

	if !authz.CanWrite(user, project) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only the project supervisor can remove workers"})
		return
	}

	workerID, err := utils.GetPathID(ctx, "worker_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.UnassignWorker(db.DB, project.ID, uint(workerID)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Worker is not assigned to this project"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove worker"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
