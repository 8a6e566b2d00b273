package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Yash-g2310/l-and-t-prototype/db"
	"github.com/Yash-g2310/l-and-t-prototype/internal/authz"
	"github.com/Yash-g2310/l-and-t-prototype/internal/models"
	"github.com/Yash-g2310/l-and-t-prototype/internal/services"
	"github.com/Yash-g2310/l-and-t-prototype/internal/types"
	"github.com/gin-gonic/gin"
)

type CreateProjectRequest struct {
	Title                string  `json:"title" binding:"required"`
	Description          string  `json:"description"`
	DetailedDescription  string  `json:"detailed_description"`
	Location             string  `json:"location"`
	RiskAssessment       string  `json:"risk_assessment"`
	MitigationStrategies string  `json:"mitigation_strategies"`
	StartDate            string  `json:"start_date" binding:"required"`
	EndDate              string  `json:"end_date" binding:"required"`
	Status               string  `json:"status"`
	EstimatedWorkers     int     `json:"estimated_workers"`
	Budget               float64 `json:"budget"`
}

type UpdateProjectRequest struct {
	Title                string   `json:"title"`
	Description          *string  `json:"description"`
	DetailedDescription  *string  `json:"detailed_description"`
	Location             *string  `json:"location"`
	RiskAssessment       *string  `json:"risk_assessment"`
	MitigationStrategies *string  `json:"mitigation_strategies"`
	StartDate            string   `json:"start_date"`
	EndDate              string   `json:"end_date"`
	Status               string   `json:"status"`
	EstimatedWorkers     *int     `json:"estimated_workers"`
	Budget               *float64 `json:"budget"`
	CurrentSpending      *float64 `json:"current_spending"`
}

type GetProjectResponse struct {
	ID                   uint    `json:"id"`
	Title                string  `json:"title"`
	Description          string  `json:"description"`
	DetailedDescription  string  `json:"detailed_description"`
	Location             string  `json:"location"`
	RiskAssessment       string  `json:"risk_assessment"`
	MitigationStrategies string  `json:"mitigation_strategies"`
	StartDate            string  `json:"start_date"`
	EndDate              string  `json:"end_date"`
	Status               string  `json:"status"`
	SupervisorID         uint    `json:"supervisor_id"`
	EstimatedWorkers     int     `json:"estimated_workers"`
	CurrentWorkerCount   int     `json:"current_worker_count"`
	Budget               float64 `json:"budget"`
	CurrentSpending      float64 `json:"current_spending"`
	ChatRoomID           *uint   `json:"chat_room_id,omitempty"`
}

const dateLayout = "2006-01-02"

func projectResponse(project models.Project) GetProjectResponse {
	resp := GetProjectResponse{
		ID:                   project.ID,
		Title:                project.Title,
		Description:          project.Description,
		DetailedDescription:  project.DetailedDescription,
		Location:             project.Location,
		RiskAssessment:       project.RiskAssessment,
		MitigationStrategies: project.MitigationStrategies,
		StartDate:            project.StartDate.Format(dateLayout),
		EndDate:              project.EndDate.Format(dateLayout),
		Status:               project.Status,
		SupervisorID:         project.SupervisorID,
		EstimatedWorkers:     project.EstimatedWorkers,
		CurrentWorkerCount:   project.CurrentWorkerCount,
		Budget:               project.Budget,
		CurrentSpending:      project.CurrentSpending,
	}

	if project.ChatRoom != nil {
		resp.ChatRoomID = &project.ChatRoom.ID
	}

	return resp
}

func CreateProject(ctx *gin.Context) {
	var body CreateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, err := currentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	startDate, err := time.Parse(dateLayout, body.StartDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start_date"})
		return
	}

	endDate, err := time.Parse(dateLayout, body.EndDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end_date"})
		return
	}

	status := body.Status
	if status == "" {
		status = types.StatusPlanning
	}
	if !types.ValidStatus(status) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	project := models.Project{
		Title:                body.Title,
		Description:          body.Description,
		DetailedDescription:  body.DetailedDescription,
		Location:             body.Location,
		RiskAssessment:       body.RiskAssessment,
		MitigationStrategies: body.MitigationStrategies,
		StartDate:            startDate,
		EndDate:              endDate,
		Status:               status,
		EstimatedWorkers:     body.EstimatedWorkers,
		Budget:               body.Budget,
	}

	if err := services.CreateProject(db.DB, user, &project); err != nil {
		if errors.Is(err, services.ErrForbidden) {
			ctx.JSON(http.StatusForbidden, gin.H{"error": "Only supervisors can create projects"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	ctx.JSON(http.StatusCreated, projectResponse(project))
}

func ListProjects(ctx *gin.Context) {
	user, err := currentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var projects []models.Project

	if err := authz.VisibleProjects(db.DB.Model(&models.Project{}), user).
		Preload("ChatRoom").Find(&projects).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}

	response := make([]GetProjectResponse, 0, len(projects))

	for _, project := range projects {
		response = append(response, projectResponse(project))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetProject(ctx *gin.Context) {
	project, user, ok := requireProject(ctx)

	if !ok {
		return
	}

	readable, err := authz.CanRead(db.DB, user, project)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		return
	}

	if !readable {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}

	if err := db.DB.Preload("ChatRoom").First(&project, project.ID).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		return
	}

	ctx.JSON(http.StatusOK, projectResponse(project))
}

func UpdateProject(ctx *gin.Context) {
	project, user, ok := requireProject(ctx)

	if !ok {
		return
	}

	if !authz.CanWrite(user, project) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only the project supervisor can update this project"})
		return
	}

	var body UpdateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if body.Title != "" {
		project.Title = body.Title
	}
	if body.Description != nil {
		project.Description = *body.Description
	}
	if body.DetailedDescription != nil {
		project.DetailedDescription = *body.DetailedDescription
	}
	if body.Location != nil {
		project.Location = *body.Location
	}
	if body.RiskAssessment != nil {
		project.RiskAssessment = *body.RiskAssessment
	}
	if body.MitigationStrategies != nil {
		project.MitigationStrategies = *body.MitigationStrategies
	}
	if body.StartDate != "" {
		startDate, err := time.Parse(dateLayout, body.StartDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start_date"})
			return
		}
		project.StartDate = startDate
	}
	if body.EndDate != "" {
		endDate, err := time.Parse(dateLayout, body.EndDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end_date"})
			return
		}
		project.EndDate = endDate
	}
	if body.Status != "" {
		if !types.ValidStatus(body.Status) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		project.Status = body.Status
	}
	if body.EstimatedWorkers != nil {
		project.EstimatedWorkers = *body.EstimatedWorkers
	}
	if body.Budget != nil {
		project.Budget = *body.Budget
	}
	if body.CurrentSpending != nil {
		project.CurrentSpending = *body.CurrentSpending
	}

	if err := db.DB.Save(&project).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		return
	}

	ctx.JSON(http.StatusOK, projectResponse(project))
}

func DeleteProject(ctx *gin.Context) {
	project, user, ok := requireProject(ctx)

	if !ok {
		return
	}

	if !authz.CanWrite(user, project) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only the project supervisor can delete this project"})
		return
	}

	if err := db.DB.Delete(&project).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
