package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Yash-g2310/l-and-t-prototype/db"
	"github.com/Yash-g2310/l-and-t-prototype/internal/authz"
	"github.com/Yash-g2310/l-and-t-prototype/internal/models"
	"github.com/Yash-g2310/l-and-t-prototype/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TimelineRequest struct {
	Title                string `json:"title" binding:"required"`
	Description          string `json:"description"`
	StartDate            string `json:"start_date" binding:"required"`
	EndDate              string `json:"end_date" binding:"required"`
	CompletionPercentage int    `json:"completion_percentage"`
	IsMilestone          bool   `json:"is_milestone"`
	ResponsiblePersonID  *uint  `json:"responsible_person_id"`
	DependencyIDs        []uint `json:"dependency_ids"`
}

type TimelineResponse struct {
	ID                   uint   `json:"id"`
	ProjectID            uint   `json:"project_id"`
	Title                string `json:"title"`
	Description          string `json:"description"`
	StartDate            string `json:"start_date"`
	EndDate              string `json:"end_date"`
	CompletionPercentage int    `json:"completion_percentage"`
	IsMilestone          bool   `json:"is_milestone"`
	ResponsiblePersonID  *uint  `json:"responsible_person_id,omitempty"`
	DependencyIDs        []uint `json:"dependency_ids"`
}

func timelineResponse(event models.ProjectTimeline) TimelineResponse {
	dependencyIDs := make([]uint, 0, len(event.Dependencies))

	for _, dep := range event.Dependencies {
		dependencyIDs = append(dependencyIDs, dep.ID)
	}

	return TimelineResponse{
		ID:                   event.ID,
		ProjectID:            event.ProjectID,
		Title:                event.Title,
		Description:          event.Description,
		StartDate:            event.StartDate.Format(dateLayout),
		EndDate:              event.EndDate.Format(dateLayout),
		CompletionPercentage: event.CompletionPercentage,
		IsMilestone:          event.IsMilestone,
		ResponsiblePersonID:  event.ResponsiblePersonID,
		DependencyIDs:        dependencyIDs,
	}
}

// loadDependencies resolves dependency IDs to existing timeline rows. The
// dependency graph is not checked for cycles.
func loadDependencies(ids []uint) ([]*models.ProjectTimeline, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var deps []*models.ProjectTimeline

	if err := db.DB.Where("id IN ?", ids).Find(&deps).Error; err != nil {
		return nil, err
	}

	if len(deps) != len(ids) {
		return nil, gorm.ErrRecordNotFound
	}

	return deps, nil
}

func CreateTimelineEvent(ctx *gin.Context) {
	project, user, ok := requireProject(ctx)

	if !ok {
		return
	}

	if !authz.CanWrite(user, project) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only the project supervisor can add timeline events"})
		return
	}

	var body TimelineRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
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

	deps, err := loadDependencies(body.DependencyIDs)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Dependency timeline event not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve dependencies"})
		}
		return
	}

	event := models.ProjectTimeline{
		ProjectID:            project.ID,
		Title:                body.Title,
		Description:          body.Description,
		StartDate:            startDate,
		EndDate:              endDate,
		CompletionPercentage: body.CompletionPercentage,
		IsMilestone:          body.IsMilestone,
		ResponsiblePersonID:  body.ResponsiblePersonID,
		Dependencies:         deps,
	}

	if err := db.DB.Create(&event).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create timeline event"})
		return
	}

	ctx.JSON(http.StatusCreated, timelineResponse(event))
}

func ListTimelineEvents(ctx *gin.Context) {
	project, user, ok := requireProject(ctx)

	if !ok {
		return
	}

	readable, err := authz.CanRead(db.DB, user, project)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve timeline"})
		return
	}

	response := make([]TimelineResponse, 0)

	if !readable {
		ctx.JSON(http.StatusOK, response)
		return
	}

	var events []models.ProjectTimeline

	if err := db.DB.Preload("Dependencies").
		Where("project_id = ?", project.ID).
		Order("start_date ASC").
		Find(&events).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve timeline"})
		return
	}

	for _, event := range events {
		response = append(response, timelineResponse(event))
	}

	ctx.JSON(http.StatusOK, response)
}

func UpdateTimelineEvent(ctx *gin.Context) {
	project, user, ok := requireProject(ctx)

	if !ok {
		return
	}

	if !authz.CanWrite(user, project) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only the project supervisor can update timeline events"})
		return
	}

	eventID, err := utils.GetPathID(ctx, "event_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var event models.ProjectTimeline

	if err := db.DB.Where("id = ? AND project_id = ?", eventID, project.ID).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Timeline event not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve timeline event"})
		}
		return
	}

	var body TimelineRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
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

	event.Title = body.Title
	event.Description = body.Description
	event.StartDate = startDate
	event.EndDate = endDate
	event.CompletionPercentage = body.CompletionPercentage
	event.IsMilestone = body.IsMilestone
	event.ResponsiblePersonID = body.ResponsiblePersonID

	if err := db.DB.Save(&event).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update timeline event"})
		return
	}

	if body.DependencyIDs != nil {
		deps, err := loadDependencies(body.DependencyIDs)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Dependency timeline event not found"})
			} else {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve dependencies"})
			}
			return
		}

		if err := db.DB.Model(&event).Association("Dependencies").Replace(deps); err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update dependencies"})
			return
		}
		event.Dependencies = deps
	}

	ctx.JSON(http.StatusOK, timelineResponse(event))
}

func DeleteTimelineEvent(ctx *gin.Context) {
	project, user, ok := requireProject(ctx)

	if !ok {
		return
	}

	if !authz.CanWrite(user, project) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only the project supervisor can delete timeline events"})
		return
	}

	eventID, err := utils.GetPathID(ctx, "event_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var event models.ProjectTimeline

	if err := db.DB.Where("id = ? AND project_id = ?", eventID, project.ID).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Timeline event not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve timeline event"})
		}
		return
	}

	if err := db.DB.Delete(&event).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete timeline event"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
