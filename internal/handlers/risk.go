package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Yash-g2310/l-and-t-prototype/db"
	"github.com/Yash-g2310/l-and-t-prototype/internal/authz"
	"github.com/Yash-g2310/l-and-t-prototype/internal/models"
	"github.com/Yash-g2310/l-and-t-prototype/internal/types"
	"github.com/Yash-g2310/l-and-t-prototype/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RiskRequest struct {
	Title           string  `json:"title" binding:"required"`
	Description     string  `json:"description"`
	RiskLevel       string  `json:"risk_level" binding:"required"`
	RiskCategory    string  `json:"risk_category" binding:"required"`
	Probability     float64 `json:"probability"`
	Impact          int     `json:"impact"`
	MitigationPlan  string  `json:"mitigation_plan"`
	ContingencyPlan string  `json:"contingency_plan"`
	IsResolved      bool    `json:"is_resolved"`
}

type RiskResponse struct {
	ID              uint    `json:"id"`
	ProjectID       uint    `json:"project_id"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	RiskLevel       string  `json:"risk_level"`
	RiskCategory    string  `json:"risk_category"`
	Probability     float64 `json:"probability"`
	Impact          int     `json:"impact"`
	MitigationPlan  string  `json:"mitigation_plan"`
	ContingencyPlan string  `json:"contingency_plan"`
	IsResolved      bool    `json:"is_resolved"`
	ResolvedDate    *string `json:"resolved_date,omitempty"`
}

func riskResponse(risk models.RiskAnalysis) RiskResponse {
	resp := RiskResponse{
		ID:              risk.ID,
		ProjectID:       risk.ProjectID,
		Title:           risk.Title,
		Description:     risk.Description,
		RiskLevel:       risk.RiskLevel,
		RiskCategory:    risk.RiskCategory,
		Probability:     risk.Probability,
		Impact:          risk.Impact,
		MitigationPlan:  risk.MitigationPlan,
		ContingencyPlan: risk.ContingencyPlan,
		IsResolved:      risk.IsResolved,
	}

	if risk.ResolvedDate != nil {
		resolved := risk.ResolvedDate.Format(dateLayout)
		resp.ResolvedDate = &resolved
	}

	return resp
}

func validateRisk(body RiskRequest) string {
	if !types.ValidRiskLevel(body.RiskLevel) {
		return "Invalid risk_level"
	}
	if body.Probability < 0 || body.Probability > 1 {
		return "Probability must be between 0 and 1"
	}
	if body.Impact < 1 || body.Impact > 10 {
		return "Impact must be between 1 and 10"
	}
	return ""
}

func CreateRisk(ctx *gin.Context) {
	project, user, ok := requireProject(ctx)

	if !ok {
		return
	}

	if !authz.CanWrite(user, project) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only the project supervisor can add risks"})
		return
	}

	var body RiskRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if msg := validateRisk(body); msg != "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	risk := models.RiskAnalysis{
		ProjectID:       project.ID,
		Title:           body.Title,
		Description:     body.Description,
		RiskLevel:       body.RiskLevel,
		RiskCategory:    body.RiskCategory,
		Probability:     body.Probability,
		Impact:          body.Impact,
		MitigationPlan:  body.MitigationPlan,
		ContingencyPlan: body.ContingencyPlan,
	}

	if err := db.DB.Create(&risk).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create risk"})
		return
	}

	ctx.JSON(http.StatusCreated, riskResponse(risk))
}

func ListRisks(ctx *gin.Context) {
	project, user, ok := requireProject(ctx)

	if !ok {
		return
	}

	readable, err := authz.CanRead(db.DB, user, project)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve risks"})
		return
	}

	response := make([]RiskResponse, 0)

	if !readable {
		ctx.JSON(http.StatusOK, response)
		return
	}

	var risks []models.RiskAnalysis

	if err := db.DB.Where("project_id = ?", project.ID).Find(&risks).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve risks"})
		return
	}

	for _, risk := range risks {
		response = append(response, riskResponse(risk))
	}

	ctx.JSON(http.StatusOK, response)
}

func UpdateRisk(ctx *gin.Context) {
	project, user, ok := requireProject(ctx)

	if !ok {
		return
	}

	if !authz.CanWrite(user, project) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only the project supervisor can update risks"})
		return
	}

	riskID, err := utils.GetPathID(ctx, "risk_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var risk models.RiskAnalysis

	if err := db.DB.Where("id = ? AND project_id = ?", riskID, project.ID).First(&risk).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Risk not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve risk"})
		}
		return
	}

	var body RiskRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if msg := validateRisk(body); msg != "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	risk.Title = body.Title
	risk.Description = body.Description
	risk.RiskLevel = body.RiskLevel
	risk.RiskCategory = body.RiskCategory
	risk.Probability = body.Probability
	risk.Impact = body.Impact
	risk.MitigationPlan = body.MitigationPlan
	risk.ContingencyPlan = body.ContingencyPlan

	if body.IsResolved && !risk.IsResolved {
		now := time.Now()
		risk.ResolvedDate = &now
	}
	if !body.IsResolved {
		risk.ResolvedDate = nil
	}
	risk.IsResolved = body.IsResolved

	if err := db.DB.Save(&risk).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update risk"})
		return
	}

	ctx.JSON(http.StatusOK, riskResponse(risk))
}

func DeleteRisk(ctx *gin.Context) {
	project, user, ok := requireProject(ctx)

	if !ok {
		return
	}

	if !authz.CanWrite(user, project) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only the project supervisor can delete risks"})
		return
	}

	riskID, err := utils.GetPathID(ctx, "risk_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var risk models.RiskAnalysis

	if err := db.DB.Where("id = ? AND project_id = ?", riskID, project.ID).First(&risk).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Risk not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve risk"})
		}
		return
	}

	if err := db.DB.Delete(&risk).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete risk"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
