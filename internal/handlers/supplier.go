package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Yash-g2310/l-and-t-prototype/db"
	"github.com/Yash-g2310/l-and-t-prototype/internal/authz"
	"github.com/Yash-g2310/l-and-t-prototype/internal/models"
	"github.com/Yash-g2310/l-and-t-prototype/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SupplierRequest struct {
	Name              string   `json:"name" binding:"required"`
	ContactPerson     string   `json:"contact_person"`
	ContactEmail      string   `json:"contact_email" binding:"omitempty,email"`
	ContactPhone      string   `json:"contact_phone"`
	MaterialsProvided []string `json:"materials_provided"`
	ReliabilityScore  float64  `json:"reliability_score"`
	LeadTimeDays      int      `json:"lead_time_days"`
}

type SupplierResponse struct {
	ID                uint     `json:"id"`
	ProjectID         uint     `json:"project_id"`
	Name              string   `json:"name"`
	ContactPerson     string   `json:"contact_person"`
	ContactEmail      string   `json:"contact_email"`
	ContactPhone      string   `json:"contact_phone"`
	MaterialsProvided []string `json:"materials_provided,omitempty"`
	ReliabilityScore  float64  `json:"reliability_score"`
	LeadTimeDays      int      `json:"lead_time_days"`
}

func supplierResponse(supplier models.ProjectSupplier) SupplierResponse {
	resp := SupplierResponse{
		ID:               supplier.ID,
		ProjectID:        supplier.ProjectID,
		Name:             supplier.Name,
		ContactPerson:    supplier.ContactPerson,
		ContactEmail:     supplier.ContactEmail,
		ContactPhone:     supplier.ContactPhone,
		ReliabilityScore: supplier.ReliabilityScore,
		LeadTimeDays:     supplier.LeadTimeDays,
	}

	if len(supplier.MaterialsProvided) > 0 {
		json.Unmarshal(supplier.MaterialsProvided, &resp.MaterialsProvided)
	}

	return resp
}

func CreateSupplier(ctx *gin.Context) {
	project, user, ok := requireProject(ctx)

	if !ok {
		return
	}

	if !authz.CanWrite(user, project) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only the project supervisor can add suppliers"})
		return
	}

	var body SupplierRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	supplier := models.ProjectSupplier{
		ProjectID:        project.ID,
		Name:             body.Name,
		ContactPerson:    body.ContactPerson,
		ContactEmail:     body.ContactEmail,
		ContactPhone:     body.ContactPhone,
		ReliabilityScore: body.ReliabilityScore,
		LeadTimeDays:     body.LeadTimeDays,
	}

	if len(body.MaterialsProvided) > 0 {
		if materials, err := json.Marshal(body.MaterialsProvided); err == nil {
			supplier.MaterialsProvided = datatypes.JSON(materials)
		}
	}

	if err := db.DB.Create(&supplier).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create supplier"})
		return
	}

	ctx.JSON(http.StatusCreated, supplierResponse(supplier))
}

func ListSuppliers(ctx *gin.Context) {
	project, user, ok := requireProject(ctx)

	if !ok {
		return
	}

	readable, err := authz.CanRead(db.DB, user, project)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve suppliers"})
		return
	}

	response := make([]SupplierResponse, 0)

	if !readable {
		ctx.JSON(http.StatusOK, response)
		return
	}

	var suppliers []models.ProjectSupplier

	if err := db.DB.Where("project_id = ?", project.ID).Find(&suppliers).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve suppliers"})
		return
	}

	for _, supplier := range suppliers {
		response = append(response, supplierResponse(supplier))
	}

	ctx.JSON(http.StatusOK, response)
}

func UpdateSupplier(ctx *gin.Context) {
	project, user, ok := requireProject(ctx)

	if !ok {
		return
	}

	if !authz.CanWrite(user, project) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only the project supervisor can update suppliers"})
		return
	}

	supplierID, err := utils.GetPathID(ctx, "supplier_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var supplier models.ProjectSupplier

	if err := db.DB.Where("id = ? AND project_id = ?", supplierID, project.ID).First(&supplier).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Supplier not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve supplier"})
		}
		return
	}

	var body SupplierRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	supplier.Name = body.Name
	supplier.ContactPerson = body.ContactPerson
	supplier.ContactEmail = body.ContactEmail
	supplier.ContactPhone = body.ContactPhone
	supplier.ReliabilityScore = body.ReliabilityScore
	supplier.LeadTimeDays = body.LeadTimeDays

	if materials, err := json.Marshal(body.MaterialsProvided); err == nil {
		supplier.MaterialsProvided = datatypes.JSON(materials)
	}

	if err := db.DB.Save(&supplier).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update supplier"})
		return
	}

	ctx.JSON(http.StatusOK, supplierResponse(supplier))
}

func DeleteSupplier(ctx *gin.Context) {
	project, user, ok := requireProject(ctx)

	if !ok {
		return
	}

	if !authz.CanWrite(user, project) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only the project supervisor can delete suppliers"})
		return
	}

	supplierID, err := utils.GetPathID(ctx, "supplier_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var supplier models.ProjectSupplier

	if err := db.DB.Where("id = ? AND project_id = ?", supplierID, project.ID).First(&supplier).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Supplier not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve supplier"})
		}
		return
	}

	if err := db.DB.Delete(&supplier).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete supplier"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
