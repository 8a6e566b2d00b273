package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProjectSupplier struct {
	gorm.Model

	ProjectID         uint   `gorm:"not null;index"`
	Name              string `gorm:"not null"`
	ContactPerson     string
	ContactEmail      string
	ContactPhone      string
	MaterialsProvided datatypes.JSON `gorm:"type:jsonb"`
	ReliabilityScore  float64
	LeadTimeDays      int

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
