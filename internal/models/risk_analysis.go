package models

import (
	"time"

	"gorm.io/gorm"
)

type RiskAnalysis struct {
	gorm.Model

	ProjectID       uint   `gorm:"not null;index"`
	Title           string `gorm:"not null"`
	Description     string
	RiskLevel       string  `gorm:"not null"` // "low", "medium", "high", "critical"
	RiskCategory    string  `gorm:"not null"`
	Probability     float64 `gorm:"not null"` // 0.0 - 1.0
	Impact          int     `gorm:"not null"` // 1 - 10
	MitigationPlan  string
	ContingencyPlan string
	IsResolved      bool `gorm:"default:false"`
	ResolvedDate    *time.Time

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
