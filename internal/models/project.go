package models

import (
	"time"

	"gorm.io/gorm"
)

type Project struct {
	gorm.Model

	Title                string `gorm:"not null"`
	Description          string
	DetailedDescription  string
	Location             string
	RiskAssessment       string
	MitigationStrategies string
	StartDate            time.Time `gorm:"not null"`
	EndDate              time.Time `gorm:"not null"`
	Status               string    `gorm:"not null;default:planning"` // "planning", "in_progress", "completed", "on_hold"
	SupervisorID         uint      `gorm:"not null;index"`
	EstimatedWorkers     int
	CurrentWorkerCount   int `gorm:"not null;default:0"`
	Budget               float64
	CurrentSpending      float64

	// Relationships
	Supervisor     User              `gorm:"foreignKey:SupervisorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	ProjectWorkers []ProjectWorker   `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Updates        []ProjectUpdate   `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Suppliers      []ProjectSupplier `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	TimelineEvents []ProjectTimeline `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Risks          []RiskAnalysis    `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	ChatRoom       *ChatRoom         `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
