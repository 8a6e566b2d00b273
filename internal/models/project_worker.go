package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProjectWorker struct {
	gorm.Model

	ProjectID         uint `gorm:"not null;uniqueIndex:idx_project_worker"`
	WorkerID          uint `gorm:"not null;uniqueIndex:idx_project_worker"`
	RoleDescription   string
	Skills            datatypes.JSON `gorm:"type:jsonb"`
	PerformanceRating float64

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Worker  User    `gorm:"foreignKey:WorkerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
