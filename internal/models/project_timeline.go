package models

import (
	"time"

	"gorm.io/gorm"
)

type ProjectTimeline struct {
	gorm.Model

	ProjectID            uint   `gorm:"not null;index"`
	Title                string `gorm:"not null"`
	Description          string
	StartDate            time.Time `gorm:"not null"`
	EndDate              time.Time `gorm:"not null"`
	CompletionPercentage int       `gorm:"not null;default:0"`
	IsMilestone          bool      `gorm:"default:false"`
	ResponsiblePersonID  *uint     `gorm:"index"`

	// Relationships
	Project           Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	ResponsiblePerson *User   `gorm:"foreignKey:ResponsiblePersonID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`

	// Self-referential many-to-many. The graph is not validated for cycles.
	Dependencies []*ProjectTimeline `gorm:"many2many:timeline_dependencies;constraint:OnDelete:CASCADE"`
}
