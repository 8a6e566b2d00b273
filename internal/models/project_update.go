package models

import "gorm.io/gorm"

type ProjectUpdate struct {
	gorm.Model

	ProjectID uint   `gorm:"not null;index"`
	AuthorID  uint   `gorm:"not null;index"`
	Title     string `gorm:"not null"`
	Content   string `gorm:"not null"`

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Author  User    `gorm:"foreignKey:AuthorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
