package models

import "gorm.io/gorm"

type User struct {
	gorm.Model

	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"not null;default:worker"` // "admin", "worker", "supervisor"
	Phone        string

	// Relationships
	SupervisedProjects []Project       `gorm:"foreignKey:SupervisorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	ProjectWorkers     []ProjectWorker `gorm:"foreignKey:WorkerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	ProjectUpdates     []ProjectUpdate `gorm:"foreignKey:AuthorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Messages           []Message       `gorm:"foreignKey:SenderID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
