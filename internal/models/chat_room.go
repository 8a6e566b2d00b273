package models

import "gorm.io/gorm"

// ChatRoom is the one-to-one companion of a Project. The unique index on
// ProjectID is what makes room provisioning idempotent under retried creates.
type ChatRoom struct {
	gorm.Model

	ProjectID uint `gorm:"not null;uniqueIndex"`

	// Relationships
	Project  Project   `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Messages []Message `gorm:"foreignKey:ChatRoomID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
