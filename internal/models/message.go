package models

import "gorm.io/gorm"

type Message struct {
	gorm.Model

	ChatRoomID uint   `gorm:"not null;index"`
	SenderID   uint   `gorm:"not null;index"`
	Content    string `gorm:"not null"`
	// An AI reply keeps the SenderID of the user message that triggered it.
	IsAIResponse bool `gorm:"default:false"`
	IsUpdate     bool `gorm:"default:false"`

	// Relationships
	ChatRoom ChatRoom `gorm:"foreignKey:ChatRoomID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Sender   User     `gorm:"foreignKey:SenderID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
