package models

import (
	"github.com/google/uuid"
	"time"
)

// ChatMessage хранит сообщение чата: либо привязано к фильму (групповое),
// либо адресовано конкретному пользователю (приватное).
type ChatMessage struct {
	ID             uint       `gorm:"primaryKey"`
	MovieID        *uint      `gorm:"index"`
	ReceiverUserID *uuid.UUID `gorm:"type:uuid;index"`
	SenderUserID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	SenderUserName string     `gorm:"not null"`
	Text           string
	FileURL        string
	FileName       string
	IsPrivate      bool      `gorm:"default:false"`
	CreatedAt      time.Time `gorm:"not null"`
}
