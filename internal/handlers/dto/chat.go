package dto

import (
	"github.com/google/uuid"
	"time"
)

// MovieMessagePayload — входящее сообщение канала фильма:
// текст и/или прикрепленный файл
type MovieMessagePayload struct {
	Text     string `json:"text,omitempty"`
	FileURL  string `json:"file_url,omitempty"`
	FileName string `json:"file_name,omitempty"`
}

type PrivateMessagePayload struct {
	ReceiverID uuid.UUID `json:"receiver_id"`
	Text       string    `json:"text"`
}

type TypingPayload struct {
	ReceiverID uuid.UUID `json:"receiver_id"`
}

// MovieMessageResponse — исходящее сообщение канала фильма
type MovieMessageResponse struct {
	ID         uint      `json:"id"`
	MovieID    uint      `json:"movie_id"`
	SenderID   uuid.UUID `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Text       string    `json:"text,omitempty"`
	FileURL    string    `json:"file_url,omitempty"`
	FileName   string    `json:"file_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type PrivateMessageResponse struct {
	ID         uint      `json:"id"`
	SenderID   uuid.UUID `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	ReceiverID uuid.UUID `json:"receiver_id"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

// TypingEvent — уведомление о наборе текста (не сохраняется)
type TypingEvent struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username,omitempty"`
}
