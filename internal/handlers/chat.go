package handlers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/thereayou/movie-catalog/internal/database"
	"github.com/thereayou/movie-catalog/internal/events"
	"github.com/thereayou/movie-catalog/internal/handlers/dto"
	"github.com/thereayou/movie-catalog/internal/logger"
	"github.com/thereayou/movie-catalog/internal/models"
	"github.com/thereayou/movie-catalog/internal/observability"
	"github.com/thereayou/movie-catalog/internal/websocket"
)

// ChatHandler обрабатывает сообщения чата: сначала сохраняет в БД,
// потом рассылает. Ошибка сохранения отменяет рассылку и возвращается
// отправителю.
type ChatHandler struct {
	db  *database.Database
	hub *websocket.Hub
	pub events.Publisher
}

func NewChatHandler(db *database.Database, hub *websocket.Hub, pub events.Publisher) *ChatHandler {
	return &ChatHandler{db: db, hub: hub, pub: pub}
}

func (h *ChatHandler) HandleMessage(client *websocket.Client, msg *websocket.Message) error {
	switch msg.Type {
	case websocket.TypeMovieMessage:
		return h.handleMovieMessage(client, msg)

	case websocket.TypePrivateMessage:
		return h.handlePrivateMessage(client, msg)

	case websocket.TypeTypingStart:
		return h.handleTyping(client, msg, true)

	case websocket.TypeTypingStop:
		return h.handleTyping(client, msg, false)

	default:
		logger.Get().Warnf("unknown message type: %s", msg.Type)
		return nil
	}
}

func (h *ChatHandler) handleMovieMessage(client *websocket.Client, msg *websocket.Message) error {
	if msg.MovieID == nil {
		return websocket.ErrInvalidMessage
	}

	channel := websocket.MovieChannel(*msg.MovieID)
	if !client.InChannel(channel) {
		return websocket.ErrNotInMovieChannel
	}

	var payload dto.MovieMessagePayload
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		return err
	}

	// Сообщение без текста допустимо только с файлом
	if payload.Text == "" && payload.FileURL == "" {
		return websocket.ErrInvalidMessage
	}

	message := &models.ChatMessage{
		MovieID:        msg.MovieID,
		SenderUserID:   client.UserID,
		SenderUserName: client.Username,
		Text:           payload.Text,
		FileURL:        payload.FileURL,
		FileName:       payload.FileName,
		IsPrivate:      false,
		CreatedAt:      time.Now().UTC(),
	}

	if err := h.db.SaveChatMessage(message); err != nil {
		logger.Get().Errorf("failed to save movie message: %v", err)
		return websocket.ErrMessageNotSaved
	}

	response := dto.MovieMessageResponse{
		ID:         message.ID,
		MovieID:    *msg.MovieID,
		SenderID:   message.SenderUserID,
		SenderName: message.SenderUserName,
		Text:       message.Text,
		FileURL:    message.FileURL,
		FileName:   message.FileName,
		CreatedAt:  message.CreatedAt,
	}

	data, err := h.marshalEvent(websocket.TypeMovieMessage, msg.MovieID, response)
	if err != nil {
		return err
	}
	h.hub.SendToChannel(channel, data)

	observability.IncChatMessage("movie")
	observability.IncWSEvent("movie_message")
	go h.pub.Publish(context.Background(), "catalog.chat.movie", response)
	go h.db.UpdateLastSeen(client.UserID.String())

	return nil
}

func (h *ChatHandler) handlePrivateMessage(client *websocket.Client, msg *websocket.Message) error {
	var payload dto.PrivateMessagePayload
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		return err
	}

	if payload.Text == "" || payload.ReceiverID == uuid.Nil {
		return websocket.ErrInvalidMessage
	}

	receiverID := payload.ReceiverID
	message := &models.ChatMessage{
		ReceiverUserID: &receiverID,
		SenderUserID:   client.UserID,
		SenderUserName: client.Username,
		Text:           payload.Text,
		IsPrivate:      true,
		CreatedAt:      time.Now().UTC(),
	}

	if err := h.db.SaveChatMessage(message); err != nil {
		logger.Get().Errorf("failed to save private message: %v", err)
		return websocket.ErrMessageNotSaved
	}

	response := dto.PrivateMessageResponse{
		ID:         message.ID,
		SenderID:   message.SenderUserID,
		SenderName: message.SenderUserName,
		ReceiverID: receiverID,
		Text:       message.Text,
		CreatedAt:  message.CreatedAt,
	}

	data, err := h.marshalEvent(websocket.TypePrivateMessage, nil, response)
	if err != nil {
		return err
	}

	// Получателю — на все его соединения, отправителю — эхо на все его
	// соединения. Сообщение самому себе не дублируется.
	h.hub.SendToUser(receiverID, data)
	if receiverID != client.UserID {
		h.hub.SendToUser(client.UserID, data)
	}

	observability.IncChatMessage("private")
	observability.IncWSEvent("private_message")
	go h.pub.Publish(context.Background(), "catalog.chat.private", response)
	go h.db.UpdateLastSeen(client.UserID.String())

	return nil
}

// handleTyping доставляет сигнал набора текста получателю, без сохранения
func (h *ChatHandler) handleTyping(client *websocket.Client, msg *websocket.Message, started bool) error {
	var payload dto.TypingPayload
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		return err
	}

	event := dto.TypingEvent{UserID: client.UserID}
	msgType := websocket.TypeTypingStop
	if started {
		event.Username = client.Username
		msgType = websocket.TypeTypingStart
	}

	data, err := h.marshalEvent(msgType, nil, event)
	if err != nil {
		return err
	}
	h.hub.SendToUser(payload.ReceiverID, data)

	return nil
}

func (h *ChatHandler) marshalEvent(msgType websocket.MessageType, movieID *uint, payload interface{}) ([]byte, error) {
	wsMsg := websocket.Message{
		Type:      msgType,
		MovieID:   movieID,
		Timestamp: time.Now(),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	wsMsg.Data = data

	return json.Marshal(wsMsg)
}
