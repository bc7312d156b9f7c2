package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/thereayou/movie-catalog/internal/logger"
)

// MessageType определяет типы сообщений
type MessageType string

const (
	// Системные типы
	TypePing MessageType = "ping"
	TypePong MessageType = "pong"

	// Каналы фильмов
	TypeMovieJoin  MessageType = "movie_join"
	TypeMovieLeave MessageType = "movie_leave"

	// Типы сообщений чата
	TypeMovieMessage   MessageType = "movie_message"
	TypePrivateMessage MessageType = "private_message"

	// Сигналы набора текста (не сохраняются)
	TypeTypingStart MessageType = "typing_start"
	TypeTypingStop  MessageType = "typing_stop"

	// Присутствие
	TypeInitPresence    MessageType = "init_presence"
	TypePresenceChanged MessageType = "presence_changed"

	TypeError MessageType = "error"
)

type Message struct {
	Type      MessageType     `json:"type"`
	MovieID   *uint           `json:"movie_id,omitempty"`
	UserID    uuid.UUID       `json:"user_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// PresenceChange — payload события presence_changed
type PresenceChange struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Online   bool      `json:"online"`
}

type Client struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Username string
	Conn     *websocket.Conn
	Send     chan []byte
	Channels map[ChannelKey]bool
	Hub      *Hub
	mu       sync.RWMutex
}

type Hub struct {
	clients map[uuid.UUID]*Client

	// Подписки на каналы. Личный канал пользователя содержит все его
	// соединения, поэтому отдельная карта userID -> clients не нужна.
	channels map[ChannelKey]map[uuid.UUID]*Client

	// Карта присутствия: userID -> отображаемое имя
	presence map[uuid.UUID]string

	// Каналы для регистрации/отмены регистрации
	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Контекст для graceful shutdown
	ctx    context.Context
	cancel context.CancelFunc
}

// NewHub создает новый Hub
func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:    make(map[uuid.UUID]*Client),
		channels:   make(map[ChannelKey]map[uuid.UUID]*Client),
		presence:   make(map[uuid.UUID]string),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Run запускает hub
func (h *Hub) Run() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case <-ticker.C:
			h.ping()
		}
	}
}

// Stop останавливает hub
func (h *Hub) Stop() {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		close(client.Send)
		client.Conn.Close()
	}
}

// Register регистрирует нового клиента
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister отменяет регистрацию клиента
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client

	// Каждое соединение подписывается на личный канал своего пользователя
	h.joinChannelUnsafe(client, PrivateChannel(client.UserID))

	h.presence[client.UserID] = client.Username

	logger.Get().Infof("client registered: %s (user: %s)", client.ID, client.UserID)

	// Новому клиенту — полная карта присутствия, остальным — событие о статусе
	h.sendPresenceSnapshot(client)
	h.notifyPresenceChange(client.UserID, client.Username, true, client.ID)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; !ok {
		return
	}

	client.mu.RLock()
	channels := make([]ChannelKey, 0, len(client.Channels))
	for key := range client.Channels {
		channels = append(channels, key)
	}
	client.mu.RUnlock()

	for _, key := range channels {
		h.leaveChannelUnsafe(client, key)
	}

	delete(h.clients, client.ID)
	close(client.Send)

	// Пользователь оффлайн, только когда закрылось его последнее соединение
	if len(h.channels[PrivateChannel(client.UserID)]) == 0 {
		delete(h.presence, client.UserID)
		h.notifyPresenceChange(client.UserID, "", false, uuid.Nil)
	}

	logger.Get().Infof("client unregistered: %s (user: %s)", client.ID, client.UserID)
}

// JoinChannel подписывает клиента на канал. Повторная подписка — no-op.
func (h *Hub) JoinChannel(client *Client, key ChannelKey) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.joinChannelUnsafe(client, key)
}

// LeaveChannel отписывает клиента от канала. Отписка без подписки — no-op.
func (h *Hub) LeaveChannel(client *Client, key ChannelKey) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.leaveChannelUnsafe(client, key)
}

func (h *Hub) joinChannelUnsafe(client *Client, key ChannelKey) {
	if _, ok := h.channels[key]; !ok {
		h.channels[key] = make(map[uuid.UUID]*Client)
	}

	h.channels[key][client.ID] = client
	client.mu.Lock()
	client.Channels[key] = true
	client.mu.Unlock()
}

func (h *Hub) leaveChannelUnsafe(client *Client, key ChannelKey) {
	channel, ok := h.channels[key]
	if !ok {
		return
	}
	if _, ok := channel[client.ID]; !ok {
		return
	}

	delete(channel, client.ID)
	client.mu.Lock()
	delete(client.Channels, key)
	client.mu.Unlock()

	if len(channel) == 0 {
		delete(h.channels, key)
	}
}

// SendToChannel отправляет сообщение всем подписчикам канала.
// Пустой канал — не ошибка.
func (h *Hub) SendToChannel(key ChannelKey, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	h.sendToChannelUnsafe(key, message)
}

// SendToUser отправляет сообщение всем соединениям пользователя
func (h *Hub) SendToUser(userID uuid.UUID, message []byte) {
	h.SendToChannel(PrivateChannel(userID), message)
}

func (h *Hub) sendToChannelUnsafe(key ChannelKey, message []byte) {
	for _, client := range h.channels[key] {
		select {
		case client.Send <- message:
		default:
			logger.Get().Warnf("client %s send channel full", client.ID)
		}
	}
}

func (h *Hub) sendPresenceSnapshot(client *Client) {
	snapshot := make(map[string]string, len(h.presence))
	for userID, name := range h.presence {
		snapshot[userID.String()] = name
	}

	msg := Message{
		Type:      TypeInitPresence,
		Timestamp: time.Now(),
	}

	if data, err := json.Marshal(snapshot); err == nil {
		msg.Data = data
		if msgData, err := json.Marshal(msg); err == nil {
			select {
			case client.Send <- msgData:
			default:
				logger.Get().Warnf("failed to send presence snapshot to client %s", client.ID)
			}
		}
	}
}

// notifyPresenceChange рассылает событие о смене статуса всем,
// кроме соединения excludeID
func (h *Hub) notifyPresenceChange(userID uuid.UUID, username string, online bool, excludeID uuid.UUID) {
	change := PresenceChange{
		UserID:   userID,
		Username: username,
		Online:   online,
	}

	msg := Message{
		Type:      TypePresenceChanged,
		UserID:    userID,
		Timestamp: time.Now(),
	}

	data, err := json.Marshal(change)
	if err != nil {
		return
	}
	msg.Data = data

	msgData, err := json.Marshal(msg)
	if err != nil {
		return
	}

	for _, client := range h.clients {
		if client.ID == excludeID {
			continue
		}
		select {
		case client.Send <- msgData:
		default:
		}
	}
}

func (h *Hub) ping() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	msg := Message{
		Type:      TypePing,
		Timestamp: time.Now(),
	}

	if data, err := json.Marshal(msg); err == nil {
		for _, client := range h.clients {
			select {
			case client.Send <- data:
			default:
			}
		}
	}
}

// Presence возвращает копию карты присутствия
func (h *Hub) Presence() map[uuid.UUID]string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	snapshot := make(map[uuid.UUID]string, len(h.presence))
	for userID, name := range h.presence {
		snapshot[userID] = name
	}
	return snapshot
}

// MovieChannelUsers возвращает список пользователей в канале фильма
func (h *Hub) MovieChannelUsers(movieID uint) []uuid.UUID {
	h.mu.RLock()
	defer h.mu.RUnlock()

	userMap := make(map[uuid.UUID]bool)
	for _, client := range h.channels[MovieChannel(movieID)] {
		userMap[client.UserID] = true
	}

	users := make([]uuid.UUID, 0, len(userMap))
	for userID := range userMap {
		users = append(users, userID)
	}
	return users
}
