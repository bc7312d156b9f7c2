package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thereayou/movie-catalog/internal/database"
	"github.com/thereayou/movie-catalog/internal/middleware"
	"github.com/thereayou/movie-catalog/internal/models"
)

// HistoryHandler отдает историю сообщений чата по HTTP
type HistoryHandler struct {
	db *database.Database
}

func NewHistoryHandler(db *database.Database) *HistoryHandler {
	return &HistoryHandler{db: db}
}

// GetMovieMessages получает историю канала фильма
func (h *HistoryHandler) GetMovieMessages(c *gin.Context) {
	movieID, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid movie id"})
		return
	}

	exists, err := h.db.MovieExists(movieID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get messages"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "movie not found"})
		return
	}

	limit, beforeID := paginationParams(c)

	messages, err := h.db.GetMovieMessages(movieID, limit, beforeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get messages"})
		return
	}

	result := make([]gin.H, len(messages))
	for i := range messages {
		result[i] = formatChatMessage(&messages[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": result,
		"has_more": len(messages) == limit,
	})
}

// GetPrivateMessages получает переписку текущего пользователя с другим
func (h *HistoryHandler) GetPrivateMessages(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	otherID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	limit, beforeID := paginationParams(c)

	messages, err := h.db.GetPrivateMessages(userID, otherID, limit, beforeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get messages"})
		return
	}

	result := make([]gin.H, len(messages))
	for i := range messages {
		result[i] = formatChatMessage(&messages[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": result,
		"has_more": len(messages) == limit,
	})
}

func paginationParams(c *gin.Context) (int, *uint) {
	limit := 50
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	var beforeID *uint
	if before := c.Query("before"); before != "" {
		if parsed, err := strconv.ParseUint(before, 10, 32); err == nil {
			id := uint(parsed)
			beforeID = &id
		}
	}

	return limit, beforeID
}

// formatChatMessage форматирует ответ для сообщения чата
func formatChatMessage(msg *models.ChatMessage) gin.H {
	response := gin.H{
		"id":          msg.ID,
		"sender_id":   msg.SenderUserID,
		"sender_name": msg.SenderUserName,
		"text":        msg.Text,
		"is_private":  msg.IsPrivate,
		"created_at":  msg.CreatedAt,
	}

	if msg.MovieID != nil {
		response["movie_id"] = *msg.MovieID
	}
	if msg.ReceiverUserID != nil {
		response["receiver_id"] = *msg.ReceiverUserID
	}
	if msg.FileURL != "" {
		response["file_url"] = msg.FileURL
		response["file_name"] = msg.FileName
	}

	return response
}
