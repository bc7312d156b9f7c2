package handlers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thereayou/movie-catalog/internal/database"
	"github.com/thereayou/movie-catalog/internal/models"
)

func newHistoryRouter(db *database.Database, userID uuid.UUID) *gin.Engine {
	h := NewHistoryHandler(db)

	r := gin.New()
	r.Use(authAs(userID, "alice", models.RoleUser))
	r.GET("/movies/:id/messages", h.GetMovieMessages)
	r.GET("/chat/private/:user_id", h.GetPrivateMessages)
	return r
}

func seedMovieMessage(t *testing.T, db *database.Database, movieID uint, senderID uuid.UUID, text string, at time.Time) *models.ChatMessage {
	t.Helper()

	msg := &models.ChatMessage{
		MovieID:        &movieID,
		SenderUserID:   senderID,
		SenderUserName: "alice",
		Text:           text,
		CreatedAt:      at,
	}
	require.NoError(t, db.SaveChatMessage(msg))
	return msg
}

func seedPrivateMessage(t *testing.T, db *database.Database, senderID, receiverID uuid.UUID, text string, at time.Time) *models.ChatMessage {
	t.Helper()

	msg := &models.ChatMessage{
		ReceiverUserID: &receiverID,
		SenderUserID:   senderID,
		SenderUserName: "alice",
		Text:           text,
		IsPrivate:      true,
		CreatedAt:      at,
	}
	require.NoError(t, db.SaveChatMessage(msg))
	return msg
}

func TestGetMovieMessages(t *testing.T) {
	db := setupTestDB(t)
	userID := uuid.New()
	router := newHistoryRouter(db, userID)

	movie := seedMovie(t, db, "Сталкер")
	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		seedMovieMessage(t, db, movie.ID, userID, fmt.Sprintf("сообщение %d", i), base.Add(time.Duration(i)*time.Minute))
	}

	w := performRequest(t, router, http.MethodGet, fmt.Sprintf("/movies/%d/messages", movie.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	messages := resp["messages"].([]interface{})
	require.Len(t, messages, 3)

	// Хронологический порядок: старые первыми
	first := messages[0].(map[string]interface{})
	last := messages[2].(map[string]interface{})
	assert.Equal(t, "сообщение 0", first["text"])
	assert.Equal(t, "сообщение 2", last["text"])
	assert.Equal(t, false, resp["has_more"])
}

func TestGetMovieMessages_Pagination(t *testing.T) {
	db := setupTestDB(t)
	userID := uuid.New()
	router := newHistoryRouter(db, userID)

	movie := seedMovie(t, db, "Сталкер")
	base := time.Now().UTC().Add(-time.Hour)
	var ids []uint
	for i := 0; i < 5; i++ {
		msg := seedMovieMessage(t, db, movie.ID, userID, fmt.Sprintf("сообщение %d", i), base.Add(time.Duration(i)*time.Minute))
		ids = append(ids, msg.ID)
	}

	w := performRequest(t, router, http.MethodGet, fmt.Sprintf("/movies/%d/messages?limit=2", movie.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	messages := resp["messages"].([]interface{})
	require.Len(t, messages, 2)
	assert.Equal(t, true, resp["has_more"])

	// Вторая страница — сообщения старше последнего просмотренного
	w = performRequest(t, router, http.MethodGet, fmt.Sprintf("/movies/%d/messages?limit=2&before=%d", movie.ID, ids[3]), nil)
	require.Equal(t, http.StatusOK, w.Code)
	messages = decodeResponse(t, w)["messages"].([]interface{})
	require.Len(t, messages, 2)
	assert.Equal(t, "сообщение 1", messages[0].(map[string]interface{})["text"])
	assert.Equal(t, "сообщение 2", messages[1].(map[string]interface{})["text"])
}

func TestGetMovieMessages_MovieNotFound(t *testing.T) {
	db := setupTestDB(t)
	router := newHistoryRouter(db, uuid.New())

	w := performRequest(t, router, http.MethodGet, "/movies/999/messages", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetPrivateMessages_BothDirections(t *testing.T) {
	db := setupTestDB(t)
	alice := uuid.New()
	bob := uuid.New()
	stranger := uuid.New()
	router := newHistoryRouter(db, alice)

	base := time.Now().UTC().Add(-time.Hour)
	seedPrivateMessage(t, db, alice, bob, "от алисы", base)
	seedPrivateMessage(t, db, bob, alice, "от боба", base.Add(time.Minute))
	seedPrivateMessage(t, db, stranger, bob, "чужая переписка", base.Add(2*time.Minute))

	w := performRequest(t, router, http.MethodGet, "/chat/private/"+bob.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	messages := decodeResponse(t, w)["messages"].([]interface{})
	require.Len(t, messages, 2)
	assert.Equal(t, "от алисы", messages[0].(map[string]interface{})["text"])
	assert.Equal(t, "от боба", messages[1].(map[string]interface{})["text"])
}

func TestGetPrivateMessages_InvalidUserID(t *testing.T) {
	db := setupTestDB(t)
	router := newHistoryRouter(db, uuid.New())

	w := performRequest(t, router, http.MethodGet, "/chat/private/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
