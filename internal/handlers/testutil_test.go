package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/thereayou/movie-catalog/internal/database"
	"github.com/thereayou/movie-catalog/internal/handlers/dto"
	"github.com/thereayou/movie-catalog/internal/middleware"
	"github.com/thereayou/movie-catalog/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestDB(t *testing.T) *database.Database {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, gdb.AutoMigrate(
		&models.User{},
		&models.Movie{},
		&models.Actor{},
		&models.MovieActor{},
		&models.ChatMessage{},
	))

	return database.NewDatabase(gdb)
}

// authAs подменяет auth middleware в тестах
func authAs(userID uuid.UUID, username, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Set(middleware.UsernameKey, username)
		c.Set(middleware.RoleKey, role)
	}
}

func performRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	return result
}

func seedActor(t *testing.T, db *database.Database, firstName, lastName string) *models.Actor {
	t.Helper()

	actor := &models.Actor{
		FirstName: firstName,
		LastName:  lastName,
		BirthDate: time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
		Country:   "Россия",
	}
	require.NoError(t, db.CreateActor(actor))
	return actor
}

func seedMovie(t *testing.T, db *database.Database, title string, actorIDs ...uint) *models.Movie {
	t.Helper()

	movieActors := make([]models.MovieActor, len(actorIDs))
	for i, id := range actorIDs {
		movieActors[i] = models.MovieActor{ActorID: id, BillingOrder: i + 1}
	}

	movie := &models.Movie{
		Title:           title,
		Genre:           "драма",
		ReleaseDate:     time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		DurationMinutes: 120,
		MovieActors:     movieActors,
	}
	require.NoError(t, db.CreateMovie(movie))
	return movie
}

func seedUser(t *testing.T, db *database.Database, username, role string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         role,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, db.SaveUser(user))
	return user
}

func sampleMovieRequest() dto.MovieRequest {
	return dto.MovieRequest{
		Title:           "Зеркало",
		Genre:           "драма",
		ReleaseDate:     time.Date(1975, 3, 7, 0, 0, 0, 0, time.UTC),
		DurationMinutes: 107,
		Description:     "Воспоминания умирающего поэта",
	}
}
